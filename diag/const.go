package diag

// SOCK_DIAG_BY_FAMILY, linux/sock_diag.h.
const msgDiagByFamily uint16 = 20

// TCP states, the inet_diag numbering (net/tcp_states.h).
const (
	StateEstablished uint8 = 1
	StateSynSent     uint8 = 2
	StateSynRecv     uint8 = 3
	StateFinWait1    uint8 = 4
	StateFinWait2    uint8 = 5
	StateTimeWait    uint8 = 6
	StateClose       uint8 = 7
	StateCloseWait   uint8 = 8
	StateLastAck     uint8 = 9
	StateListen      uint8 = 10
	StateClosing     uint8 = 11
)

// StatesAll selects every socket state in a query.
const StatesAll uint32 = (1 << 12) - 1

// inet_diag_req_v2: 8-byte header (family, protocol, ext, pad, u32
// states) followed by the 48-byte inet_diag_sockid; zeroed sockid
// fields wildcard the dump.
const (
	diagReqLen    = 56
	diagSockIDLen = 48
)

// inet_diag_msg is 72 bytes: family/state/timer/retrans, the sockid
// (be16 ports, 16-byte addresses, interface, cookie), then expires,
// rqueue, wqueue, uid, inode as native u32s.
const diagMsgLen = 72

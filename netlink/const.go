package netlink

// Netlink protocol families, linux/netlink.h.
const (
	ProtoRoute    = 0  // NETLINK_ROUTE
	ProtoSockDiag = 4  // NETLINK_SOCK_DIAG
	ProtoGeneric  = 16 // NETLINK_GENERIC
)

// Control message types.
const (
	MsgNoop  uint16 = 0x1
	MsgError uint16 = 0x2
	MsgDone  uint16 = 0x3
)

// Header flags. Dump is the classic NLM_F_ROOT|NLM_F_MATCH pair;
// Replace/Excl/Create carry open(2)-like semantics on mutations and
// share values with Root/Match on the GET side.
const (
	FlagRequest  uint16 = 0x01
	FlagMulti    uint16 = 0x02
	FlagAck      uint16 = 0x04
	FlagDumpIntr uint16 = 0x10
	FlagRoot     uint16 = 0x100
	FlagMatch    uint16 = 0x200
	FlagDump     uint16 = FlagRoot | FlagMatch
	FlagReplace  uint16 = 0x100
	FlagExcl     uint16 = 0x200
	FlagCreate   uint16 = 0x400
)

// AttrNested is bit 15 of an attribute's type field, flagging the
// payload as a sub-attribute list.
const AttrNested uint16 = 0x8000

// HeaderLen is the size of nlmsghdr.
const HeaderLen = 16

const attrHeaderLen = 4

// Generic netlink: inner header size and the well-known controller
// family used to resolve family names to ids.
const (
	GenlHeaderLen = 4
	GenlIDCtrl    uint16 = 0x10
)

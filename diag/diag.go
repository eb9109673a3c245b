package diag

import (
	"fmt"
	"net/netip"

	"golang.org/x/sys/unix"

	"github.com/truenas/go-netif/netlink"
)

var native = netlink.NativeEndian()

// Client owns one NETLINK_SOCK_DIAG socket. Not safe for concurrent
// use.
type Client struct {
	sock *netlink.Socket
	conf Config
}

func NewClient() (*Client, error) {
	return NewClientWithConfig(DefaultConfig)
}

func NewClientWithConfig(conf Config) (*Client, error) {
	sock, err := netlink.NewDiagSocket()
	if err != nil {
		return nil, err
	}
	return &Client{sock: sock, conf: conf}, nil
}

func (c *Client) Close() error {
	if c.sock == nil {
		return nil
	}
	return c.sock.Close()
}

// buildRequest encodes inet_diag_req_v2 with an all-zero sockid, which
// wildcards the dump to every socket matching family, protocol and the
// states mask.
func buildRequest(family, protocol uint8, states uint32) []byte {
	buf := make([]byte, diagReqLen)
	buf[0] = family
	buf[1] = protocol
	// buf[2] is the extension mask; none are requested
	native.PutUint32(buf[4:8], states)
	return buf
}

// parseSockInfo decodes one inet_diag_msg. Records shorter than the
// fixed struct are dropped.
func parseSockInfo(m netlink.Message) (SockInfo, bool) {
	if len(m.Data) < diagMsgLen {
		return SockInfo{}, false
	}
	info := SockInfo{
		Family: m.Data[0],
		State:  m.Data[1],
		// ports are the only big endian fields in the struct
		SPort: uint16(m.Data[4])<<8 | uint16(m.Data[5]),
		DPort: uint16(m.Data[6])<<8 | uint16(m.Data[7]),
		UID:   native.Uint32(m.Data[64:68]),
		INode: native.Uint32(m.Data[68:72]),
	}
	if info.Family == unix.AF_INET {
		info.Src, _ = netip.AddrFromSlice(m.Data[8:12])
		info.Dst, _ = netip.AddrFromSlice(m.Data[24:28])
	} else {
		info.Src, _ = netip.AddrFromSlice(m.Data[8:24])
		info.Dst, _ = netip.AddrFromSlice(m.Data[24:40])
	}
	return info, true
}

func sockInfosFromMessages(msgs []netlink.Message) []SockInfo {
	infos := make([]SockInfo, 0, len(msgs))
	for _, m := range msgs {
		if info, ok := parseSockInfo(m); ok {
			infos = append(infos, info)
		}
	}
	return infos
}

// Sockets dumps every socket of the family and protocol in any of the
// states selected by the mask (StatesAll for everything).
func (c *Client) Sockets(family, protocol uint8, states uint32) ([]SockInfo, error) {
	if err := c.sock.EnsureConnected(); err != nil {
		return nil, err
	}
	payload := buildRequest(family, protocol, states)
	msgs, err := c.sock.Request(msgDiagByFamily, netlink.FlagRequest|netlink.FlagDump, payload)
	if err != nil {
		return nil, fmt.Errorf("dumping sockets (family %d proto %d): %w", family, protocol, err)
	}
	return sockInfosFromMessages(msgs), nil
}

// ConfiguredSockets dumps the sockets selected by the client's Config,
// the entry point for periodic dumps driven by a settings file.
func (c *Client) ConfiguredSockets(family uint8) ([]SockInfo, error) {
	return c.Sockets(family, c.conf.Protocol, c.conf.States)
}

// Listeners dumps the TCP sockets in LISTEN state for family.
func (c *Client) Listeners(family uint8) ([]SockInfo, error) {
	return c.Sockets(family, unix.IPPROTO_TCP, 1<<StateListen)
}

package diag

import "net/netip"

// SockInfo is one decoded inet_diag_msg record.
type SockInfo struct {
	Family uint8
	State  uint8

	Src   netip.Addr
	SPort uint16
	Dst   netip.Addr
	DPort uint16

	UID   uint32
	INode uint32

	// Owner is the name of the process holding the socket, filled in
	// by ResolveOwners.
	Owner string
}

package rtnl

import "net/netip"

// LinkInfo is the decoded state of one network interface as reported
// by RTM_GETLINK.
type LinkInfo struct {
	Index     int
	Name      string
	Type      uint16 // ARPHRD_* hardware type
	Flags     uint32 // IFF_* bits
	MTU       uint32
	MinMTU    uint32
	MaxMTU    uint32
	TxQLen    uint32
	OperState uint8

	Carrier        bool
	CarrierChanges uint32

	NumTxQueues uint32
	NumRxQueues uint32

	Address     string // link-layer address, colon hex
	PermAddress string
	Broadcast   string

	Master int // enslaving device index, 0 when free
	Link   int // lower device index for stacked links, 0 otherwise

	Alias    string
	AltNames []string

	ParentDevName string
	ParentDevBus  string

	Kind   string // rtnl link kind: "bond", "bridge", "vlan", "dummy", ...
	Bond   *BondInfo
	Bridge *BridgeInfo
	VLAN   *VLANInfo

	RxBytes   uint64
	TxBytes   uint64
	RxPackets uint64
	TxPackets uint64
	RxErrors  uint64
	TxErrors  uint64
}

// Up reports whether the interface is administratively up.
func (l *LinkInfo) Up() bool { return l.Flags&IFF_UP != 0 }

// BondInfo is the bond-specific slice of a link's LINKINFO data.
type BondInfo struct {
	Mode           uint8
	XmitHashPolicy uint8
	MIIMon         uint32
	UpDelay        uint32
	DownDelay      uint32
	Primary        int // member index
	LACPRate       uint8
	LACPActive     uint8
	TLBDynamicLB   uint8
}

// BridgeInfo is the bridge-specific slice of a link's LINKINFO data.
type BridgeInfo struct {
	STPState     uint32
	Priority     uint16
	ForwardDelay uint32
	HelloTime    uint32
	MaxAge       uint32
}

// VLANInfo is the vlan-specific slice of a link's LINKINFO data.
type VLANInfo struct {
	ID       uint16
	Protocol uint16 // ethertype, host order
}

// AddressInfo is one RTM_GETADDR record. ValidLft and PreferredLft are
// nil for permanent addresses (the kernel's forever sentinel).
type AddressInfo struct {
	Family        uint8
	Index         int
	InterfaceName string

	Address   netip.Prefix
	Local     netip.Addr
	Broadcast netip.Addr
	Label     string

	Scope uint8
	Flags uint32
	Proto uint8 // IFA_PROTO origin tag (kernel 5.18+), 0 when absent

	ValidLft     *uint32
	PreferredLft *uint32
}

// RouteInfo is one RTM_GETROUTE record.
type RouteInfo struct {
	Family   uint8
	Table    uint32
	Protocol uint8
	Scope    uint8
	Type     uint8

	Dst     netip.Prefix // invalid for the default route
	Gateway netip.Addr
	PrefSrc netip.Addr

	OIF           int
	InterfaceName string
	Priority      uint32
}

// Default reports whether the route is a default route (no destination
// prefix).
func (r *RouteInfo) Default() bool { return !r.Dst.IsValid() }

// RuleInfo is one RTM_GETRULE record.
type RuleInfo struct {
	Family   uint8
	Priority uint32
	Table    uint32
	Action   uint8

	Src netip.Prefix
	Dst netip.Prefix

	IIFName string
	OIFName string

	FwMark uint32
	FwMask uint32
}

package rtnl

import (
	"fmt"
	"net"

	"github.com/truenas/go-netif/netlink"
)

var native = netlink.NativeEndian()

// packIfInfomsg encodes the 16-byte ifinfomsg fixed header: u8 family,
// u8 pad, u16 device type, s32 index, u32 flags, u32 change mask.
func packIfInfomsg(family uint8, devType uint16, index int32, flags, change uint32) []byte {
	buf := make([]byte, ifInfomsgLen)
	buf[0] = family
	native.PutUint16(buf[2:4], devType)
	native.PutUint32(buf[4:8], uint32(index))
	native.PutUint32(buf[8:12], flags)
	native.PutUint32(buf[12:16], change)
	return buf
}

func decodeLink(m netlink.Message) (LinkInfo, bool) {
	if len(m.Data) < ifInfomsgLen {
		return LinkInfo{}, false
	}
	info := LinkInfo{
		Type:  native.Uint16(m.Data[2:4]),
		Index: int(int32(native.Uint32(m.Data[4:8]))),
		Flags: native.Uint32(m.Data[8:12]),
	}

	// IFLA_PROP_LIST holds repeated ALT_IFNAME entries, so the walk is
	// ordered rather than map-based.
	netlink.ScanAttrs(m.Data, ifInfomsgLen, func(typ uint16, data []byte) {
		switch typ {
		case IFLA_IFNAME:
			info.Name = netlink.AttrString(data)
		case IFLA_MTU:
			info.MTU = u32(data)
		case IFLA_MIN_MTU:
			info.MinMTU = u32(data)
		case IFLA_MAX_MTU:
			info.MaxMTU = u32(data)
		case IFLA_TXQLEN:
			info.TxQLen = u32(data)
		case IFLA_OPERSTATE:
			if len(data) > 0 {
				info.OperState = data[0]
			}
		case IFLA_CARRIER:
			info.Carrier = len(data) > 0 && data[0] != 0
		case IFLA_CARRIER_CHANGES:
			info.CarrierChanges = u32(data)
		case IFLA_NUM_TX_QUEUES:
			info.NumTxQueues = u32(data)
		case IFLA_NUM_RX_QUEUES:
			info.NumRxQueues = u32(data)
		case IFLA_ADDRESS:
			info.Address = hwAddr(data)
		case IFLA_PERM_ADDRESS:
			info.PermAddress = hwAddr(data)
		case IFLA_BROADCAST:
			info.Broadcast = hwAddr(data)
		case IFLA_MASTER:
			info.Master = int(u32(data))
		case IFLA_LINK:
			info.Link = int(u32(data))
		case IFLA_IFALIAS:
			info.Alias = netlink.AttrString(data)
		case IFLA_PARENT_DEV_NAME:
			info.ParentDevName = netlink.AttrString(data)
		case IFLA_PARENT_DEV_BUS_NAME:
			info.ParentDevBus = netlink.AttrString(data)
		case IFLA_PROP_LIST:
			netlink.ScanAttrs(data, 0, func(typ uint16, data []byte) {
				if typ == IFLA_ALT_IFNAME {
					info.AltNames = append(info.AltNames, netlink.AttrString(data))
				}
			})
		case IFLA_LINKINFO:
			decodeLinkKind(data, &info)
		case IFLA_STATS64:
			decodeStats64(data, &info)
		}
	})
	return info, true
}

// decodeLinkKind fills in the kind and the kind-specific details from
// the nested IFLA_LINKINFO blob.
func decodeLinkKind(data []byte, info *LinkInfo) {
	attrs := netlink.ParseAttrs(data, 0)
	kind, ok := attrs.String(IFLA_INFO_KIND)
	if !ok {
		return
	}
	info.Kind = kind
	nested, ok := attrs.Bytes(IFLA_INFO_DATA)
	if !ok {
		return
	}
	switch kind {
	case "bond":
		info.Bond = decodeBondInfo(netlink.ParseAttrs(nested, 0))
	case "bridge":
		info.Bridge = decodeBridgeInfo(netlink.ParseAttrs(nested, 0))
	case "vlan":
		info.VLAN = decodeVLANInfo(netlink.ParseAttrs(nested, 0))
	}
}

func decodeBondInfo(attrs netlink.AttributeMap) *BondInfo {
	b := &BondInfo{}
	b.Mode, _ = attrs.Uint8(IFLA_BOND_MODE)
	b.XmitHashPolicy, _ = attrs.Uint8(IFLA_BOND_XMIT_HASH_POLICY)
	b.MIIMon, _ = attrs.Uint32(IFLA_BOND_MIIMON)
	b.UpDelay, _ = attrs.Uint32(IFLA_BOND_UPDELAY)
	b.DownDelay, _ = attrs.Uint32(IFLA_BOND_DOWNDELAY)
	if primary, ok := attrs.Uint32(IFLA_BOND_PRIMARY); ok {
		b.Primary = int(primary)
	}
	b.LACPRate, _ = attrs.Uint8(IFLA_BOND_AD_LACP_RATE)
	b.LACPActive, _ = attrs.Uint8(IFLA_BOND_LACP_ACTIVE)
	b.TLBDynamicLB, _ = attrs.Uint8(IFLA_BOND_TLB_DYNAMIC_LB)
	return b
}

func decodeBridgeInfo(attrs netlink.AttributeMap) *BridgeInfo {
	b := &BridgeInfo{}
	b.STPState, _ = attrs.Uint32(IFLA_BR_STP_STATE)
	b.Priority, _ = attrs.Uint16(IFLA_BR_PRIORITY)
	b.ForwardDelay, _ = attrs.Uint32(IFLA_BR_FORWARD_DELAY)
	b.HelloTime, _ = attrs.Uint32(IFLA_BR_HELLO_TIME)
	b.MaxAge, _ = attrs.Uint32(IFLA_BR_MAX_AGE)
	return b
}

func decodeVLANInfo(attrs netlink.AttributeMap) *VLANInfo {
	v := &VLANInfo{}
	v.ID, _ = attrs.Uint16(IFLA_VLAN_ID)
	v.Protocol, _ = attrs.Uint16(IFLA_VLAN_PROTOCOL)
	v.Protocol = netlink.Htons(v.Protocol) // wire carries it big endian
	return v
}

// decodeStats64 picks the counters of interest out of the 64-bit
// rtnl_link_stats64 blob: packets/bytes/errors in both directions sit
// in the first eight u64 slots.
func decodeStats64(data []byte, info *LinkInfo) {
	if len(data) < 8*8 {
		return
	}
	info.RxPackets = native.Uint64(data[0:8])
	info.TxPackets = native.Uint64(data[8:16])
	info.RxBytes = native.Uint64(data[16:24])
	info.TxBytes = native.Uint64(data[24:32])
	info.RxErrors = native.Uint64(data[32:40])
	info.TxErrors = native.Uint64(data[40:48])
}

func u32(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return native.Uint32(b[:4])
}

func hwAddr(b []byte) string {
	return net.HardwareAddr(b).String()
}

func linksFromMessages(msgs []netlink.Message) map[string]LinkInfo {
	links := make(map[string]LinkInfo, len(msgs))
	for _, m := range msgs {
		if info, ok := decodeLink(m); ok {
			links[info.Name] = info
		}
	}
	return links
}

// Links dumps every interface, keyed by name.
func (h *Handle) Links() (map[string]LinkInfo, error) {
	payload := packIfInfomsg(FamilyUnspec, 0, 0, 0, 0)
	payload = append(payload, netlink.PackAttrU32(IFLA_EXT_MASK, rtextFilterVF|rtextFilterSkipStats)...)
	msgs, err := h.dump(RTM_GETLINK, payload)
	if err != nil {
		return nil, fmt.Errorf("dumping links: %w", err)
	}
	return linksFromMessages(msgs), nil
}

// Link fetches a single interface.
func (h *Handle) Link(ref InterfaceRef) (LinkInfo, error) {
	ref, err := ref.Resolve()
	if err != nil {
		return LinkInfo{}, err
	}
	if err := h.sock.EnsureConnected(); err != nil {
		return LinkInfo{}, err
	}
	// the ACK doubles as the reply terminator for a non-dump get
	payload := packIfInfomsg(FamilyUnspec, 0, int32(ref.index), 0, 0)
	msgs, err := h.sock.Request(RTM_GETLINK, netlink.FlagRequest|netlink.FlagAck, payload)
	if err != nil {
		return LinkInfo{}, fmt.Errorf("getting link %s: %w", ref, err)
	}
	for _, m := range msgs {
		if info, ok := decodeLink(m); ok {
			return info, nil
		}
	}
	return LinkInfo{}, fmt.Errorf("getting link %s: %w", ref, netlink.ErrDeviceNotFound)
}

// setLinkFlags flips the IFF bits in mask to the given value, leaving
// everything outside the mask alone.
func (h *Handle) setLinkFlags(ref InterfaceRef, flags, mask uint32) error {
	ref, err := ref.Resolve()
	if err != nil {
		return err
	}
	payload := packIfInfomsg(FamilyUnspec, 0, int32(ref.index), flags, mask)
	if err := h.ack(RTM_NEWLINK, 0, payload); err != nil {
		return fmt.Errorf("changing flags on %s: %w", ref, err)
	}
	return nil
}

// SetLinkUp brings the interface administratively up.
func (h *Handle) SetLinkUp(ref InterfaceRef) error {
	return h.setLinkFlags(ref, IFF_UP, IFF_UP)
}

// SetLinkDown takes the interface administratively down.
func (h *Handle) SetLinkDown(ref InterfaceRef) error {
	return h.setLinkFlags(ref, 0, IFF_UP)
}

// DeleteLink removes a (virtual) interface.
func (h *Handle) DeleteLink(ref InterfaceRef) error {
	ref, err := ref.Resolve()
	if err != nil {
		return err
	}
	payload := packIfInfomsg(FamilyUnspec, 0, int32(ref.index), 0, 0)
	if err := h.ack(RTM_DELLINK, 0, payload); err != nil {
		return fmt.Errorf("deleting %s: %w", ref, err)
	}
	return nil
}

// createLink issues RTM_NEWLINK with CREATE|EXCL for a fresh virtual
// device: name, IFLA_LINKINFO kind and optional kind-specific data,
// optional IFLA_LINK parent.
func (h *Handle) createLink(name, kind string, parentIndex int, infoData []byte) error {
	payload := packIfInfomsg(FamilyUnspec, 0, 0, 0, 0)
	payload = append(payload, netlink.PackAttrString(IFLA_IFNAME, name)...)
	if parentIndex != 0 {
		payload = append(payload, netlink.PackAttrU32(IFLA_LINK, uint32(parentIndex))...)
	}

	linkinfo := netlink.PackAttrString(IFLA_INFO_KIND, kind)
	if len(infoData) > 0 {
		linkinfo = append(linkinfo, netlink.PackAttrNested(IFLA_INFO_DATA, infoData)...)
	}
	payload = append(payload, netlink.PackAttrNested(IFLA_LINKINFO, linkinfo)...)

	if err := h.ack(RTM_NEWLINK, netlink.FlagCreate|netlink.FlagExcl, payload); err != nil {
		return fmt.Errorf("creating %s %q: %w", kind, name, err)
	}
	return nil
}

// CreateDummy creates a dummy interface.
func (h *Handle) CreateDummy(name string) error {
	return h.createLink(name, "dummy", 0, nil)
}

// CreateVLAN creates a 802.1q sub-interface of parent with the given
// VLAN id.
func (h *Handle) CreateVLAN(name string, parent InterfaceRef, id uint16) error {
	parent, err := parent.Resolve()
	if err != nil {
		return err
	}
	data := netlink.PackAttrU16(IFLA_VLAN_ID, id)
	return h.createLink(name, "vlan", parent.index, data)
}

// setMaster enslaves (or, with master 0, frees) an interface.
func (h *Handle) setMaster(ref InterfaceRef, master int) error {
	ref, err := ref.Resolve()
	if err != nil {
		return err
	}
	payload := packIfInfomsg(FamilyUnspec, 0, int32(ref.index), 0, 0)
	payload = append(payload, netlink.PackAttrU32(IFLA_MASTER, uint32(master))...)
	if err := h.ack(RTM_NEWLINK, 0, payload); err != nil {
		return fmt.Errorf("setting master of %s: %w", ref, err)
	}
	return nil
}

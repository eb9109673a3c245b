package rtnl

import (
	"encoding/binary"
	"fmt"
	"net/netip"

	"github.com/truenas/go-netif/netlink"
)

// packIfAddrmsg encodes the 8-byte ifaddrmsg fixed header: u8 family,
// u8 prefixlen, u8 flags, u8 scope, u32 index.
func packIfAddrmsg(family, prefixLen, flags, scope uint8, index uint32) []byte {
	buf := make([]byte, ifAddrmsgLen)
	buf[0] = family
	buf[1] = prefixLen
	buf[2] = flags
	buf[3] = scope
	native.PutUint32(buf[4:8], index)
	return buf
}

func addrFromBytes(b []byte) netip.Addr {
	a, _ := netip.AddrFromSlice(b)
	return a
}

func decodeAddress(m netlink.Message, nameCache map[int]string) (AddressInfo, bool) {
	if len(m.Data) < ifAddrmsgLen {
		return AddressInfo{}, false
	}
	info := AddressInfo{
		Family: m.Data[0],
		Scope:  m.Data[3],
		Flags:  uint32(m.Data[2]),
		Index:  int(native.Uint32(m.Data[4:8])),
	}
	prefixLen := int(m.Data[1])
	info.InterfaceName = resolveIfName(info.Index, nameCache)

	attrs := netlink.ParseAttrs(m.Data, ifAddrmsgLen)
	var addr netip.Addr
	if b, ok := attrs.Bytes(IFA_ADDRESS); ok {
		addr = addrFromBytes(b)
	}
	// For IPv4 the interface's own address is IFA_LOCAL; IFA_ADDRESS
	// may be the peer on point-to-point links.
	if b, ok := attrs.Bytes(IFA_LOCAL); ok {
		info.Local = addrFromBytes(b)
		addr = info.Local
	} else {
		info.Local = addr
	}
	if addr.IsValid() {
		info.Address = netip.PrefixFrom(addr, prefixLen)
	}
	if b, ok := attrs.Bytes(IFA_BROADCAST); ok {
		info.Broadcast = addrFromBytes(b)
	}
	info.Label, _ = attrs.String(IFA_LABEL)
	if flags, ok := attrs.Uint32(IFA_FLAGS); ok {
		info.Flags = flags // the u32 attr supersedes the u8 header field
	}
	info.Proto, _ = attrs.Uint8(IFA_PROTO)

	// ifa_cacheinfo: u32 prefered, u32 valid; all-ones means the
	// address never expires.
	if ci, ok := attrs.Bytes(IFA_CACHEINFO); ok && len(ci) >= 8 {
		if preferred := native.Uint32(ci[0:4]); preferred != lifetimeForever {
			info.PreferredLft = &preferred
		}
		if valid := native.Uint32(ci[4:8]); valid != lifetimeForever {
			info.ValidLft = &valid
		}
	}
	return info, true
}

func addressesFromMessages(msgs []netlink.Message) []AddressInfo {
	cache := map[int]string{}
	infos := make([]AddressInfo, 0, len(msgs))
	for _, m := range msgs {
		if info, ok := decodeAddress(m, cache); ok {
			infos = append(infos, info)
		}
	}
	return infos
}

// Addresses dumps every address on every interface.
func (h *Handle) Addresses() ([]AddressInfo, error) {
	msgs, err := h.dump(RTM_GETADDR, packIfAddrmsg(FamilyUnspec, 0, 0, 0, 0))
	if err != nil {
		return nil, fmt.Errorf("dumping addresses: %w", err)
	}
	return addressesFromMessages(msgs), nil
}

// LinkAddresses dumps the addresses of one interface. The kernel only
// honours the index filter under NETLINK_GET_STRICT_CHK, which is set
// for the duration of the dump.
func (h *Handle) LinkAddresses(ref InterfaceRef) ([]AddressInfo, error) {
	ref, err := ref.Resolve()
	if err != nil {
		return nil, err
	}
	msgs, err := h.filteredDump(RTM_GETADDR, packIfAddrmsg(FamilyUnspec, 0, 0, 0, uint32(ref.index)))
	if err != nil {
		return nil, fmt.Errorf("dumping addresses of %s: %w", ref, err)
	}
	return addressesFromMessages(msgs), nil
}

// v4Broadcast is the highest address of the prefix, the convention for
// IPv4 broadcast on anything shorter than a /31.
func v4Broadcast(prefix netip.Prefix) netip.Addr {
	a := prefix.Addr().As4()
	v := binary.BigEndian.Uint32(a[:]) | (^uint32(0) >> prefix.Bits())
	binary.BigEndian.PutUint32(a[:], v)
	return netip.AddrFrom4(a)
}

// AddAddress assigns prefix to the interface. For IPv4 a zero
// broadcast is filled in from the prefix; IPv6 never carries one.
func (h *Handle) AddAddress(ref InterfaceRef, prefix netip.Prefix, broadcast netip.Addr) error {
	ref, err := ref.Resolve()
	if err != nil {
		return err
	}
	family := FamilyInet6
	if prefix.Addr().Is4() {
		family = FamilyInet
		if !broadcast.IsValid() && prefix.Bits() < 31 {
			broadcast = v4Broadcast(prefix)
		}
	}

	payload := packIfAddrmsg(family, uint8(prefix.Bits()), 0, 0, uint32(ref.index))
	addrBytes := prefix.Addr().AsSlice()
	payload = append(payload, netlink.PackAttr(IFA_LOCAL, addrBytes)...)
	payload = append(payload, netlink.PackAttr(IFA_ADDRESS, addrBytes)...)
	if family == FamilyInet && broadcast.IsValid() {
		payload = append(payload, netlink.PackAttr(IFA_BROADCAST, broadcast.AsSlice())...)
	}

	if err := h.ack(RTM_NEWADDR, netlink.FlagCreate|netlink.FlagExcl, payload); err != nil {
		return fmt.Errorf("adding %s to %s: %w", prefix, ref, err)
	}
	return nil
}

// RemoveAddress removes prefix from the interface.
func (h *Handle) RemoveAddress(ref InterfaceRef, prefix netip.Prefix) error {
	ref, err := ref.Resolve()
	if err != nil {
		return err
	}
	family := FamilyInet6
	if prefix.Addr().Is4() {
		family = FamilyInet
	}
	payload := packIfAddrmsg(family, uint8(prefix.Bits()), 0, 0, uint32(ref.index))
	payload = append(payload, netlink.PackAttr(IFA_LOCAL, prefix.Addr().AsSlice())...)
	payload = append(payload, netlink.PackAttr(IFA_ADDRESS, prefix.Addr().AsSlice())...)
	if err := h.ack(RTM_DELADDR, 0, payload); err != nil {
		return fmt.Errorf("removing %s from %s: %w", prefix, ref, err)
	}
	return nil
}

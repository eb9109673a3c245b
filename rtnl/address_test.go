package rtnl

import (
	"net/netip"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/truenas/go-netif/netlink"
)

func TestDecodeAddress(t *testing.T) {
	payload := packIfAddrmsg(FamilyInet, 24, 0, ScopeUniverse, 999)
	payload = append(payload, netlink.PackAttr(IFA_ADDRESS, []byte{192, 168, 1, 10})...)
	payload = append(payload, netlink.PackAttr(IFA_LOCAL, []byte{192, 168, 1, 10})...)
	payload = append(payload, netlink.PackAttr(IFA_BROADCAST, []byte{192, 168, 1, 255})...)
	payload = append(payload, netlink.PackAttrString(IFA_LABEL, "eth0")...)
	payload = append(payload, netlink.PackAttrU32(IFA_FLAGS, 0x80)...)

	ci := make([]byte, 16)
	native.PutUint32(ci[0:4], lifetimeForever)
	native.PutUint32(ci[4:8], lifetimeForever)
	payload = append(payload, netlink.PackAttr(IFA_CACHEINFO, ci)...)

	info, ok := decodeAddress(netlink.Message{Type: RTM_NEWADDR, Data: payload}, map[int]string{999: "eth0"})
	if !ok {
		t.Fatal("decodeAddress rejected a well-formed record")
	}

	want := AddressInfo{
		Family:        FamilyInet,
		Index:         999,
		InterfaceName: "eth0",
		Address:       netip.MustParsePrefix("192.168.1.10/24"),
		Local:         netip.MustParseAddr("192.168.1.10"),
		Broadcast:     netip.MustParseAddr("192.168.1.255"),
		Label:         "eth0",
		Scope:         ScopeUniverse,
		Flags:         0x80,
	}
	if diff := cmp.Diff(want, info, cmp.Comparer(func(a, b netip.Addr) bool { return a == b }),
		cmp.Comparer(func(a, b netip.Prefix) bool { return a == b })); diff != "" {
		t.Errorf("decoded address (-want +got):\n%s", diff)
	}
	if info.ValidLft != nil || info.PreferredLft != nil {
		t.Errorf("forever lifetimes decoded as %v/%v, want nil/nil", info.ValidLft, info.PreferredLft)
	}
}

func TestDecodeAddressFiniteLifetimes(t *testing.T) {
	payload := packIfAddrmsg(FamilyInet6, 64, 0, ScopeUniverse, 998)
	addr := netip.MustParseAddr("2001:db8::1")
	payload = append(payload, netlink.PackAttr(IFA_ADDRESS, addr.AsSlice())...)

	ci := make([]byte, 16)
	native.PutUint32(ci[0:4], 600)  // preferred
	native.PutUint32(ci[4:8], 3600) // valid
	payload = append(payload, netlink.PackAttr(IFA_CACHEINFO, ci)...)

	info, ok := decodeAddress(netlink.Message{Type: RTM_NEWADDR, Data: payload}, map[int]string{998: ""})
	if !ok {
		t.Fatal("decodeAddress rejected the v6 record")
	}
	if info.Address != netip.MustParsePrefix("2001:db8::1/64") {
		t.Errorf("prefix = %v, want 2001:db8::1/64", info.Address)
	}
	if info.PreferredLft == nil || *info.PreferredLft != 600 {
		t.Errorf("preferred lifetime = %v, want 600", info.PreferredLft)
	}
	if info.ValidLft == nil || *info.ValidLft != 3600 {
		t.Errorf("valid lifetime = %v, want 3600", info.ValidLft)
	}
}

func TestV4Broadcast(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{"192.168.1.10/24", "192.168.1.255"},
		{"10.0.0.1/8", "10.255.255.255"},
		{"172.16.5.4/22", "172.16.7.255"},
	}
	for _, tt := range tests {
		got := v4Broadcast(netip.MustParsePrefix(tt.prefix))
		if got != netip.MustParseAddr(tt.want) {
			t.Errorf("v4Broadcast(%s) = %v, want %s", tt.prefix, got, tt.want)
		}
	}
}

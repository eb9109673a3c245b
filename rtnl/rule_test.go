package rtnl

import (
	"net/netip"
	"testing"

	"github.com/truenas/go-netif/netlink"
)

func TestDecodeRule(t *testing.T) {
	payload := packRtMsg(FamilyInet, 0, 24, 0, TableMain, 0, 0, RuleActionToTable, 0)
	payload = append(payload, netlink.PackAttr(FRA_SRC, []byte{10, 1, 0, 0})...)
	payload = append(payload, netlink.PackAttrU32(FRA_PRIORITY, 1000)...)
	payload = append(payload, netlink.PackAttrString(FRA_IIFNAME, "eth0")...)
	payload = append(payload, netlink.PackAttrU32(FRA_FWMARK, 0x10)...)
	payload = append(payload, netlink.PackAttrU32(FRA_TABLE, 300)...)

	info, ok := decodeRule(netlink.Message{Type: RTM_NEWRULE, Data: payload})
	if !ok {
		t.Fatal("decodeRule rejected a well-formed record")
	}
	if info.Src != netip.MustParsePrefix("10.1.0.0/24") {
		t.Errorf("src = %v, want 10.1.0.0/24", info.Src)
	}
	if info.Priority != 1000 || info.IIFName != "eth0" || info.FwMark != 0x10 {
		t.Errorf("rule = %+v", info)
	}
	if info.Table != 300 {
		t.Errorf("table = %d, want the FRA_TABLE value 300", info.Table)
	}
	if info.Action != RuleActionToTable {
		t.Errorf("action = %d, want to-table", info.Action)
	}
}

func TestRulePackDefaults(t *testing.T) {
	payload := Rule{Family: FamilyInet, Priority: 50}.pack()
	if payload[7] != RuleActionToTable {
		t.Errorf("action = %d, want to-table by default", payload[7])
	}
	if payload[4] != TableMain {
		t.Errorf("table = %d, want main by default", payload[4])
	}
	if prio, ok := netlink.ParseAttrs(payload, rtMsgLen).Uint32(FRA_PRIORITY); !ok || prio != 50 {
		t.Errorf("FRA_PRIORITY = (%d, %v), want (50, true)", prio, ok)
	}
}

func TestRulePackRoundTrip(t *testing.T) {
	r := Rule{
		Family:   FamilyInet,
		Priority: 77,
		Table:    200,
		Src:      netip.MustParsePrefix("10.2.0.0/16"),
		FwMark:   0x20,
		FwMask:   0xFF,
	}
	info, ok := decodeRule(netlink.Message{Type: RTM_NEWRULE, Data: r.pack()})
	if !ok {
		t.Fatal("decodeRule rejected the packed rule")
	}
	if info.Src != r.Src || info.Priority != r.Priority || info.Table != r.Table ||
		info.FwMark != r.FwMark || info.FwMask != r.FwMask {
		t.Errorf("round trip = %+v, want %+v", info, r)
	}
}

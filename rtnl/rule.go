package rtnl

import (
	"fmt"
	"net/netip"

	"github.com/truenas/go-netif/netlink"
)

// Rule actions, linux/fib_rules.h FR_ACT_*.
const (
	RuleActionToTable     uint8 = 1
	RuleActionGoto        uint8 = 2
	RuleActionNop         uint8 = 3
	RuleActionBlackhole   uint8 = 6
	RuleActionUnreachable uint8 = 7
	RuleActionProhibit    uint8 = 8
)

// decodeRule parses one RTM_GETRULE record. The fib_rule_hdr shares
// its layout with rtmsg: family, dst_len, src_len, tos, table, two
// reserved bytes, action, u32 flags.
func decodeRule(m netlink.Message) (RuleInfo, bool) {
	if len(m.Data) < rtMsgLen {
		return RuleInfo{}, false
	}
	info := RuleInfo{
		Family: m.Data[0],
		Table:  uint32(m.Data[4]),
		Action: m.Data[7],
	}
	dstLen := int(m.Data[1])
	srcLen := int(m.Data[2])

	attrs := netlink.ParseAttrs(m.Data, rtMsgLen)
	if b, ok := attrs.Bytes(FRA_SRC); ok {
		info.Src = netip.PrefixFrom(addrFromBytes(b), srcLen)
	}
	if b, ok := attrs.Bytes(FRA_DST); ok {
		info.Dst = netip.PrefixFrom(addrFromBytes(b), dstLen)
	}
	info.Priority, _ = attrs.Uint32(FRA_PRIORITY)
	info.IIFName, _ = attrs.String(FRA_IIFNAME)
	info.OIFName, _ = attrs.String(FRA_OIFNAME)
	info.FwMark, _ = attrs.Uint32(FRA_FWMARK)
	info.FwMask, _ = attrs.Uint32(FRA_FWMASK)
	if table, ok := attrs.Uint32(FRA_TABLE); ok {
		info.Table = table
	}
	return info, true
}

func rulesFromMessages(msgs []netlink.Message) []RuleInfo {
	rules := make([]RuleInfo, 0, len(msgs))
	for _, m := range msgs {
		if info, ok := decodeRule(m); ok {
			rules = append(rules, info)
		}
	}
	return rules
}

// Rules dumps the policy rules for family.
func (h *Handle) Rules(family uint8) ([]RuleInfo, error) {
	msgs, err := h.dump(RTM_GETRULE, packRtMsg(family, 0, 0, 0, 0, 0, 0, 0, 0))
	if err != nil {
		return nil, fmt.Errorf("dumping rules: %w", err)
	}
	return rulesFromMessages(msgs), nil
}

// Rule describes a policy rule to install or remove. A zero Table with
// action to-table targets main; a zero Action means to-table.
type Rule struct {
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

func (r Rule) pack() []byte {
	action := r.Action
	if action == 0 {
		action = RuleActionToTable
	}
	table := r.Table
	if action == RuleActionToTable && table == 0 {
		table = uint32(TableMain)
	}
	headerTable := uint8(table)
	if table > 255 {
		headerTable = TableUnspec
	}
	srcLen, dstLen := uint8(0), uint8(0)
	if r.Src.IsValid() {
		srcLen = uint8(r.Src.Bits())
	}
	if r.Dst.IsValid() {
		dstLen = uint8(r.Dst.Bits())
	}

	payload := packRtMsg(r.Family, dstLen, srcLen, 0, headerTable, 0, 0, action, 0)
	if r.Src.IsValid() {
		payload = append(payload, netlink.PackAttr(FRA_SRC, r.Src.Addr().AsSlice())...)
	}
	if r.Dst.IsValid() {
		payload = append(payload, netlink.PackAttr(FRA_DST, r.Dst.Addr().AsSlice())...)
	}
	if r.Priority != 0 {
		payload = append(payload, netlink.PackAttrU32(FRA_PRIORITY, r.Priority)...)
	}
	if r.IIFName != "" {
		payload = append(payload, netlink.PackAttrString(FRA_IIFNAME, r.IIFName)...)
	}
	if r.OIFName != "" {
		payload = append(payload, netlink.PackAttrString(FRA_OIFNAME, r.OIFName)...)
	}
	if r.FwMark != 0 {
		payload = append(payload, netlink.PackAttrU32(FRA_FWMARK, r.FwMark)...)
		if r.FwMask != 0 {
			payload = append(payload, netlink.PackAttrU32(FRA_FWMASK, r.FwMask)...)
		}
	}
	if table > 255 {
		payload = append(payload, netlink.PackAttrU32(FRA_TABLE, table)...)
	}
	return payload
}

// AddRule installs a policy rule.
func (h *Handle) AddRule(r Rule) error {
	if err := h.ack(RTM_NEWRULE, netlink.FlagCreate|netlink.FlagExcl, r.pack()); err != nil {
		return fmt.Errorf("adding rule (prio %d): %w", r.Priority, err)
	}
	return nil
}

// DeleteRule removes a policy rule.
func (h *Handle) DeleteRule(r Rule) error {
	if err := h.ack(RTM_DELRULE, 0, r.pack()); err != nil {
		return fmt.Errorf("deleting rule (prio %d): %w", r.Priority, err)
	}
	return nil
}

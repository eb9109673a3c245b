package rtnl

import (
	"errors"
	"fmt"
	"log/slog"
	"net/netip"

	"github.com/truenas/go-netif/netlink"
)

// packRtMsg encodes the 12-byte rtmsg fixed header.
func packRtMsg(family, dstLen, srcLen, tos, table, protocol, scope, rtype uint8, flags uint32) []byte {
	buf := make([]byte, rtMsgLen)
	buf[0] = family
	buf[1] = dstLen
	buf[2] = srcLen
	buf[3] = tos
	buf[4] = table
	buf[5] = protocol
	buf[6] = scope
	buf[7] = rtype
	native.PutUint32(buf[8:12], flags)
	return buf
}

// decodeRoute returns ok=false for malformed records and for cloned
// (cache) entries, which are kernel ephemera rather than table state.
func decodeRoute(m netlink.Message, nameCache map[int]string) (RouteInfo, bool) {
	if len(m.Data) < rtMsgLen {
		return RouteInfo{}, false
	}
	if native.Uint32(m.Data[8:12])&rtmFlagCloned != 0 {
		return RouteInfo{}, false
	}
	info := RouteInfo{
		Family:   m.Data[0],
		Table:    uint32(m.Data[4]),
		Protocol: m.Data[5],
		Scope:    m.Data[6],
		Type:     m.Data[7],
	}
	dstLen := int(m.Data[1])

	attrs := netlink.ParseAttrs(m.Data, rtMsgLen)
	if b, ok := attrs.Bytes(RTA_DST); ok {
		info.Dst = netip.PrefixFrom(addrFromBytes(b), dstLen)
	}
	if b, ok := attrs.Bytes(RTA_GATEWAY); ok {
		info.Gateway = addrFromBytes(b)
	}
	if b, ok := attrs.Bytes(RTA_PREFSRC); ok {
		info.PrefSrc = addrFromBytes(b)
	}
	if oif, ok := attrs.Uint32(RTA_OIF); ok {
		info.OIF = int(oif)
		info.InterfaceName = resolveIfName(info.OIF, nameCache)
	}
	info.Priority, _ = attrs.Uint32(RTA_PRIORITY)
	// the u8 header table field saturates at 255; the attr carries the
	// real id for user tables above that
	if table, ok := attrs.Uint32(RTA_TABLE); ok {
		info.Table = table
	}
	return info, true
}

func routesFromMessages(msgs []netlink.Message) []RouteInfo {
	cache := map[int]string{}
	routes := make([]RouteInfo, 0, len(msgs))
	for _, m := range msgs {
		if info, ok := decodeRoute(m, cache); ok {
			routes = append(routes, info)
		}
	}
	return routes
}

// Routes dumps the routing tables for family (FamilyUnspec for both).
// A nonzero table keeps only that table's routes.
func (h *Handle) Routes(family uint8, table uint32) ([]RouteInfo, error) {
	msgs, err := h.dump(RTM_GETROUTE, packRtMsg(family, 0, 0, 0, 0, 0, 0, 0, 0))
	if err != nil {
		return nil, fmt.Errorf("dumping routes: %w", err)
	}
	routes := routesFromMessages(msgs)
	if table == 0 {
		return routes, nil
	}
	out := routes[:0]
	for _, r := range routes {
		if r.Table == table {
			out = append(out, r)
		}
	}
	return out, nil
}

// LinkRoutes dumps the routes leaving through one interface.
func (h *Handle) LinkRoutes(ref InterfaceRef, family uint8) ([]RouteInfo, error) {
	ref, err := ref.Resolve()
	if err != nil {
		return nil, err
	}
	routes, err := h.Routes(family, 0)
	if err != nil {
		return nil, err
	}
	out := routes[:0]
	for _, r := range routes {
		if r.OIF == ref.index {
			out = append(out, r)
		}
	}
	return out, nil
}

// DefaultRoute returns the default route for family, or nil when the
// main table has none.
func (h *Handle) DefaultRoute(family uint8) (*RouteInfo, error) {
	routes, err := h.Routes(family, uint32(TableMain))
	if err != nil {
		return nil, err
	}
	for _, r := range routes {
		if r.Default() {
			return &r, nil
		}
	}
	return nil, nil
}

// Route describes a route to install or remove. Zero values fall back
// to the usual defaults: table main, type unicast, protocol boot, and
// a scope derived from whether a gateway is present.
type Route struct {
	Dst       netip.Prefix // invalid means the default route
	Gateway   netip.Addr
	PrefSrc   netip.Addr
	Interface InterfaceRef
	Table     uint32
	Protocol  uint8
	Scope     *uint8
	Type      uint8
	Priority  uint32
}

func (r Route) family() (uint8, error) {
	switch {
	case r.Dst.IsValid():
		if r.Dst.Addr().Is4() {
			return FamilyInet, nil
		}
		return FamilyInet6, nil
	case r.Gateway.IsValid():
		if r.Gateway.Is4() {
			return FamilyInet, nil
		}
		return FamilyInet6, nil
	}
	return FamilyUnspec, errors.New("rtnl: route needs a destination or a gateway")
}

func (r Route) pack() ([]byte, error) {
	family, err := r.family()
	if err != nil {
		return nil, err
	}

	table := r.Table
	if table == 0 {
		table = uint32(TableMain)
	}
	rtype := r.Type
	if rtype == TypeUnspec {
		rtype = TypeUnicast
	}
	proto := r.Protocol
	if proto == ProtoUnspec {
		proto = ProtoBoot
	}
	var scope uint8
	switch {
	case r.Scope != nil:
		scope = *r.Scope
	case r.Gateway.IsValid():
		scope = ScopeUniverse
	default:
		scope = ScopeLink
	}

	dstLen := uint8(0)
	if r.Dst.IsValid() {
		dstLen = uint8(r.Dst.Bits())
	}
	headerTable := uint8(table)
	if table > 255 {
		headerTable = TableUnspec
	}
	payload := packRtMsg(family, dstLen, 0, 0, headerTable, proto, scope, rtype, 0)

	if r.Dst.IsValid() {
		payload = append(payload, netlink.PackAttr(RTA_DST, r.Dst.Addr().AsSlice())...)
	}
	if r.Gateway.IsValid() {
		payload = append(payload, netlink.PackAttr(RTA_GATEWAY, r.Gateway.AsSlice())...)
	}
	if r.PrefSrc.IsValid() {
		payload = append(payload, netlink.PackAttr(RTA_PREFSRC, r.PrefSrc.AsSlice())...)
	}
	if r.Interface != (InterfaceRef{}) {
		ref, err := r.Interface.Resolve()
		if err != nil {
			return nil, err
		}
		payload = append(payload, netlink.PackAttrU32(RTA_OIF, uint32(ref.index))...)
	}
	if r.Priority != 0 {
		payload = append(payload, netlink.PackAttrU32(RTA_PRIORITY, r.Priority)...)
	}
	if table > 255 {
		payload = append(payload, netlink.PackAttrU32(RTA_TABLE, table)...)
	}
	return payload, nil
}

// AddRoute installs a route, failing with ErrRouteExists when the
// exact route is already present.
func (h *Handle) AddRoute(r Route) error {
	payload, err := r.pack()
	if err != nil {
		return err
	}
	err = h.ack(RTM_NEWROUTE, netlink.FlagCreate|netlink.FlagExcl, payload)
	if errors.Is(err, netlink.ErrExists) {
		return fmt.Errorf("adding route to %s: %w", r.Dst, ErrRouteExists)
	}
	if err != nil {
		return fmt.Errorf("adding route to %s: %w", r.Dst, err)
	}
	return nil
}

// ReplaceRoute installs a route, overwriting any existing route to the
// same destination.
func (h *Handle) ReplaceRoute(r Route) error {
	payload, err := r.pack()
	if err != nil {
		return err
	}
	if err := h.ack(RTM_NEWROUTE, netlink.FlagCreate|netlink.FlagReplace, payload); err != nil {
		return fmt.Errorf("replacing route to %s: %w", r.Dst, err)
	}
	return nil
}

// DeleteRoute removes a route, failing with ErrRouteNotFound when the
// kernel doesn't have it.
func (h *Handle) DeleteRoute(r Route) error {
	payload, err := r.pack()
	if err != nil {
		return err
	}
	err = h.ack(RTM_DELROUTE, 0, payload)
	if errors.Is(err, netlink.ErrNotFound) {
		return fmt.Errorf("deleting route to %s: %w", r.Dst, ErrRouteNotFound)
	}
	if err != nil {
		return fmt.Errorf("deleting route to %s: %w", r.Dst, err)
	}
	return nil
}

// FlushRoutes removes every route of the family from the main table,
// leaving kernel-installed routes (connected subnets, local addresses)
// alone. Individual delete failures are logged and skipped: routes
// frequently disappear on their own while the flush walks the table.
func (h *Handle) FlushRoutes(family uint8) error {
	routes, err := h.Routes(family, uint32(TableMain))
	if err != nil {
		return err
	}
	for _, r := range routes {
		if r.Protocol == ProtoKernel {
			continue
		}
		del := Route{
			Dst:      r.Dst,
			Gateway:  r.Gateway,
			Table:    r.Table,
			Priority: r.Priority,
		}
		if r.OIF != 0 {
			del.Interface = ByIndex(r.OIF)
		}
		if !r.Dst.IsValid() && !r.Gateway.IsValid() {
			continue
		}
		if err := h.DeleteRoute(del); err != nil {
			slog.Debug("couldn't flush route", "dst", r.Dst, "err", err)
		}
	}
	return nil
}

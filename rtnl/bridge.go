package rtnl

import (
	"fmt"

	"github.com/truenas/go-netif/netlink"
)

// BridgeAttrs are the creation-time knobs for a bridge. Nil pointers
// leave the kernel defaults in place.
type BridgeAttrs struct {
	STP     *bool
	Members []InterfaceRef
}

// CreateBridge creates a bridge and enslaves the given members.
func (h *Handle) CreateBridge(name string, attrs BridgeAttrs) error {
	var data []byte
	if attrs.STP != nil {
		v := uint32(0)
		if *attrs.STP {
			v = 1
		}
		data = append(data, netlink.PackAttrU32(IFLA_BR_STP_STATE, v)...)
	}
	if err := h.createLink(name, "bridge", 0, data); err != nil {
		return err
	}
	for _, member := range attrs.Members {
		if err := h.BridgeAddMember(ByName(name), member); err != nil {
			return err
		}
	}
	return nil
}

// BridgeAddMember enslaves member to the bridge.
func (h *Handle) BridgeAddMember(bridge, member InterfaceRef) error {
	bridge, err := bridge.Resolve()
	if err != nil {
		return err
	}
	if err := h.setMaster(member, bridge.index); err != nil {
		return fmt.Errorf("enslaving %s to bridge %s: %w", member, bridge, err)
	}
	return nil
}

// BridgeRemoveMember frees member from its bridge.
func (h *Handle) BridgeRemoveMember(member InterfaceRef) error {
	return h.setMaster(member, 0)
}

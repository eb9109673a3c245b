package rtnl

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/truenas/go-netif/netlink"
)

// Bond modes, the kernel's BOND_MODE_* ordering.
const (
	BondModeBalanceRR    uint8 = 0
	BondModeActiveBackup uint8 = 1
	BondModeBalanceXOR   uint8 = 2
	BondModeBroadcast    uint8 = 3
	BondMode8023AD       uint8 = 4
	BondModeBalanceTLB   uint8 = 5
	BondModeBalanceALB   uint8 = 6
)

// Transmit hash policies for balance-xor and 802.3ad.
const (
	BondXmitLayer2  uint8 = 0
	BondXmitLayer34 uint8 = 1
	BondXmitLayer23 uint8 = 2
)

// LACPDU rates for 802.3ad.
const (
	LACPRateSlow uint8 = 0
	LACPRateFast uint8 = 1
)

// BondAttrs are the creation-time knobs for a bond. Nil pointers leave
// the kernel defaults in place.
type BondAttrs struct {
	Mode           *uint8
	MIIMon         *uint32
	XmitHashPolicy *uint8
	LACPDURate     *uint8
	Primary        *InterfaceRef
	Members        []InterfaceRef
}

func (a BondAttrs) pack() ([]byte, error) {
	var data []byte
	if a.Mode != nil {
		data = append(data, netlink.PackAttrU8(IFLA_BOND_MODE, *a.Mode)...)
	}
	if a.MIIMon != nil {
		data = append(data, netlink.PackAttrU32(IFLA_BOND_MIIMON, *a.MIIMon)...)
	}
	if a.XmitHashPolicy != nil {
		data = append(data, netlink.PackAttrU8(IFLA_BOND_XMIT_HASH_POLICY, *a.XmitHashPolicy)...)
	}
	if a.LACPDURate != nil {
		data = append(data, netlink.PackAttrU8(IFLA_BOND_AD_LACP_RATE, *a.LACPDURate)...)
	}
	if a.Primary != nil {
		primary, err := a.Primary.Resolve()
		if err != nil {
			return nil, err
		}
		data = append(data, netlink.PackAttrU32(IFLA_BOND_PRIMARY, uint32(primary.index))...)
	}
	return data, nil
}

// CreateBond creates a bond and enslaves the given members. Members
// must be down before the kernel accepts them, so they are taken down
// first and the caller brings the bond up afterwards.
func (h *Handle) CreateBond(name string, attrs BondAttrs) error {
	data, err := attrs.pack()
	if err != nil {
		return err
	}
	if err := h.createLink(name, "bond", 0, data); err != nil {
		return err
	}
	for _, member := range attrs.Members {
		if err := h.BondAddMember(ByName(name), member); err != nil {
			return err
		}
	}
	return nil
}

// BondAddMember enslaves member to the bond, taking it down first.
func (h *Handle) BondAddMember(bond, member InterfaceRef) error {
	bond, err := bond.Resolve()
	if err != nil {
		return err
	}
	if err := h.SetLinkDown(member); err != nil {
		return err
	}
	if err := h.setMaster(member, bond.index); err != nil {
		return fmt.Errorf("enslaving %s to bond %s: %w", member, bond, err)
	}
	return nil
}

// BondRemoveMember frees member from its bond.
func (h *Handle) BondRemoveMember(member InterfaceRef) error {
	return h.setMaster(member, 0)
}

// setBondOption changes one bond option on an existing bond via
// RTM_NEWLINK with nested LINKINFO data.
func (h *Handle) setBondOption(bond InterfaceRef, attr []byte) error {
	bond, err := bond.Resolve()
	if err != nil {
		return err
	}
	payload := packIfInfomsg(FamilyUnspec, 0, int32(bond.index), 0, 0)
	linkinfo := netlink.PackAttrString(IFLA_INFO_KIND, "bond")
	linkinfo = append(linkinfo, netlink.PackAttrNested(IFLA_INFO_DATA, attr)...)
	payload = append(payload, netlink.PackAttrNested(IFLA_LINKINFO, linkinfo)...)
	return h.ack(RTM_NEWLINK, 0, payload)
}

// SetBondMode changes the bond mode. The kernel refuses while members
// are enslaved.
func (h *Handle) SetBondMode(bond InterfaceRef, mode uint8) error {
	err := h.setBondOption(bond, netlink.PackAttrU8(IFLA_BOND_MODE, mode))
	if err != nil && (netlink.IsErrno(err, unix.ENOTEMPTY) || netlink.IsErrno(err, unix.EBUSY)) {
		return fmt.Errorf("setting mode on %s: %w", bond, ErrBondHasMembers)
	}
	if err != nil {
		return fmt.Errorf("setting mode on %s: %w", bond, err)
	}
	return nil
}

// SetBondPrimary picks the primary member for active-backup bonds.
func (h *Handle) SetBondPrimary(bond, primary InterfaceRef) error {
	primary, err := primary.Resolve()
	if err != nil {
		return err
	}
	if err := h.setBondOption(bond, netlink.PackAttrU32(IFLA_BOND_PRIMARY, uint32(primary.index))); err != nil {
		return fmt.Errorf("setting primary on %s: %w", bond, err)
	}
	return nil
}

// SetBondXmitHashPolicy changes the transmit hash policy.
func (h *Handle) SetBondXmitHashPolicy(bond InterfaceRef, policy uint8) error {
	if err := h.setBondOption(bond, netlink.PackAttrU8(IFLA_BOND_XMIT_HASH_POLICY, policy)); err != nil {
		return fmt.Errorf("setting xmit hash policy on %s: %w", bond, err)
	}
	return nil
}

// SetLACPDURate changes the 802.3ad LACPDU rate.
func (h *Handle) SetLACPDURate(bond InterfaceRef, rate uint8) error {
	if err := h.setBondOption(bond, netlink.PackAttrU8(IFLA_BOND_AD_LACP_RATE, rate)); err != nil {
		return fmt.Errorf("setting LACPDU rate on %s: %w", bond, err)
	}
	return nil
}

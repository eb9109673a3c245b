package ethtool

import (
	"fmt"
	"sort"
)

// LinkModesInfo is the decoded LINKMODES_GET reply. Speed is nil when
// the driver reports no negotiated rate.
type LinkModesInfo struct {
	Speed          *uint32 // Mb/s
	Duplex         string  // "Full", "Half" or "Unknown"
	Autoneg        bool
	SupportedModes []string
}

// LinkModes queries negotiated speed, duplex, autoneg and the
// supported mode names for ifname.
func (c *Client) LinkModes(ifname string) (LinkModesInfo, error) {
	modeNames, err := c.linkModeNameTable()
	if err != nil {
		return LinkModesInfo{}, err
	}
	replies, err := c.request(msgLinkmodesGet, makeHeader(ifname))
	if err != nil {
		return LinkModesInfo{}, fmt.Errorf("querying link modes of %q: %w", ifname, err)
	}

	info := LinkModesInfo{Duplex: "Unknown"}
	for _, attrs := range replies {
		if speed, ok := attrs.Uint32(attrLinkmodesSpeed); ok && speed != speedUnknown {
			info.Speed = &speed
		}
		if duplex, ok := attrs.Uint8(attrLinkmodesDuplex); ok {
			switch duplex {
			case duplexFull:
				info.Duplex = "Full"
			case duplexHalf:
				info.Duplex = "Half"
			}
		}
		if autoneg, ok := attrs.Uint8(attrLinkmodesAutoneg); ok {
			info.Autoneg = autoneg == 1
		}
		if ours, ok := attrs.Bytes(attrLinkmodesOurs); ok {
			info.SupportedModes = namedBits(decodeBitset(ours).Value, modeNames)
		}
	}
	return info, nil
}

// namedBits maps a set of bit indices to their names, sorted by index;
// unnamed bits are dropped.
func namedBits(bits map[uint32]struct{}, names map[uint32]string) []string {
	indices := make([]uint32, 0, len(bits))
	for bit := range bits {
		indices = append(indices, bit)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })
	var out []string
	for _, bit := range indices {
		if name, ok := names[bit]; ok {
			out = append(out, name)
		}
	}
	return out
}

// LinkInfo is the decoded LINKINFO_GET reply. PHYAddr is nil when the
// driver reports none.
type LinkInfo struct {
	Port        string
	PortNum     uint8
	Transceiver string // "internal" or "external"
	PHYAddr     *uint8
}

// PhysicalLinkInfo queries port type, PHY address and transceiver
// placement for ifname.
func (c *Client) PhysicalLinkInfo(ifname string) (LinkInfo, error) {
	replies, err := c.request(msgLinkinfoGet, makeHeader(ifname))
	if err != nil {
		return LinkInfo{}, fmt.Errorf("querying link info of %q: %w", ifname, err)
	}

	info := LinkInfo{Port: "Unknown", Transceiver: "internal"}
	for _, attrs := range replies {
		if port, ok := attrs.Uint8(attrLinkinfoPort); ok {
			info.PortNum = port
			if name, ok := portNames[port]; ok {
				info.Port = name
			} else {
				info.Port = fmt.Sprintf("Unknown(%d)", port)
			}
		}
		if xcvr, ok := attrs.Uint8(attrLinkinfoTransceiver); ok && xcvr == transceiverExternal {
			info.Transceiver = "external"
		}
		if phyaddr, ok := attrs.Uint8(attrLinkinfoPhyaddr); ok {
			info.PHYAddr = &phyaddr
		}
	}
	return info, nil
}

// LinkState reports whether ifname has carrier.
func (c *Client) LinkState(ifname string) (bool, error) {
	replies, err := c.request(msgLinkstateGet, makeHeader(ifname))
	if err != nil {
		return false, fmt.Errorf("querying link state of %q: %w", ifname, err)
	}
	for _, attrs := range replies {
		if link, ok := attrs.Uint8(attrLinkstateLink); ok {
			return link == 1, nil
		}
	}
	return false, nil
}

// FeaturesInfo groups offload features by state. Supported leaves out
// the fixed (NOCHANGE) features.
type FeaturesInfo struct {
	Enabled   []string
	Disabled  []string
	Supported []string
}

// Features queries the offload feature states of ifname.
func (c *Client) Features(ifname string) (FeaturesInfo, error) {
	featureNames, err := c.featureNameTable()
	if err != nil {
		return FeaturesInfo{}, err
	}
	replies, err := c.request(msgFeaturesGet, makeHeader(ifname))
	if err != nil {
		return FeaturesInfo{}, fmt.Errorf("querying features of %q: %w", ifname, err)
	}

	var hw, active, nochange Bitset
	for _, attrs := range replies {
		if b, ok := attrs.Bytes(attrFeaturesHW); ok {
			hw = decodeBitset(b)
		}
		if b, ok := attrs.Bytes(attrFeaturesActive); ok {
			active = decodeBitset(b)
		}
		if b, ok := attrs.Bytes(attrFeaturesNochange); ok {
			nochange = decodeBitset(b)
		}
	}

	info := FeaturesInfo{}
	indices := make([]uint32, 0, len(hw.Value))
	for bit := range hw.Value {
		indices = append(indices, bit)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })
	for _, bit := range indices {
		name, ok := featureNames[bit]
		if !ok {
			name = fmt.Sprintf("feature-%d", bit)
		}
		if !nochange.Has(bit) {
			info.Supported = append(info.Supported, name)
		}
		if active.Has(bit) {
			info.Enabled = append(info.Enabled, name)
		} else {
			info.Disabled = append(info.Disabled, name)
		}
	}
	return info, nil
}

package ethtool

import (
	"fmt"

	"github.com/truenas/go-netif/netlink"
)

// FECMode names a forward error correction encoding.
type FECMode string

const (
	FECAuto  FECMode = "AUTO"
	FECOff   FECMode = "OFF"
	FECRS    FECMode = "RS"
	FECBaseR FECMode = "BASER"
	FECLLRS  FECMode = "LLRS"
)

var fecModeBits = map[FECMode]uint32{
	FECOff:   fecBitOff,
	FECRS:    fecBitRS,
	FECBaseR: fecBitBaseR,
	FECLLRS:  fecBitLLRS,
}

func fecModeFromBit(bit uint32) (FECMode, bool) {
	for mode, b := range fecModeBits {
		if b == bit {
			return mode, true
		}
	}
	return "", false
}

// FEC queries the active FEC mode of ifname. When the driver
// auto-selects the encoding, FECAuto is returned regardless of what is
// currently on the wire. The empty mode means the interface reported
// nothing recognisable.
func (c *Client) FEC(ifname string) (FECMode, error) {
	replies, err := c.request(msgFECGet, makeHeader(ifname))
	if err != nil {
		return "", fmt.Errorf("querying FEC of %q: %w", ifname, err)
	}

	auto := false
	var active FECMode
	for _, attrs := range replies {
		if v, ok := attrs.Uint8(attrFECAuto); ok {
			auto = v != 0
		}
		// ACTIVE is a link mode bit index, not a bitmask
		if bit, ok := attrs.Uint32(attrFECActive); ok {
			if mode, ok := fecModeFromBit(bit); ok {
				active = mode
			}
		}
	}
	if auto {
		return FECAuto, nil
	}
	return active, nil
}

// SetFEC sets the FEC mode of ifname. FECAuto hands the choice back to
// the driver; any other mode is requested through a compact bitset
// masking all known FEC bits.
func (c *Client) SetFEC(ifname string, mode FECMode) error {
	attrs := makeHeader(ifname)
	switch mode {
	case FECAuto:
		attrs = append(attrs, netlink.PackAttrU8(attrFECAuto, 1)...)
	default:
		bit, ok := fecModeBits[mode]
		if !ok {
			return fmt.Errorf("ethtool: invalid FEC mode %q", mode)
		}
		mask := map[uint32]struct{}{}
		size := uint32(0)
		for _, b := range fecModeBits {
			mask[b] = struct{}{}
			if b+1 > size {
				size = b + 1
			}
		}
		bitset := packCompactBitset(map[uint32]struct{}{bit: {}}, mask, size)
		attrs = append(attrs, netlink.PackAttrNested(attrFECModes, bitset)...)
		attrs = append(attrs, netlink.PackAttrU8(attrFECAuto, 0)...)
	}

	if _, err := c.request(msgFECSet, attrs); err != nil {
		return fmt.Errorf("setting FEC on %q: %w", ifname, err)
	}
	return nil
}

package ethtool

import (
	"github.com/truenas/go-netif/netlink"
)

// Bitset is a decoded ethtool bitset: the sets hold bit indices, not
// masks. Value are the bits that are on, Mask the bits the reply (or
// request) actually speaks for.
type Bitset struct {
	Size  uint32
	Value map[uint32]struct{}
	Mask  map[uint32]struct{}
}

// Has reports whether bit is set in Value.
func (b Bitset) Has(bit uint32) bool {
	_, ok := b.Value[bit]
	return ok
}

// decodeBitset parses a nested bitset blob in either wire form. The
// compact form carries SIZE plus VALUE/MASK bitmaps; the verbose form
// carries a BITS list of BIT{INDEX, VALUE} nests. Drivers pick one but
// both are folded into the same result.
func decodeBitset(data []byte) Bitset {
	bs := Bitset{
		Value: map[uint32]struct{}{},
		Mask:  map[uint32]struct{}{},
	}
	attrs := netlink.ParseAttrs(data, 0)
	bs.Size, _ = attrs.Uint32(attrBitsetSize)

	if value, ok := attrs.Bytes(attrBitsetValue); ok {
		bitmapInto(value, bs.Value)
	}
	if mask, ok := attrs.Bytes(attrBitsetMask); ok {
		bitmapInto(mask, bs.Mask)
	}

	if bits, ok := attrs.Bytes(attrBitsetBits); ok {
		netlink.ScanAttrs(bits, 0, func(typ uint16, data []byte) {
			if typ != attrBitsetBitsBit {
				return
			}
			bit := netlink.ParseAttrs(data, 0)
			index, ok := bit.Uint32(attrBitsetBitIndex)
			if !ok {
				return
			}
			on := true
			if v, ok := bit.Bytes(attrBitsetBitValue); ok {
				on = len(v) > 0 && v[0] != 0
			}
			if on {
				bs.Value[index] = struct{}{}
			}
			bs.Mask[index] = struct{}{}
		})
	}
	return bs
}

func bitmapInto(bitmap []byte, set map[uint32]struct{}) {
	for i, b := range bitmap {
		for bit := 0; bit < 8; bit++ {
			if b&(1<<bit) != 0 {
				set[uint32(i*8+bit)] = struct{}{}
			}
		}
	}
}

// packCompactBitset encodes SIZE/VALUE/MASK for a set request.
func packCompactBitset(value, mask map[uint32]struct{}, size uint32) []byte {
	byteCount := (size + 7) / 8
	valueBytes := make([]byte, byteCount)
	maskBytes := make([]byte, byteCount)
	for bit := range value {
		valueBytes[bit/8] |= 1 << (bit % 8)
	}
	for bit := range mask {
		maskBytes[bit/8] |= 1 << (bit % 8)
	}
	out := netlink.PackAttrU32(attrBitsetSize, size)
	out = append(out, netlink.PackAttr(attrBitsetValue, valueBytes)...)
	out = append(out, netlink.PackAttr(attrBitsetMask, maskBytes)...)
	return out
}

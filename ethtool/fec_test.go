package ethtool

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFECModeBitMapping(t *testing.T) {
	for mode, bit := range fecModeBits {
		got, ok := fecModeFromBit(bit)
		if !ok || got != mode {
			t.Errorf("bit %d maps to (%q, %v), want (%q, true)", bit, got, ok, mode)
		}
	}
	if _, ok := fecModeFromBit(12); ok {
		t.Error("non-FEC bit index mapped to a mode")
	}
}

func TestFECSetBitsetShape(t *testing.T) {
	// the LLRS bit at 74 forces the bitmap past the first eight bytes
	mask := bitIndexSet(fecBitOff, fecBitRS, fecBitBaseR, fecBitLLRS)
	data := packCompactBitset(bitIndexSet(fecBitRS), mask, fecBitLLRS+1)

	bs := decodeBitset(data)
	if bs.Size != fecBitLLRS+1 {
		t.Errorf("size = %d, want %d", bs.Size, fecBitLLRS+1)
	}
	if diff := cmp.Diff(bitIndexSet(fecBitRS), bs.Value); diff != "" {
		t.Errorf("value bits (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(mask, bs.Mask); diff != "" {
		t.Errorf("mask bits (-want +got):\n%s", diff)
	}
}

package netlink

import (
	"bytes"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

func TestPackAttrPadding(t *testing.T) {
	for _, payloadLen := range []int{0, 1, 3, 4, 5} {
		payload := bytes.Repeat([]byte{0xAB}, payloadLen)
		buf := PackAttr(7, payload)

		if len(buf)%4 != 0 {
			t.Errorf("payload len %d: encoded length %d not 4-aligned", payloadLen, len(buf))
		}
		if got, want := int(native.Uint16(buf[0:2])), attrHeaderLen+payloadLen; got != want {
			t.Errorf("payload len %d: declared length %d, want unpadded %d", payloadLen, got, want)
		}
		for i := attrHeaderLen + payloadLen; i < len(buf); i++ {
			if buf[i] != 0 {
				t.Errorf("payload len %d: padding byte %d is %#x, want 0", payloadLen, i, buf[i])
			}
		}
	}
}

func TestAttrRoundTrip(t *testing.T) {
	for _, typ := range []uint16{0, 1, 0x7FFF} {
		for _, payloadLen := range []int{0, 1, 3, 4, 5} {
			payload := bytes.Repeat([]byte{0x5C}, payloadLen)
			attrs := ParseAttrs(PackAttr(typ, payload), 0)

			got, ok := attrs.Bytes(typ)
			if !ok {
				t.Fatalf("type %d payload len %d: attribute missing after round trip", typ, payloadLen)
			}
			if diff := cmp.Diff(payload, got); diff != "" {
				t.Errorf("type %d payload len %d: payload mismatch (-want +got):\n%s", typ, payloadLen, diff)
			}
		}
	}
}

func TestParseAttrsStripsNestedFlag(t *testing.T) {
	inner := PackAttrU32(1, 42)
	buf := PackAttrNested(5, inner)

	attrs := ParseAttrs(buf, 0)
	nested, ok := attrs.Bytes(5)
	if !ok {
		t.Fatal("nested attribute not found under its unflagged type")
	}

	v, ok := ParseAttrs(nested, 0).Uint32(1)
	if !ok || v != 42 {
		t.Errorf("inner attribute = (%d, %v), want (42, true)", v, ok)
	}
}

func TestParseAttrsTruncated(t *testing.T) {
	buf := append(PackAttrU32(1, 7), 0xFF, 0xFF) // trailing junk shorter than a header
	attrs := ParseAttrs(buf, 0)
	if v, ok := attrs.Uint32(1); !ok || v != 7 {
		t.Errorf("attribute before truncation = (%d, %v), want (7, true)", v, ok)
	}
	if len(attrs) != 1 {
		t.Errorf("parsed %d attributes, want 1", len(attrs))
	}

	// a declared length running past the buffer ends the walk too
	bad := PackAttrU32(2, 9)
	native.PutUint16(bad[0:2], 200)
	if got := ParseAttrs(bad, 0); len(got) != 0 {
		t.Errorf("overrunning attribute parsed as %v, want none", got)
	}
}

func TestScanAttrsPreservesOrder(t *testing.T) {
	var buf []byte
	buf = append(buf, PackAttrString(53, "eth0-alt")...)
	buf = append(buf, PackAttrString(53, "uplink")...)

	var got []string
	ScanAttrs(buf, 0, func(typ uint16, data []byte) {
		if typ == 53 {
			got = append(got, AttrString(data))
		}
	})
	if diff := cmp.Diff([]string{"eth0-alt", "uplink"}, got); diff != "" {
		t.Errorf("repeated attribute order (-want +got):\n%s", diff)
	}
}

func TestAttrString(t *testing.T) {
	if got := AttrString([]byte("eth0\x00")); got != "eth0" {
		t.Errorf("AttrString = %q, want %q", got, "eth0")
	}
	if got := AttrString([]byte{0xFF, 0xFE, 0x00}); got == "" || !utf8.ValidString(got) {
		t.Errorf("AttrString on invalid UTF-8 = %q, want valid replacement", got)
	}
}

func TestAttributeMapShortPayloads(t *testing.T) {
	attrs := ParseAttrs(PackAttr(4, []byte{0x01}), 0)
	if _, ok := attrs.Uint32(4); ok {
		t.Error("Uint32 on a 1-byte payload reported ok")
	}
	if _, ok := attrs.Uint16(4); ok {
		t.Error("Uint16 on a 1-byte payload reported ok")
	}
	if v, ok := attrs.Uint8(4); !ok || v != 0x01 {
		t.Errorf("Uint8 = (%d, %v), want (1, true)", v, ok)
	}
}

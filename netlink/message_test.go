package netlink

import "testing"

func TestPackMessage(t *testing.T) {
	payload := []byte{1, 2, 3, 4}
	buf := PackMessage(18, FlagRequest|FlagDump, payload, 9)

	if got, want := len(buf), HeaderLen+len(payload); got != want {
		t.Fatalf("message length = %d, want %d", got, want)
	}
	if got := native.Uint32(buf[0:4]); got != uint32(len(buf)) {
		t.Errorf("declared length = %d, want %d", got, len(buf))
	}
	if got := native.Uint16(buf[4:6]); got != 18 {
		t.Errorf("type = %d, want 18", got)
	}
	if got := native.Uint16(buf[6:8]); got != FlagRequest|FlagDump {
		t.Errorf("flags = %#x, want %#x", got, FlagRequest|FlagDump)
	}
	if got := native.Uint32(buf[8:12]); got != 9 {
		t.Errorf("seq = %d, want 9", got)
	}
	if got := native.Uint32(buf[12:16]); got != 0 {
		t.Errorf("pid = %d, want 0", got)
	}
}

func TestGenlPayload(t *testing.T) {
	attrs := PackAttrString(2, "ethtool")
	p := GenlPayload(3, 1, attrs)

	if p[0] != 3 || p[1] != 1 || p[2] != 0 || p[3] != 0 {
		t.Errorf("genl header = % x, want 03 01 00 00", p[:4])
	}
	if name, ok := ParseAttrs(p, GenlHeaderLen).String(2); !ok || name != "ethtool" {
		t.Errorf("family name attr = (%q, %v), want (ethtool, true)", name, ok)
	}
}

func TestHtons(t *testing.T) {
	be := Htons(0x1234)
	if NativeEndian().String() == "LittleEndian" {
		if be != 0x3412 {
			t.Errorf("Htons(0x1234) = %#x, want 0x3412", be)
		}
	} else if be != 0x1234 {
		t.Errorf("Htons(0x1234) = %#x, want 0x1234 on big endian", be)
	}
}

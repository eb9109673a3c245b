package netlink

import (
	"strings"
	"unicode/utf8"
)

// nlaAlignOf rounds an attribute length up to the 4-byte boundary
// mandated by NLA_ALIGNTO.
func nlaAlignOf(l int) int {
	return (l + 3) &^ 3
}

// PackAttr encodes one attribute: u16 length (header + payload, before
// padding), u16 type, payload, zero padding up to the next multiple of
// four. Callers wrapping a sub-attribute list are responsible for
// setting AttrNested on typ (or using PackAttrNested).
func PackAttr(typ uint16, data []byte) []byte {
	l := attrHeaderLen + len(data)
	buf := make([]byte, nlaAlignOf(l))
	native.PutUint16(buf[0:2], uint16(l))
	native.PutUint16(buf[2:4], typ)
	copy(buf[attrHeaderLen:], data)
	return buf
}

func PackAttrU8(typ uint16, v uint8) []byte {
	return PackAttr(typ, []byte{v})
}

func PackAttrU16(typ uint16, v uint16) []byte {
	b := make([]byte, 2)
	native.PutUint16(b, v)
	return PackAttr(typ, b)
}

func PackAttrU32(typ uint16, v uint32) []byte {
	b := make([]byte, 4)
	native.PutUint32(b, v)
	return PackAttr(typ, b)
}

// PackAttrString encodes a NUL-terminated string attribute.
func PackAttrString(typ uint16, s string) []byte {
	return PackAttr(typ, append([]byte(s), 0))
}

// PackAttrNested wraps an already-encoded attribute list, setting the
// nested flag on the outer type.
func PackAttrNested(typ uint16, attrs []byte) []byte {
	return PackAttr(typ|AttrNested, attrs)
}

// AttributeMap maps attribute types (nested flag stripped) to their raw
// payloads. When a type repeats in a flat list the last occurrence
// wins; ordered multi-valued lists (e.g. alternate interface names)
// need ScanAttrs instead.
type AttributeMap map[uint16][]byte

// ScanAttrs walks the attribute list in b starting at offset, calling
// fn for each well-formed attribute with the nested flag already
// stripped from the type. A header declaring a length shorter than the
// header itself, or one that would run past the buffer, ends the walk
// quietly: kernel dumps may carry trailing or vendor-specific bytes,
// and the attributes seen up to that point are still good.
func ScanAttrs(b []byte, offset int, fn func(typ uint16, data []byte)) {
	for offset+attrHeaderLen <= len(b) {
		l := int(native.Uint16(b[offset : offset+2]))
		typ := native.Uint16(b[offset+2 : offset+4])
		if l < attrHeaderLen || offset+l > len(b) {
			return
		}
		fn(typ&^AttrNested, b[offset+attrHeaderLen:offset+l])
		offset += nlaAlignOf(l)
	}
}

// ParseAttrs decodes the attribute list in b starting at offset.
func ParseAttrs(b []byte, offset int) AttributeMap {
	attrs := AttributeMap{}
	ScanAttrs(b, offset, func(typ uint16, data []byte) {
		attrs[typ] = data
	})
	return attrs
}

// Bytes returns the raw payload for typ.
func (m AttributeMap) Bytes(typ uint16) ([]byte, bool) {
	b, ok := m[typ]
	return b, ok
}

func (m AttributeMap) Uint8(typ uint16) (uint8, bool) {
	b, ok := m[typ]
	if !ok || len(b) < 1 {
		return 0, false
	}
	return b[0], true
}

func (m AttributeMap) Uint16(typ uint16) (uint16, bool) {
	b, ok := m[typ]
	if !ok || len(b) < 2 {
		return 0, false
	}
	return native.Uint16(b[:2]), true
}

func (m AttributeMap) Uint32(typ uint16) (uint32, bool) {
	b, ok := m[typ]
	if !ok || len(b) < 4 {
		return 0, false
	}
	return native.Uint32(b[:4]), true
}

// String decodes a string payload for typ, see AttrString.
func (m AttributeMap) String(typ uint16) (string, bool) {
	b, ok := m[typ]
	if !ok {
		return "", false
	}
	return AttrString(b), true
}

// AttrString decodes a string attribute payload: trailing NULs are
// stripped and invalid UTF-8 sequences replaced rather than rejected,
// since driver-provided names are not guaranteed to be clean.
func AttrString(b []byte) string {
	s := strings.TrimRight(string(b), "\x00")
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, string(utf8.RuneError))
	}
	return s
}

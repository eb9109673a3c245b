package netlink

import (
	"encoding/binary"

	ne "github.com/josharian/native"
)

// Netlink headers and attribute payloads use host byte order on the
// wire; only a handful of embedded fields (inet_diag ports) are big
// endian, and those are handled where they are decoded.
var native = ne.Endian

// NativeEndian exposes the host byte order for the domain packages
// encoding fixed-header fields.
func NativeEndian() binary.ByteOrder {
	return ne.Endian
}

// Htons converts a port number to network byte order.
func Htons(in uint16) uint16 {
	if !ne.IsBigEndian {
		return in<<8 | in>>8
	}
	return in
}

package netlink

// Message is one framed netlink message as pulled off the receive
// stream: the decoded nlmsghdr fields plus the raw payload.
type Message struct {
	Type  uint16
	Flags uint16
	Seq   uint32
	PID   uint32
	Data  []byte
}

// PackMessage frames payload with the 16-byte nlmsghdr: u32 total
// length, u16 type, u16 flags, u32 sequence, u32 port id. The port id
// is left at zero; the kernel assigns one at bind time and correlates
// replies with it on its own.
func PackMessage(msgType, flags uint16, payload []byte, seq uint32) []byte {
	buf := make([]byte, HeaderLen+len(payload))
	native.PutUint32(buf[0:4], uint32(len(buf)))
	native.PutUint16(buf[4:6], msgType)
	native.PutUint16(buf[6:8], flags)
	native.PutUint32(buf[8:12], seq)
	native.PutUint32(buf[12:16], 0)
	copy(buf[HeaderLen:], payload)
	return buf
}

// GenlPayload prepends the generic netlink inner header (u8 command,
// u8 version, u16 reserved) to an encoded attribute list. The result
// is the payload of a message whose outer type is the family id.
func GenlPayload(cmd, version uint8, attrs []byte) []byte {
	payload := make([]byte, GenlHeaderLen+len(attrs))
	payload[0] = cmd
	payload[1] = version
	copy(payload[GenlHeaderLen:], attrs)
	return payload
}

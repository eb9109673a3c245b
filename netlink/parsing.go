package netlink

// Drain runs the receive loop for one request: recv is called for raw
// chunks off the socket until a terminating message shows up. A single
// chunk may hold several framed messages or only part of a dump, so
// recv is called as many times as it takes to see an ERROR or DONE
// marker. Data messages are returned in the kernel's emission order.
//
// An ERROR message with code zero is the kernel's explicit ACK and
// terminates the loop as success; a nonzero code is negated and mapped
// to a typed fault. A message flagged NLM_F_DUMP_INTR aborts the whole
// drain with ErrDumpInterrupted so the caller can retry.
func Drain(recv func() ([]byte, error)) ([]Message, error) {
	var msgs []Message
	for {
		chunk, err := recv()
		if err != nil {
			return nil, err
		}
		done, err := parseChunk(chunk, &msgs)
		if err != nil {
			return nil, err
		}
		if done {
			return msgs, nil
		}
	}
}

// parseChunk walks one raw read. Each message's extent comes from its
// own length field; advancing to the next message rounds up to the
// 4-byte boundary even though the declared length itself is unpadded.
// A truncated trailing header simply ends the chunk: the remainder, if
// any, shows up in the next read.
func parseChunk(data []byte, msgs *[]Message) (bool, error) {
	done := false
	for offset := 0; offset+HeaderLen <= len(data); {
		length := int(native.Uint32(data[offset : offset+4]))
		if length < HeaderLen {
			break
		}
		msg := Message{
			Type:  native.Uint16(data[offset+4 : offset+6]),
			Flags: native.Uint16(data[offset+6 : offset+8]),
			Seq:   native.Uint32(data[offset+8 : offset+12]),
			PID:   native.Uint32(data[offset+12 : offset+16]),
		}

		if msg.Flags&FlagDumpIntr != 0 {
			return false, ErrDumpInterrupted
		}

		switch msg.Type {
		case MsgError:
			if offset+HeaderLen+4 > len(data) {
				return false, errTruncatedError
			}
			code := int32(native.Uint32(data[offset+HeaderLen : offset+HeaderLen+4]))
			if code < 0 {
				return false, errnoError(-code)
			}
			// code 0 is an ACK, not a failure
			done = true
		case MsgDone:
			done = true
		default:
			end := offset + length
			if end > len(data) {
				end = len(data)
			}
			msg.Data = data[offset+HeaderLen : end]
			*msgs = append(*msgs, msg)
		}

		offset += nlaAlignOf(length)
	}
	return done, nil
}

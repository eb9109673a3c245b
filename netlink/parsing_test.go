package netlink

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/sys/unix"
)

// frame builds one wire message the way the kernel emits it, padded to
// the 4-byte stride successive messages in a chunk sit on.
func frame(msgType, flags uint16, seq uint32, payload []byte) []byte {
	buf := PackMessage(msgType, flags, payload, seq)
	return append(buf, make([]byte, nlaAlignOf(len(buf))-len(buf))...)
}

func errFrame(code int32) []byte {
	payload := make([]byte, 4)
	native.PutUint32(payload, uint32(code))
	return frame(MsgError, 0, 1, payload)
}

func oneShot(chunks ...[]byte) func() ([]byte, error) {
	i := 0
	return func() ([]byte, error) {
		if i >= len(chunks) {
			return nil, errors.New("recv past end of scripted response")
		}
		c := chunks[i]
		i++
		return c, nil
	}
}

func TestDrainAck(t *testing.T) {
	msgs, err := Drain(oneShot(errFrame(0)))
	if err != nil {
		t.Fatalf("Drain on ACK: %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("ACK produced %d data messages, want 0", len(msgs))
	}
}

func TestDrainErrnoMapping(t *testing.T) {
	tests := []struct {
		code int32
		want error
	}{
		{-int32(unix.ENODEV), ErrDeviceNotFound},
		{-int32(unix.EOPNOTSUPP), ErrOpNotSupported},
		{-int32(unix.EEXIST), ErrExists},
		{-int32(unix.ESRCH), ErrNotFound},
		{-int32(unix.ENOENT), ErrNotFound},
	}
	for _, tt := range tests {
		_, err := Drain(oneShot(errFrame(tt.code)))
		if !errors.Is(err, tt.want) {
			t.Errorf("code %d: got %v, want %v", tt.code, err, tt.want)
		}
	}

	_, err := Drain(oneShot(errFrame(-int32(unix.EPERM))))
	if !IsErrno(err, unix.EPERM) {
		t.Errorf("code -EPERM: got %v, want *Error carrying EPERM", err)
	}
}

func TestDrainTruncatedErrorFrame(t *testing.T) {
	// An ERROR frame cut off before its code is a corrupt stream; it
	// must surface a fault, never pass for an ACK.
	msgs, err := Drain(oneShot(frame(MsgError, 0, 1, nil)))
	if err == nil {
		t.Fatalf("Drain returned %d messages and no error on a codeless ERROR frame", len(msgs))
	}
	if !errors.Is(err, errTruncatedError) {
		t.Errorf("got %v, want the truncated-error fault", err)
	}
}

func TestDrainMultiChunkDump(t *testing.T) {
	// DATA, DATA in the first read, DONE in the second: the drain must
	// keep reading past the first chunk and return both records in order.
	first := append(
		frame(16, FlagMulti, 1, []byte("first")),
		frame(16, FlagMulti, 1, []byte("second"))...,
	)
	done := frame(MsgDone, FlagMulti, 1, nil)

	msgs, err := Drain(oneShot(first, done))
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}

	var got []string
	for _, m := range msgs {
		got = append(got, string(m.Data))
	}
	if diff := cmp.Diff([]string{"first", "second"}, got); diff != "" {
		t.Errorf("dump payloads (-want +got):\n%s", diff)
	}
}

func TestDrainDumpInterrupted(t *testing.T) {
	chunk := append(
		frame(16, FlagMulti, 1, []byte("partial")),
		frame(16, FlagMulti|FlagDumpIntr, 1, []byte("stale"))...,
	)
	_, err := Drain(oneShot(chunk))
	if !errors.Is(err, ErrDumpInterrupted) {
		t.Errorf("got %v, want ErrDumpInterrupted", err)
	}
}

func TestDrainHeaderFields(t *testing.T) {
	msgs, err := Drain(oneShot(append(
		frame(20, FlagMulti, 7, []byte{0xAA, 0xBB}),
		frame(MsgDone, FlagMulti, 7, nil)...,
	)))
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	want := Message{Type: 20, Flags: FlagMulti, Seq: 7, Data: []byte{0xAA, 0xBB}}
	if diff := cmp.Diff(want, msgs[0]); diff != "" {
		t.Errorf("decoded message (-want +got):\n%s", diff)
	}
}

func TestParseChunkSkipsNoop(t *testing.T) {
	chunk := append(
		frame(MsgNoop, 0, 1, nil),
		frame(MsgDone, 0, 1, nil)...,
	)
	// Noop carries no payload worth keeping but must not derail framing.
	var msgs []Message
	done, err := parseChunk(chunk, &msgs)
	if err != nil || !done {
		t.Fatalf("parseChunk = (%v, %v), want (true, nil)", done, err)
	}
	if len(msgs) != 1 || msgs[0].Type != MsgNoop {
		t.Errorf("messages = %+v, want the single noop record", msgs)
	}
}

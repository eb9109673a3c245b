package rtnl

import (
	"errors"
	"log/slog"
	"time"

	"github.com/truenas/go-netif/netlink"
)

// Handle owns one NETLINK_ROUTE socket. It is not safe for concurrent
// use; open one per goroutine.
type Handle struct {
	sock *netlink.Socket
	conf Config
}

// NewHandle opens a route socket with the default configuration.
func NewHandle() (*Handle, error) {
	return NewHandleWithConfig(DefaultConfig)
}

func NewHandleWithConfig(conf Config) (*Handle, error) {
	sock, err := netlink.NewRouteSocket()
	if err != nil {
		return nil, err
	}
	return &Handle{sock: sock, conf: conf}, nil
}

func (h *Handle) Close() error {
	if h.sock == nil {
		return nil
	}
	return h.sock.Close()
}

// dump runs one dump request, retrying a handful of times when the
// kernel reports the dump was interrupted by concurrent table changes.
func (h *Handle) dump(msgType uint16, payload []byte) ([]netlink.Message, error) {
	if err := h.sock.EnsureConnected(); err != nil {
		return nil, err
	}
	b := h.conf.retryBackoff()
	var lastErr error
	for attempt := 0; attempt <= h.conf.DumpRetries; attempt++ {
		msgs, err := h.sock.Request(msgType, netlink.FlagRequest|netlink.FlagDump, payload)
		if err == nil {
			return msgs, nil
		}
		if !errors.Is(err, netlink.ErrDumpInterrupted) {
			return nil, err
		}
		lastErr = err
		slog.Debug("netlink dump interrupted, retrying", "type", msgType, "attempt", attempt)
		time.Sleep(b.Duration())
	}
	return nil, lastErr
}

// filteredDump is dump with NETLINK_GET_STRICT_CHK enabled for the
// duration, which the kernel requires before it honours header-based
// dump filters. The flag is always cleared afterwards so unfiltered
// requests on the same socket keep working on older kernels.
func (h *Handle) filteredDump(msgType uint16, payload []byte) ([]netlink.Message, error) {
	if err := h.sock.EnsureConnected(); err != nil {
		return nil, err
	}
	if err := h.sock.SetStrictCheck(true); err != nil {
		return nil, err
	}
	defer func() {
		if err := h.sock.SetStrictCheck(false); err != nil {
			slog.Debug("couldn't clear NETLINK_GET_STRICT_CHK", "err", err)
		}
	}()
	return h.dump(msgType, payload)
}

// ack sends a mutation with NLM_F_ACK and the given extra flags and
// waits for the kernel's reply.
func (h *Handle) ack(msgType, flags uint16, payload []byte) error {
	if err := h.sock.EnsureConnected(); err != nil {
		return err
	}
	_, err := h.sock.Request(msgType, netlink.FlagRequest|netlink.FlagAck|flags, payload)
	return err
}

//go:build linux

package netlink

import (
	"fmt"
	"log/slog"

	"golang.org/x/sys/unix"
)

const (
	// Dumps on NETLINK_ROUTE can run long on machines with many
	// interfaces or routes, so the route socket asks for a bigger
	// receive buffer up front.
	routeRcvBuf   = 1 << 20
	defaultRcvBuf = 64 << 10

	recvChunk = 64 << 10
)

// Socket is a sequential request/response netlink endpoint. It is not
// safe for concurrent use; callers multiplexing requests keep one
// Socket per goroutine or serialise access themselves.
type Socket struct {
	fd     int
	proto  int
	rcvBuf int
	seq    uint32
}

// NewRouteSocket opens a NETLINK_ROUTE socket.
func NewRouteSocket() (*Socket, error) {
	return newSocket(ProtoRoute, routeRcvBuf)
}

// NewGenericSocket opens a NETLINK_GENERIC socket.
func NewGenericSocket() (*Socket, error) {
	return newSocket(ProtoGeneric, defaultRcvBuf)
}

// NewDiagSocket opens a NETLINK_SOCK_DIAG socket.
func NewDiagSocket() (*Socket, error) {
	return newSocket(ProtoSockDiag, defaultRcvBuf)
}

func newSocket(proto, rcvBuf int) (*Socket, error) {
	s := &Socket{fd: -1, proto: proto, rcvBuf: rcvBuf}
	if err := s.connect(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Socket) connect() error {
	fd, err := unix.Socket(unix.AF_NETLINK, unix.SOCK_RAW|unix.SOCK_CLOEXEC, s.proto)
	if err != nil {
		return fmt.Errorf("opening netlink socket (proto %d): %w", s.proto, err)
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_RCVBUF, s.rcvBuf); err != nil {
		slog.Debug("couldn't grow netlink receive buffer", "proto", s.proto, "err", err)
	}
	if err := unix.Bind(fd, &unix.SockaddrNetlink{Family: unix.AF_NETLINK}); err != nil {
		unix.Close(fd)
		return fmt.Errorf("binding netlink socket (proto %d): %w", s.proto, err)
	}
	s.fd = fd
	return nil
}

// EnsureConnected reopens the socket if the descriptor has gone bad,
// which happens when a long-lived shared handle outlives a fork or an
// explicit Close.
func (s *Socket) EnsureConnected() error {
	if s.fd >= 0 {
		if _, err := unix.FcntlInt(uintptr(s.fd), unix.F_GETFD, 0); err == nil {
			return nil
		}
	}
	return s.connect()
}

// SetStrictCheck toggles NETLINK_GET_STRICT_CHK, which the kernel
// requires for filtered address dumps and rejects for some older
// request shapes, so callers flip it around the dumps that need it.
func (s *Socket) SetStrictCheck(on bool) error {
	v := 0
	if on {
		v = 1
	}
	if err := unix.SetsockoptInt(s.fd, unix.SOL_NETLINK, unix.NETLINK_GET_STRICT_CHK, v); err != nil {
		return fmt.Errorf("setting NETLINK_GET_STRICT_CHK=%d: %w", v, err)
	}
	return nil
}

// Send frames payload with the next sequence number and writes it to
// the kernel.
func (s *Socket) Send(msgType, flags uint16, payload []byte) error {
	s.seq++
	buf := PackMessage(msgType, flags, payload, s.seq)
	if err := unix.Sendto(s.fd, buf, 0, &unix.SockaddrNetlink{Family: unix.AF_NETLINK}); err != nil {
		return fmt.Errorf("sending netlink message (type %#x): %w", msgType, err)
	}
	return nil
}

// Receive drains the kernel's response to the last Send.
func (s *Socket) Receive() ([]Message, error) {
	return Drain(func() ([]byte, error) {
		buf := make([]byte, recvChunk)
		n, _, err := unix.Recvfrom(s.fd, buf, 0)
		if err != nil {
			return nil, fmt.Errorf("receiving netlink message: %w", err)
		}
		return buf[:n], nil
	})
}

// Request is Send followed by Receive.
func (s *Socket) Request(msgType, flags uint16, payload []byte) ([]Message, error) {
	if err := s.Send(msgType, flags, payload); err != nil {
		return nil, err
	}
	return s.Receive()
}

func (s *Socket) Close() error {
	if s.fd < 0 {
		return nil
	}
	err := unix.Close(s.fd)
	s.fd = -1
	return err
}

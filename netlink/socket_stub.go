//go:build !linux

package netlink

import "errors"

// Netlink sockets only exist on Linux. The codec above still builds
// everywhere so the domain packages can run their parsing tests on any
// platform; only opening a socket is gated.

var errUnsupported = errors.New("netlink: sockets are only supported on linux")

type Socket struct{}

func NewRouteSocket() (*Socket, error)   { return nil, errUnsupported }
func NewGenericSocket() (*Socket, error) { return nil, errUnsupported }
func NewDiagSocket() (*Socket, error)    { return nil, errUnsupported }

func (s *Socket) EnsureConnected() error       { return errUnsupported }
func (s *Socket) SetStrictCheck(on bool) error { return errUnsupported }
func (s *Socket) Send(msgType, flags uint16, payload []byte) error {
	return errUnsupported
}
func (s *Socket) Receive() ([]Message, error) { return nil, errUnsupported }
func (s *Socket) Request(msgType, flags uint16, payload []byte) ([]Message, error) {
	return nil, errUnsupported
}
func (s *Socket) Close() error { return nil }

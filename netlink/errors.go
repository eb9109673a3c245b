package netlink

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

var (
	// ErrDumpInterrupted flags a dump the kernel gave up on half way
	// (NLM_F_DUMP_INTR). It is transient: callers are expected to retry
	// after a short pause rather than treat it as a hard failure.
	ErrDumpInterrupted = errors.New("netlink: dump interrupted")

	// ErrDeviceNotFound maps ENODEV replies.
	ErrDeviceNotFound = errors.New("netlink: no such device")

	// ErrOpNotSupported maps EOPNOTSUPP replies.
	ErrOpNotSupported = errors.New("netlink: operation not supported")

	// ErrExists maps EEXIST replies on NLM_F_EXCL mutations.
	ErrExists = errors.New("netlink: object already exists")

	// ErrNotFound maps ESRCH/ENOENT replies on deletions.
	ErrNotFound = errors.New("netlink: object does not exist")

	// errTruncatedError flags an NLMSG_ERROR frame too short to carry
	// its error code. The kernel never emits one, so treat it as a
	// corrupt stream rather than guess it was an ACK.
	errTruncatedError = errors.New("netlink: truncated error message")
)

// Error carries the errno from a kernel NLMSG_ERROR reply that does
// not map to one of the sentinel errors above.
type Error struct {
	Errno unix.Errno
}

func (e *Error) Error() string {
	return fmt.Sprintf("netlink: kernel error: %v (errno %d)", e.Errno, int(e.Errno))
}

// IsErrno reports whether err is a generic kernel error carrying the
// given errno.
func IsErrno(err error, errno unix.Errno) bool {
	var ne *Error
	return errors.As(err, &ne) && ne.Errno == errno
}

// errnoError translates a positive errno-style code from an ERROR
// message into a typed fault.
func errnoError(code int32) error {
	errno := unix.Errno(code)
	switch errno {
	case unix.ENODEV:
		return ErrDeviceNotFound
	case unix.EOPNOTSUPP:
		return ErrOpNotSupported
	case unix.EEXIST:
		return ErrExists
	case unix.ESRCH, unix.ENOENT:
		return ErrNotFound
	}
	return &Error{Errno: errno}
}

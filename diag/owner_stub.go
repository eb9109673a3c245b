//go:build !linux

package diag

import "errors"

// ResolveOwners needs /proc; it only works on Linux.
func ResolveOwners(infos []SockInfo) error {
	return errors.New("diag: owner resolution is only supported on linux")
}

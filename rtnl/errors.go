package rtnl

import "errors"

var (
	// ErrRouteExists comes back from AddRoute when the exact route is
	// already installed (NLM_F_EXCL rejected with EEXIST).
	ErrRouteExists = errors.New("rtnl: route already exists")

	// ErrRouteNotFound comes back from DeleteRoute for a route the
	// kernel doesn't have.
	ErrRouteNotFound = errors.New("rtnl: route does not exist")

	// ErrBondHasMembers is returned when changing a bond's mode while
	// members are still enslaved; the kernel refuses with ENOTEMPTY
	// (or EBUSY on older kernels).
	ErrBondHasMembers = errors.New("rtnl: bond still has members")
)

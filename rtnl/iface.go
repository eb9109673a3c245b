package rtnl

import (
	"errors"
	"fmt"
	"net"

	"github.com/truenas/go-netif/netlink"
)

// InterfaceRef names an interface by name or index; operations resolve
// whichever side is missing when they need it. The zero value is
// invalid.
type InterfaceRef struct {
	name  string
	index int
}

// ByName refers to an interface by name.
func ByName(name string) InterfaceRef { return InterfaceRef{name: name} }

// ByIndex refers to an interface by kernel index.
func ByIndex(index int) InterfaceRef { return InterfaceRef{index: index} }

func (r InterfaceRef) String() string {
	if r.name != "" {
		return r.name
	}
	return fmt.Sprintf("ifindex %d", r.index)
}

// Resolve fills in the missing side of the reference from the system
// interface table. A name that doesn't resolve maps to
// netlink.ErrDeviceNotFound so callers get the same error the kernel
// would have produced.
func (r InterfaceRef) Resolve() (InterfaceRef, error) {
	switch {
	case r.index != 0 && r.name != "":
		return r, nil
	case r.name != "":
		ifi, err := net.InterfaceByName(r.name)
		if err != nil {
			return r, fmt.Errorf("resolving %q: %w", r.name, netlink.ErrDeviceNotFound)
		}
		return InterfaceRef{name: r.name, index: ifi.Index}, nil
	case r.index != 0:
		ifi, err := net.InterfaceByIndex(r.index)
		if err != nil {
			return r, fmt.Errorf("resolving ifindex %d: %w", r.index, netlink.ErrDeviceNotFound)
		}
		return InterfaceRef{name: ifi.Name, index: r.index}, nil
	}
	return r, errors.New("rtnl: empty interface reference")
}

// LinkExists reports whether an interface with the given name exists.
func LinkExists(name string) bool {
	_, err := net.InterfaceByName(name)
	return err == nil
}

// resolveIfName maps an interface index to its name, memoised in cache
// across one dump.
func resolveIfName(index int, cache map[int]string) string {
	if name, ok := cache[index]; ok {
		return name
	}
	name := ""
	if ifi, err := net.InterfaceByIndex(index); err == nil {
		name = ifi.Name
	}
	cache[index] = name
	return name
}

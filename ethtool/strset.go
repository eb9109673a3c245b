package ethtool

import (
	"fmt"
	"sync"

	"github.com/truenas/go-netif/netlink"
)

// Process-wide name tables. The kernel's link-mode and feature bit
// numbering never changes at runtime, so the tables are fetched once
// and shared by every client.
var nameCache struct {
	sync.Mutex
	features  map[uint32]string
	linkModes map[uint32]string
}

// stringSet fetches one kernel string set as an index-to-name table.
// The request still needs a device header; "lo" always exists and the
// tables are global anyway.
func (c *Client) stringSet(id uint32) (map[uint32]string, error) {
	setID := netlink.PackAttrU32(attrStringsetID, id)
	stringset := netlink.PackAttrNested(attrStringsetsStringset, setID)
	stringsets := netlink.PackAttrNested(attrStrsetStringsets, stringset)

	attrs := append(makeHeader("lo"), stringsets...)
	replies, err := c.request(msgStrsetGet, attrs)
	if err != nil {
		return nil, fmt.Errorf("fetching string set %d: %w", id, err)
	}

	names := map[uint32]string{}
	for _, reply := range replies {
		if sets, ok := reply.Bytes(attrStrsetStringsets); ok {
			parseStringsets(sets, names)
		}
	}
	return names, nil
}

func parseStringsets(data []byte, names map[uint32]string) {
	netlink.ScanAttrs(data, 0, func(typ uint16, data []byte) {
		if typ != attrStringsetsStringset {
			return
		}
		if strings, ok := netlink.ParseAttrs(data, 0).Bytes(attrStringsetStrings); ok {
			parseStrings(strings, names)
		}
	})
}

func parseStrings(data []byte, names map[uint32]string) {
	netlink.ScanAttrs(data, 0, func(typ uint16, data []byte) {
		if typ != attrStringsString {
			return
		}
		attrs := netlink.ParseAttrs(data, 0)
		index, ok := attrs.Uint32(attrStringIndex)
		if !ok {
			return
		}
		if value, ok := attrs.String(attrStringValue); ok {
			names[index] = value
		}
	})
}

// featureNameTable returns the feature string set, hitting the kernel
// only on the first call per process.
func (c *Client) featureNameTable() (map[uint32]string, error) {
	if c.featureNames != nil {
		return c.featureNames, nil
	}
	nameCache.Lock()
	defer nameCache.Unlock()
	if nameCache.features == nil {
		names, err := c.stringSet(stringSetFeatures)
		if err != nil {
			return nil, err
		}
		nameCache.features = names
	}
	c.featureNames = nameCache.features
	return c.featureNames, nil
}

func (c *Client) linkModeNameTable() (map[uint32]string, error) {
	if c.linkModeNames != nil {
		return c.linkModeNames, nil
	}
	nameCache.Lock()
	defer nameCache.Unlock()
	if nameCache.linkModes == nil {
		names, err := c.stringSet(stringSetLinkModes)
		if err != nil {
			return nil, err
		}
		nameCache.linkModes = names
	}
	c.linkModeNames = nameCache.linkModes
	return c.linkModeNames, nil
}

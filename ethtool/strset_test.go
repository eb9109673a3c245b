package ethtool

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/truenas/go-netif/netlink"
)

func stringEntry(index uint32, value string) []byte {
	attrs := netlink.PackAttrU32(attrStringIndex, index)
	attrs = append(attrs, netlink.PackAttrString(attrStringValue, value)...)
	return netlink.PackAttrNested(attrStringsString, attrs)
}

func TestParseStringsets(t *testing.T) {
	strings := stringEntry(0, "rx-checksum")
	strings = append(strings, stringEntry(1, "tx-checksum-ipv4")...)
	strings = append(strings, stringEntry(4, "tx-scatter-gather")...)

	set := netlink.PackAttrU32(attrStringsetID, stringSetFeatures)
	set = append(set, netlink.PackAttrNested(attrStringsetStrings, strings)...)
	sets := netlink.PackAttrNested(attrStringsetsStringset, set)

	names := map[uint32]string{}
	parseStringsets(sets, names)

	want := map[uint32]string{
		0: "rx-checksum",
		1: "tx-checksum-ipv4",
		4: "tx-scatter-gather",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("string set (-want +got):\n%s", diff)
	}
}

func TestParseStringsetsSkipsIncompleteEntries(t *testing.T) {
	// an entry without an index can't land anywhere
	attrs := netlink.PackAttrString(attrStringValue, "orphan")
	strings := netlink.PackAttrNested(attrStringsString, attrs)
	set := netlink.PackAttrNested(attrStringsetStrings, strings)
	sets := netlink.PackAttrNested(attrStringsetsStringset, set)

	names := map[uint32]string{}
	parseStringsets(sets, names)
	if len(names) != 0 {
		t.Errorf("incomplete entries decoded as %v", names)
	}
}

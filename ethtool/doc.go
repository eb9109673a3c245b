// Package ethtool queries NIC properties over the generic netlink
// "ethtool" family: link modes, physical port info, carrier state,
// offload features and FEC.
//
// The family id is resolved once per Client through the nlctrl
// GETFAMILY handshake. Feature and link-mode names come from the
// kernel's string set tables and are cached process-wide; the bit
// numbering is stable for the life of the kernel so the cache is never
// invalidated.
//
// See https://elixir.bootlin.com/linux/latest/source/include/uapi/linux/ethtool_netlink.h.
package ethtool

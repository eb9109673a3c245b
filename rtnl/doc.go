// Package rtnl speaks NETLINK_ROUTE: it dumps and mutates links,
// addresses, routes and policy rules through a Handle wrapping one
// netlink socket.
//
// Dumps retry transparently when the kernel flags them interrupted,
// and the usual errno replies come back as typed errors (see the Err*
// sentinels in package netlink and this package). Mutations follow the
// classic request/ACK shape with NLM_F_ACK set.
//
// Fixed headers and attribute values follow the kernel uapi headers,
// see https://elixir.bootlin.com/linux/latest/source/include/uapi/linux/rtnetlink.h.
package rtnl

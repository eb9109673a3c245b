// Package netlink implements the message codec and request/response
// engine for talking to the kernel's netlink subsystems over raw
// AF_NETLINK sockets. Be sure to check netlink(7) for an overview of
// the protocol as a whole.
//
// The package deals in three layers: type-length-value attributes
// (nlattr trees, including nested lists and 4-byte alignment padding),
// framed messages (the 16-byte nlmsghdr plus, for generic netlink
// families, the inner cmd/version header), and the receive loop that
// drains a possibly multi-part, possibly error-bearing response stream
// back into typed messages.
//
// Domain packages (rtnl, ethtool, diag) build their requests with the
// primitives here and decode the resulting attribute maps into their
// own record types; this package knows nothing about any particular
// netlink family beyond the control constants needed to frame and
// classify messages.
//
// Requests and responses are strictly sequential on a single Socket:
// one request must be fully drained before the next is issued. The
// kernel correlates replies by the socket's port id, not by sequence
// number, so sequence numbers are bumped per request but never checked
// on the way back. See [0] for the kernel's dump entry point.
//
// 0: https://elixir.bootlin.com/linux/v6.12.4/source/net/core/rtnetlink.c#L6597
package netlink

// Package diag queries the kernel's socket tables over
// NETLINK_SOCK_DIAG using inet_diag_req_v2, the same interface ss(8)
// uses. Owner resolution maps the reported socket inodes back to
// processes through /proc.
package diag

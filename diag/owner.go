//go:build linux

package diag

import (
	"fmt"
	"strings"

	"github.com/prometheus/procfs"
)

// ResolveOwners fills in the Owner field of each SockInfo by scanning
// /proc for file descriptors pointing at the reported socket inodes.
// Sockets whose owner can't be found (raced process exit, permission)
// are left untouched. One pass over /proc covers every socket.
func ResolveOwners(infos []SockInfo) error {
	byINode := make(map[uint32][]int, len(infos))
	for i, info := range infos {
		if info.INode != 0 {
			byINode[info.INode] = append(byINode[info.INode], i)
		}
	}
	if len(byINode) == 0 {
		return nil
	}

	fs, err := procfs.NewDefaultFS()
	if err != nil {
		return fmt.Errorf("opening /proc: %w", err)
	}
	procs, err := fs.AllProcs()
	if err != nil {
		return fmt.Errorf("listing /proc: %w", err)
	}

	for _, p := range procs {
		targets, err := p.FileDescriptorTargets()
		if err != nil {
			continue // process went away mid-scan
		}
		for _, target := range targets {
			inode, ok := socketINode(target)
			if !ok {
				continue
			}
			indices, ok := byINode[inode]
			if !ok {
				continue
			}
			comm, err := p.Comm()
			if err != nil {
				continue
			}
			for _, i := range indices {
				infos[i].Owner = comm
			}
			delete(byINode, inode)
		}
		if len(byINode) == 0 {
			break
		}
	}
	return nil
}

// socketINode extracts N from a "socket:[N]" fd link target.
func socketINode(target string) (uint32, bool) {
	rest, ok := strings.CutPrefix(target, "socket:[")
	if !ok {
		return 0, false
	}
	rest, ok = strings.CutSuffix(rest, "]")
	if !ok {
		return 0, false
	}
	var inode uint32
	for _, r := range rest {
		if r < '0' || r > '9' {
			return 0, false
		}
		inode = inode*10 + uint32(r-'0')
	}
	return inode, rest != ""
}

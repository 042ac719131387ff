// Package device answers local device queries, currently only the
// free-storage-space check gating offline downloads.
package device

import (
	"fmt"

	"golang.org/x/sys/unix"

	"piauitickets/internal/domain/repository"
)

type statfsChecker struct {
	path string
}

// NewSpaceChecker reports free space on the filesystem holding path.
func NewSpaceChecker(path string) repository.SpaceChecker {
	return &statfsChecker{path: path}
}

func (c *statfsChecker) FreeSpaceMB() (int64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(c.path, &stat); err != nil {
		return 0, fmt.Errorf("failed to stat filesystem at %s: %w", c.path, err)
	}
	return int64(stat.Bavail) * stat.Bsize / (1024 * 1024), nil
}

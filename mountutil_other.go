//go:build !linux && !darwin && !windows

package main

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/disk"
)

const mountNoticeLevel = 0

func belongsTo(disk.PartitionStat, Device) bool {
	return false
}

func unmount(string) error {
	return fmt.Errorf("%w: unmount on %s", ErrUnsupportedPlatform, runtime.GOOS)
}

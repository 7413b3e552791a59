//go:build linux || darwin

package main

import (
	"os/exec"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
	"golang.org/x/sys/unix"
)

// A partition mounted here is worth a warning on every run.
const mountNoticeLevel = 0

// belongsTo matches /dev/sdb1 to /dev/sdb, /dev/mmcblk0p1 to /dev/mmcblk0
// and /dev/disk4s1 to /dev/disk4, but not /dev/sdb1 to /dev/sd or
// /dev/disk41s1 to /dev/disk4. A filesystem on the bare disk, as on a stick
// without a partition table, belongs to it too.
func belongsTo(p disk.PartitionStat, dev Device) bool {
	rest, ok := strings.CutPrefix(p.Device, dev.RawAddress)
	if !ok || dev.RawAddress == "" {
		return false
	}
	if rest == "" {
		return true
	}
	if rest[0] == 'p' || rest[0] == 's' {
		rest = rest[1:]
	}
	if rest == "" {
		return false
	}
	for _, c := range rest {
		if c < '0' || c > '9' {
			return false
		}
	}
	// A disk name ending in a digit needs the p or s separator.
	last := dev.RawAddress[len(dev.RawAddress)-1]
	lastIsDigit := last >= '0' && last <= '9'
	sep := len(p.Device) - len(rest) - 1
	return !lastIsDigit || p.Device[sep] == 'p' || p.Device[sep] == 's'
}

func unmount(mountPoint string) error {
	if err := unix.Unmount(mountPoint, 0); err == nil {
		return nil
	}
	return exec.Command("umount", mountPoint).Run()
}

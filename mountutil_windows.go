//go:build windows

package main

import (
	"os/exec"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
)

// The enumerated volume always has a drive letter, so the notice would show
// on every run.
const mountNoticeLevel = 1

// belongsTo only knows the volume we enumerated; other letters on the same
// physical disk are not detected.
func belongsTo(p disk.PartitionStat, dev Device) bool {
	letter, err := driveLetter(dev.DisplayLabel)
	if err != nil || p.Mountpoint == "" {
		return false
	}
	return strings.EqualFold(p.Mountpoint[:1], string(letter))
}

func unmount(mountPoint string) error {
	mp := mountPoint
	if !strings.HasSuffix(mp, `\`) {
		mp += `\`
	}
	return exec.Command("mountvol", mp, "/p").Run()
}

package main

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/disk"
)

// MountManager finds and releases filesystems mounted from a device.
type MountManager interface {
	Mounted(dev Device) ([]string, error)
	Unmount(mountPoints []string) error
}

type partitionMounts struct {
	partitions func(all bool) ([]disk.PartitionStat, error)
	unmount    func(mountPoint string) error
}

func newMountManager() MountManager {
	return &partitionMounts{
		partitions: disk.Partitions,
		unmount:    unmount,
	}
}

// Mounted returns the mount points of every partition of dev.
func (m *partitionMounts) Mounted(dev Device) ([]string, error) {
	parts, err := m.partitions(false)
	if err != nil {
		return nil, fmt.Errorf("listing partitions: %w", err)
	}
	var mounted []string
	for _, p := range parts {
		if p.Mountpoint != "" && belongsTo(p, dev) {
			mounted = append(mounted, p.Mountpoint)
		}
	}
	return mounted, nil
}

// Unmount tries to unmount all given mount points, stopping at the first failure.
func (m *partitionMounts) Unmount(mountPoints []string) error {
	for _, mp := range mountPoints {
		if err := m.unmount(mp); err != nil {
			return fmt.Errorf("failed to unmount %s: %w", mp, err)
		}
	}
	return nil
}

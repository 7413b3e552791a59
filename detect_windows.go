//go:build windows

package main

import (
	"fmt"

	"github.com/bi-zone/wmi"
)

const driveTypeRemovable = 2

type win32LogicalDisk struct {
	DeviceID   string
	VolumeName string
	DriveType  uint32
	Size       uint64
}

// wmiSource lists logical volumes. Their mount point is a drive letter, which
// the helper cannot write through; driveLetterResolver fixes that up.
type wmiSource struct{}

func newRawEntrySource() RawEntrySource {
	return wmiSource{}
}

func (wmiSource) Entries() ([]RawEntry, error) {
	var dst []win32LogicalDisk
	err := wmi.Query("SELECT DeviceID, VolumeName, DriveType, Size FROM Win32_LogicalDisk", &dst)
	if err != nil {
		return nil, fmt.Errorf("querying WMI: %w", err)
	}
	return entriesFromLogicalDisks(dst), nil
}

func entriesFromLogicalDisks(disks []win32LogicalDisk) []RawEntry {
	entries := make([]RawEntry, 0, len(disks))
	for _, d := range disks {
		entries = append(entries, RawEntry{
			Removable:  d.DriveType == driveTypeRemovable,
			Name:       d.VolumeName,
			TotalSpace: d.Size,
			MountPoint: d.DeviceID + `\`,
		})
	}
	return entries
}

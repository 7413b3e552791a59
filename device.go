package main

import (
	"fmt"
)

const (
	megabyte = 1_000_000
	gigabyte = 1_000_000_000
)

// RawEntry is one disk or volume as reported by the OS enumeration facility.
type RawEntry struct {
	Removable  bool
	Name       string
	TotalSpace uint64
	MountPoint string
}

// RawEntrySource queries the OS for disks/volumes. Implementations live in
// detect.go and detect_windows.go.
type RawEntrySource interface {
	Entries() ([]RawEntry, error)
}

// Device is a snapshot of a removable device taken at enumeration time.
// Nothing refreshes it; the device may be gone by the time it is written to.
type Device struct {
	// RawAddress is what the helper writes to. It starts out as the mount
	// point and is only trusted after a Resolver has run on it.
	RawAddress   string
	DisplayLabel string
	Description  string
	SizeBytes    uint64
}

// Enumerate queries src once and keeps the removable entries, in the order
// the OS returned them.
func Enumerate(src RawEntrySource) ([]Device, error) {
	entries, err := src.Entries()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEnumeration, err)
	}

	var devices []Device
	for _, e := range entries {
		if !e.Removable {
			continue
		}
		devices = append(devices, Device{
			RawAddress:   e.MountPoint,
			DisplayLabel: e.MountPoint,
			Description:  e.Name,
			SizeBytes:    e.TotalSpace,
		})
	}
	return devices, nil
}

// FormatSize renders a byte count in decimal MB below one gigabyte and
// decimal GB from there on. Integer division, no rounding.
func FormatSize(size uint64) string {
	if size < gigabyte {
		return fmt.Sprintf("%d MB", size/megabyte)
	}
	return fmt.Sprintf("%d GB", size/gigabyte)
}

// Summary is the line shown to the operator. It never contains the raw address.
func (d Device) Summary() string {
	return fmt.Sprintf("[%s] %s %s", d.DisplayLabel, d.Description, FormatSize(d.SizeBytes))
}

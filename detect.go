//go:build linux || darwin

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jaypipes/ghw"
	"github.com/jaypipes/ghw/pkg/block"
)

// ghwSource lists whole disks through ghw. On these platforms the device
// node itself is the addressable path, so it is reported as the mount point.
type ghwSource struct{}

func newRawEntrySource() RawEntrySource {
	return ghwSource{}
}

func (ghwSource) Entries() ([]RawEntry, error) {
	b, err := block.New(ghw.WithDisableTools())
	if err != nil {
		return nil, fmt.Errorf("detecting block devices: %w", err)
	}
	return entriesFromDisks(b.Disks), nil
}

func entriesFromDisks(disks []*block.Disk) []RawEntry {
	entries := make([]RawEntry, 0, len(disks))
	for _, d := range disks {
		if d == nil || d.Name == "" {
			continue
		}
		entries = append(entries, RawEntry{
			// Plenty of USB sticks report removable=0, the bus path gives them away.
			Removable:  d.IsRemovable || strings.Contains(d.BusPath, "usb"),
			Name:       diskDescription(d),
			TotalSpace: d.SizeBytes,
			MountPoint: filepath.Join("/dev", d.Name),
		})
	}
	return entries
}

func diskDescription(d *block.Disk) string {
	var parts []string
	for _, s := range []string{d.Vendor, d.Model} {
		s = strings.TrimSpace(s)
		if s == "" || strings.EqualFold(s, "unknown") {
			continue
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

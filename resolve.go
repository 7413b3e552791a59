package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"unicode"
)

const physicalDrivePrefix = `\\.\PhysicalDrive`

// Resolver turns an enumerated Device into one whose RawAddress is safe to
// hand to the helper. It must fail rather than guess.
type Resolver interface {
	Resolve(ctx context.Context, d Device) (Device, error)
}

// identityResolver is used where the mount point already is the raw device.
type identityResolver struct{}

func (identityResolver) Resolve(_ context.Context, d Device) (Device, error) {
	return d, nil
}

// PhysicalDiskLocator maps a drive letter to the number of the physical disk
// holding it.
type PhysicalDiskLocator interface {
	PhysicalDisk(ctx context.Context, letter byte) (string, error)
}

// driveLetterResolver rewrites a drive letter mount point to the
// \\.\PhysicalDriveN path of the disk it lives on.
type driveLetterResolver struct {
	locator PhysicalDiskLocator
}

func (r driveLetterResolver) Resolve(ctx context.Context, d Device) (Device, error) {
	letter, err := driveLetter(d.DisplayLabel)
	if err != nil {
		return Device{}, err
	}
	id, err := r.locator.PhysicalDisk(ctx, letter)
	if err != nil {
		return Device{}, err
	}
	d.RawAddress = physicalDrivePrefix + id
	return d, nil
}

func driveLetter(mountPoint string) (byte, error) {
	if mountPoint == "" || mountPoint[0] > unicode.MaxASCII || !unicode.IsLetter(rune(mountPoint[0])) {
		return 0, fmt.Errorf("%w: %q is not a drive letter", ErrAddressResolution, mountPoint)
	}
	return byte(unicode.ToUpper(rune(mountPoint[0]))), nil
}

// commandLocator runs an external command printing one "<letter>, <disk>"
// line per mounted partition and looks the letter up in its output.
type commandLocator struct {
	name   string
	args   []string
	output func(ctx context.Context, name string, args ...string) ([]byte, error)
}

func newCommandLocator(name string, args ...string) *commandLocator {
	return &commandLocator{
		name: name,
		args: args,
		output: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
	}
}

func (l *commandLocator) PhysicalDisk(ctx context.Context, letter byte) (string, error) {
	out, err := l.output(ctx, l.name, l.args...)
	if err != nil {
		return "", fmt.Errorf("%w: running %s: %w", ErrAddressResolution, l.name, err)
	}
	return lookupPhysicalDisk(out, letter)
}

// lookupPhysicalDisk scans mapping text line by line. A line matches when its
// first character is the drive letter; the disk number is whatever follows
// the last comma. Two different disks for one letter is an error.
func lookupPhysicalDisk(mapping []byte, letter byte) (string, error) {
	want := unicode.ToUpper(rune(letter))
	found := ""

	scanner := bufio.NewScanner(bytes.NewReader(mapping))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || unicode.ToUpper(rune(line[0])) != want {
			continue
		}
		// "DiskNumber" in a header line starts with D too.
		if len(line) > 1 && (unicode.IsLetter(rune(line[1])) || unicode.IsDigit(rune(line[1]))) {
			continue
		}
		comma := strings.LastIndex(line, ",")
		if comma < 0 {
			continue
		}
		id := strings.TrimSpace(line[comma+1:])
		if _, err := strconv.ParseUint(id, 10, 32); err != nil {
			continue
		}
		if found != "" && found != id {
			return "", fmt.Errorf("%w: %c: is on disks %s and %s", ErrAmbiguousMapping, want, found, id)
		}
		found = id
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("%w: reading disk mapping: %w", ErrAddressResolution, err)
	}
	if found == "" {
		return "", fmt.Errorf("%w: no physical disk holds %c:", ErrAddressResolution, want)
	}
	return found, nil
}

//go:build !windows

package main

import (
	"os"
)

// CheckElevatedPermissions reports whether we already run as root, in which
// case the helper is started without sudo.
func CheckElevatedPermissions() (bool, error) {
	return os.Geteuid() == 0, nil
}

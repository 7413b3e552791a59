//go:build windows

package main

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// CheckElevatedPermissions reports whether the process token is a member of
// BUILTIN\Administrators, i.e. we were started with "Run as administrator".
func CheckElevatedPermissions() (bool, error) {
	var sid *windows.SID
	err := windows.AllocateAndInitializeSid(
		&windows.SECURITY_NT_AUTHORITY,
		2,
		windows.SECURITY_BUILTIN_DOMAIN_RID,
		windows.DOMAIN_ALIAS_RID_ADMINS,
		0, 0, 0, 0, 0, 0,
		&sid)
	if err != nil {
		return false, fmt.Errorf("error while checking for elevated permissions: %w", err)
	}
	// The sid must be freed or the token leaks.
	defer windows.FreeSid(sid)

	member, err := windows.Token(0).IsMember(sid)
	if err != nil {
		return false, fmt.Errorf("error while checking for elevated permissions: %w", err)
	}
	return member, nil
}

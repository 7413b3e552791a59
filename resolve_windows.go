//go:build windows

package main

const partitionMappingScript = `Get-Partition | Where-Object { $_.DriveLetter } | ForEach-Object { "$($_.DriveLetter), $($_.DiskNumber)" }`

func newResolver() Resolver {
	return driveLetterResolver{
		locator: newCommandLocator("powershell", "-NoProfile", "-NonInteractive", "-Command", partitionMappingScript),
	}
}

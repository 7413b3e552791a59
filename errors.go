package main

import (
	"errors"
	"fmt"
)

// Every error below is terminal for the run; main prints it and exits 1.
var (
	ErrInputFileNotFound   = errors.New("file not found")
	ErrEnumeration         = errors.New("failed to enumerate devices")
	ErrNoDevices           = errors.New("no devices found")
	ErrSelectionParse      = errors.New("invalid input")
	ErrSelectionOutOfRange = errors.New("invalid index")
	ErrAddressResolution   = errors.New("unable to resolve physical device")
	ErrAmbiguousMapping    = fmt.Errorf("%w: drive letter maps to more than one disk", ErrAddressResolution)
	ErrDispatch            = errors.New("failed to launch helper")
	ErrCopyFailed          = errors.New("copy failed")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrAborted             = errors.New("aborted")
)

// CopyError reports a helper process that ran but did not exit cleanly.
type CopyError struct {
	ExitCode int
}

func (e *CopyError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("%s: helper terminated abnormally", ErrCopyFailed)
	}
	return fmt.Sprintf("%s: helper exited with status %d", ErrCopyFailed, e.ExitCode)
}

func (e *CopyError) Unwrap() error {
	return ErrCopyFailed
}

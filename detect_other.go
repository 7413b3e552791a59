//go:build !linux && !darwin && !windows

package main

import (
	"fmt"
	"runtime"
)

type unsupportedSource struct{}

func newRawEntrySource() RawEntrySource {
	return unsupportedSource{}
}

func (unsupportedSource) Entries() ([]RawEntry, error) {
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, runtime.GOOS)
}

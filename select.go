package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Present writes one indexed line per device.
func Present(w io.Writer, devices []Device) {
	for i, d := range devices {
		fmt.Fprintf(w, "%d: %s\n", i, d.Summary())
	}
}

type lineResult struct {
	line string
	err  error
}

// Choose prompts once and reads a single line holding an index into
// devices. There is no re-prompt. Cancelling ctx abandons the read.
func Choose(ctx context.Context, r io.Reader, w io.Writer, devices []Device) (Device, error) {
	fmt.Fprint(w, "select device: ")

	done := make(chan lineResult, 1)
	go func() {
		line, err := readLine(r)
		done <- lineResult{line: line, err: err}
	}()

	var res lineResult
	select {
	case <-ctx.Done():
		return Device{}, fmt.Errorf("%w: %w", ErrAborted, ctx.Err())
	case res = <-done:
	}
	if res.err != nil && (!errors.Is(res.err, io.EOF) || res.line == "") {
		return Device{}, fmt.Errorf("%w: %w", ErrSelectionParse, res.err)
	}

	input := strings.TrimPrefix(strings.TrimSpace(res.line), "+")
	index, err := strconv.ParseUint(input, 10, 0)
	if err != nil {
		return Device{}, ErrSelectionParse
	}
	if index >= uint64(len(devices)) {
		return Device{}, ErrSelectionOutOfRange
	}
	return devices[index], nil
}

// readLine reads up to and including the first newline, one byte at a time,
// so nothing after it is consumed from r. The helper inherits the same reader.
func readLine(r io.Reader) (string, error) {
	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			sb.WriteByte(buf[0])
			if buf[0] == '\n' {
				return sb.String(), nil
			}
		}
		if err != nil {
			return sb.String(), err
		}
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
)

// Runner starts argv and waits for it. It returns the exit code, or -1 when
// the process died without one. A non-nil error means it never ran.
type Runner interface {
	Run(ctx context.Context, argv []string) (int, error)
}

type execRunner struct {
	stdin          io.Reader
	stdout, stderr io.Writer
}

func (r execRunner) Run(ctx context.Context, argv []string) (int, error) {
	if len(argv) == 0 {
		return -1, errors.New("empty command line")
	}
	// No timeout: writing a large image can take a very long time. Cancelling
	// ctx kills the direct child, grandchildren under sudo may survive.
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, err
	}
	return 0, nil
}

// Dispatcher launches the privileged helper that does the raw copy.
type Dispatcher struct {
	Elevator   Elevator
	HelperName string

	// Elevated skips the elevator when we already run privileged.
	Elevated bool

	Runner     Runner
	Executable func() (string, error)
	Out        io.Writer
	Log        logr.Logger
}

// HelperPath returns the helper executable sitting next to the running binary.
func (d *Dispatcher) HelperPath() (string, error) {
	exe, err := d.Executable()
	if err != nil {
		return "", fmt.Errorf("%w: locating current executable: %w", ErrDispatch, err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	helper := filepath.Join(filepath.Dir(exe), d.HelperName)
	if _, err := os.Stat(helper); err != nil {
		return "", fmt.Errorf("%w: %w", ErrDispatch, err)
	}
	return helper, nil
}

// Dispatch runs helper <image> <device> and blocks until it exits.
func (d *Dispatcher) Dispatch(ctx context.Context, image string, dev Device) error {
	if dev.RawAddress == "" {
		return fmt.Errorf("%w: %s has no device address", ErrAddressResolution, dev.DisplayLabel)
	}
	helper, err := d.HelperPath()
	if err != nil {
		return err
	}

	argv := []string{helper, image, dev.RawAddress}
	if !d.Elevated {
		argv = d.Elevator.Wrap(helper, image, dev.RawAddress)
	}
	fmt.Fprintln(d.Out, strings.Join(argv, " "))
	d.Log.V(1).Info("Dispatching helper", "argv", argv, "device", dev.DisplayLabel)

	code, err := d.Runner.Run(ctx, argv)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDispatch, err)
	}
	if code != 0 {
		return &CopyError{ExitCode: code}
	}
	d.Log.V(1).Info("Helper finished", "device", dev.DisplayLabel)
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
)

type phase string

const (
	phaseEnumerating   phase = "Enumerating"
	phasePresenting    phase = "Presenting"
	phaseAwaitingInput phase = "AwaitingInput"
	phaseValidated     phase = "Validated"
	phaseDispatching   phase = "Dispatching"
	phaseCompleted     phase = "Completed"
	phaseFailed        phase = "Failed"
)

type dispatcher interface {
	Dispatch(ctx context.Context, image string, dev Device) error
}

// Writer walks one run: check the image, list removable devices, let the
// operator pick one, resolve its raw address and hand it to the helper.
// Nothing locks the device between selection and write.
type Writer struct {
	Source     RawEntrySource
	Resolver   Resolver
	Mounts     MountManager
	Dispatcher dispatcher

	// Unmount releases mounted partitions of the chosen device before dispatch.
	Unmount bool

	// MountNoticeLevel is the log verbosity of the mounted-partitions notice.
	MountNoticeLevel int

	Stat func(name string) (fs.FileInfo, error)
	In   io.Reader
	Out  io.Writer
	Log  logr.Logger
}

func (w *Writer) Run(ctx context.Context, image string) (err error) {
	defer func() {
		if err != nil {
			w.enter(phaseFailed, "error", err.Error())
			return
		}
		w.enter(phaseCompleted)
	}()

	// The image is checked before any device is looked at.
	image, err = w.checkImage(image)
	if err != nil {
		return err
	}

	w.enter(phaseEnumerating)
	devices, err := Enumerate(w.Source)
	if err != nil {
		return err
	}
	w.Log.V(1).Info("Enumerated removable devices", "count", len(devices))
	if len(devices) == 0 {
		return ErrNoDevices
	}

	w.enter(phasePresenting)
	Present(w.Out, devices)

	w.enter(phaseAwaitingInput)
	chosen, err := Choose(ctx, w.In, w.Out, devices)
	if err != nil {
		return err
	}

	resolved, err := w.Resolver.Resolve(ctx, chosen)
	if err != nil {
		return err
	}
	w.enter(phaseValidated, "device", resolved.DisplayLabel, "address", resolved.RawAddress)

	if err := aborted(ctx); err != nil {
		return err
	}
	if err := w.releaseMounts(resolved); err != nil {
		return err
	}

	if err := aborted(ctx); err != nil {
		return err
	}
	w.enter(phaseDispatching)
	return w.Dispatcher.Dispatch(ctx, image, resolved)
}

func (w *Writer) checkImage(image string) (string, error) {
	info, err := w.Stat(image)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrInputFileNotFound, image)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrInputFileNotFound, image, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrInputFileNotFound, image)
	}
	// The elevated helper may not start in our working directory.
	abs, err := filepath.Abs(image)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrInputFileNotFound, image, err)
	}
	return abs, nil
}

func (w *Writer) releaseMounts(dev Device) error {
	if w.Mounts == nil {
		return nil
	}
	mounted, err := w.Mounts.Mounted(dev)
	if err != nil {
		w.Log.Error(err, "Could not check for mounted partitions", "device", dev.DisplayLabel)
		return nil
	}
	if len(mounted) == 0 {
		return nil
	}
	if !w.Unmount {
		w.Log.V(w.MountNoticeLevel).Info("Device has mounted partitions, the helper may fail to open it", "device", dev.DisplayLabel, "mounts", mounted)
		return nil
	}
	w.Log.V(1).Info("Unmounting partitions", "device", dev.DisplayLabel, "mounts", mounted)
	if err := w.Mounts.Unmount(mounted); err != nil {
		return fmt.Errorf("%w: %w", ErrDispatch, err)
	}
	return nil
}

func aborted(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrAborted, err)
	}
	return nil
}

func (w *Writer) enter(p phase, kv ...any) {
	w.Log.V(1).Info("Phase", append([]any{"phase", p}, kv...)...)
}

func newWriter(opts *Options, goos string, in io.Reader, out, errOut io.Writer) (*Writer, error) {
	log := newLogger(errOut, opts.Verbosity)

	elevator, err := opts.Elevator(goos)
	if err != nil {
		return nil, err
	}
	elevated, err := CheckElevatedPermissions()
	if err != nil {
		log.Error(err, "Could not determine privileges, using elevation command")
		elevated = false
	}

	return &Writer{
		Source:   newRawEntrySource(),
		Resolver: newResolver(),
		Mounts:   newMountManager(),
		Dispatcher: &Dispatcher{
			Elevator:   elevator,
			HelperName: opts.HelperName(),
			Elevated:   elevated,
			Runner:     execRunner{stdin: in, stdout: out, stderr: errOut},
			Executable: os.Executable,
			Out:        out,
			Log:        log,
		},
		Unmount:          opts.Unmount,
		MountNoticeLevel: mountNoticeLevel,
		Stat:             os.Stat,
		In:               in,
		Out:              out,
		Log:              log,
	}, nil
}

package main

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type fakeSource struct {
	entries []RawEntry
	err     error
	calls   int
}

func (s *fakeSource) Entries() ([]RawEntry, error) {
	s.calls++
	return s.entries, s.err
}

type fakeLocator struct {
	disks map[byte]string
	err   error
	calls []byte
}

func (l *fakeLocator) PhysicalDisk(_ context.Context, letter byte) (string, error) {
	l.calls = append(l.calls, letter)
	if l.err != nil {
		return "", l.err
	}
	id, ok := l.disks[letter]
	if !ok {
		return "", ErrAddressResolution
	}
	return id, nil
}

type fakeResolver struct {
	resolveFunc func(d Device) (Device, error)
	calls       []Device
}

func (r *fakeResolver) Resolve(_ context.Context, d Device) (Device, error) {
	r.calls = append(r.calls, d)
	if r.resolveFunc != nil {
		return r.resolveFunc(d)
	}
	return d, nil
}

type dispatchCall struct {
	image string
	dev   Device
}

type fakeDispatcher struct {
	err   error
	calls []dispatchCall
}

func (d *fakeDispatcher) Dispatch(_ context.Context, image string, dev Device) error {
	d.calls = append(d.calls, dispatchCall{image: image, dev: dev})
	return d.err
}

type fakeRunner struct {
	code  int
	err   error
	calls [][]string
}

func (r *fakeRunner) Run(_ context.Context, argv []string) (int, error) {
	r.calls = append(r.calls, argv)
	return r.code, r.err
}

type fakeMounts struct {
	mounted    []string
	mountedErr error
	unmountErr error
	unmounted  [][]string
}

func (m *fakeMounts) Mounted(Device) ([]string, error) {
	return m.mounted, m.mountedErr
}

func (m *fakeMounts) Unmount(mps []string) error {
	m.unmounted = append(m.unmounted, mps)
	return m.unmountErr
}

// tempFile creates name with a little content in a temporary directory cleaned up after the test.
func tempFile(name string) string {
	dir, err := os.MkdirTemp("", "writedisk-")
	Expect(err).NotTo(HaveOccurred())
	DeferCleanup(os.RemoveAll, dir)

	path := filepath.Join(dir, name)
	Expect(os.WriteFile(path, []byte("image"), 0o644)).To(Succeed())
	return path
}

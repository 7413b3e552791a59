package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

const (
	defaultHelper = "wd_copier"

	envHelper  = "WRITEDISK_HELPER"
	envElevate = "WRITEDISK_ELEVATE"
)

// Elevator is the OS command that runs the helper with elevated rights.
type Elevator struct {
	Command string
	Args    []string

	// JoinCommandLine passes the helper and its arguments as one quoted
	// argument, which is what runas expects.
	JoinCommandLine bool
}

var elevators = map[string]Elevator{
	"linux":   {Command: "sudo"},
	"darwin":  {Command: "sudo"},
	// runas starts the helper and returns without waiting for it, so its exit
	// status is the launch result, not the copy's. Run writedisk as
	// Administrator to get the helper's own status.
	"windows": {Command: "runas", Args: []string{"/user:Administrator"}, JoinCommandLine: true},
}

// Wrap returns the argv that launches program with args under the elevator.
func (e Elevator) Wrap(program string, args ...string) []string {
	argv := append([]string{e.Command}, e.Args...)
	if !e.JoinCommandLine {
		argv = append(argv, program)
		return append(argv, args...)
	}
	quoted := make([]string, 0, len(args)+1)
	for _, a := range append([]string{program}, args...) {
		quoted = append(quoted, `"`+a+`"`)
	}
	return append(argv, strings.Join(quoted, " "))
}

// Options holds everything that can be set from flags or the environment.
type Options struct {
	Helper    string
	Elevate   string
	Unmount   bool
	Verbosity int
}

func defaultOptions() *Options {
	o := &Options{Helper: defaultHelper}
	if v, ok := os.LookupEnv(envHelper); ok && v != "" {
		o.Helper = v
	}
	if v, ok := os.LookupEnv(envElevate); ok {
		o.Elevate = v
	}
	return o
}

func (o *Options) BindFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&o.Helper, "helper", o.Helper, "name of the privileged copy helper, looked up next to this executable (env "+envHelper+")")
	fs.StringVar(&o.Elevate, "elevate", o.Elevate, "elevation command and its arguments, overrides the platform default (env "+envElevate+")")
	fs.BoolVar(&o.Unmount, "unmount", o.Unmount, "unmount mounted partitions of the selected device before writing")
	fs.CountVarP(&o.Verbosity, "verbose", "v", "increase log verbosity")
}

// Elevator picks the elevation command for goos, honouring --elevate.
func (o *Options) Elevator(goos string) (Elevator, error) {
	if fields := strings.Fields(o.Elevate); len(fields) > 0 {
		return Elevator{Command: fields[0], Args: fields[1:]}, nil
	}
	e, ok := elevators[goos]
	if !ok {
		return Elevator{}, fmt.Errorf("%w: no elevation command known for %s, set --elevate", ErrUnsupportedPlatform, goos)
	}
	return e, nil
}

// HelperName is the helper file name for the running platform.
func (o *Options) HelperName() string {
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(o.Helper), ".exe") {
		return o.Helper + ".exe"
	}
	return o.Helper
}

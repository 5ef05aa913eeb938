// Package profiling writes pprof profiles of a scan.
package profiling

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"

	"go.uber.org/multierr"
)

var (
	osCreate              = os.Create
	pprofStartCPUProfile  = pprof.StartCPUProfile
	pprofStopCPUProfile   = pprof.StopCPUProfile
	pprofWriteHeapProfile = func(w io.Writer) error {
		return pprof.WriteHeapProfile(w)
	}
)

// StartCPUProfile profiles the CPU into filePath until stop is called.
func StartCPUProfile(filePath string) (stop func() error, err error) {
	f, err := osCreate(filePath)
	if err != nil {
		return nil, fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err = pprofStartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("could not start CPU profile: %w", err)
	}
	return func() error {
		pprofStopCPUProfile()
		return f.Close()
	}, nil
}

// WriteHeapProfile writes a heap profile of live objects to filePath.
func WriteHeapProfile(filePath string) (err error) {
	f, err := osCreate(filePath)
	if err != nil {
		return fmt.Errorf("could not create memory profile: %w", err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))
	runtime.GC() // up-to-date statistics
	if err = pprofWriteHeapProfile(f); err != nil {
		return fmt.Errorf("could not write memory profile: %w", err)
	}
	return nil
}

package profiling

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Not parallel: the tests swap package-level seams.

func TestStartCPUProfile(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "cpu.prof")
	stop, err := StartCPUProfile(filePath)
	require.NoError(t, err)
	assert.NoError(t, stop())

	_, err = os.Stat(filePath)
	assert.NoError(t, err, "expected profile file to be created")
}

func TestStartCPUProfile_ErrorOsCreate(t *testing.T) {
	origOsCreate := osCreate
	defer func() {
		osCreate = origOsCreate
	}()
	osCreate = func(name string) (*os.File, error) {
		return nil, errors.New("mock error")
	}

	stop, err := StartCPUProfile("invalid")
	assert.ErrorContains(t, err, "could not create CPU profile")
	assert.Nil(t, stop)
}

func TestStartCPUProfile_ErrorPprofStartCPUProfile(t *testing.T) {
	origStart := pprofStartCPUProfile
	defer func() {
		pprofStartCPUProfile = origStart
	}()
	pprofStartCPUProfile = func(w io.Writer) error {
		return errors.New("mock pprof error")
	}

	stop, err := StartCPUProfile(filepath.Join(t.TempDir(), "cpu_err.prof"))
	assert.ErrorContains(t, err, "could not start CPU profile")
	assert.Nil(t, stop)
}

func TestWriteHeapProfile(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "mem.prof")
	require.NoError(t, WriteHeapProfile(filePath))

	info, err := os.Stat(filePath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWriteHeapProfile_ErrorOsCreate(t *testing.T) {
	err := WriteHeapProfile(filepath.Join(t.TempDir(), "missing", "mem.prof"))
	assert.ErrorContains(t, err, "could not create memory profile")
}

func TestWriteHeapProfile_ErrorPprofWriteHeapProfile(t *testing.T) {
	origPprofWrite := pprofWriteHeapProfile
	defer func() {
		pprofWriteHeapProfile = origPprofWrite
	}()
	pprofWriteHeapProfile = func(w io.Writer) error {
		return errors.New("mock pprof error")
	}

	err := WriteHeapProfile(filepath.Join(t.TempDir(), "mem_err.prof"))
	assert.ErrorContains(t, err, "could not write memory profile")
}

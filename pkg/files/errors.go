package files

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	ErrAccessDenied = errors.New("access denied")
	ErrNotFound     = errors.New("not found")
	ErrSymlinkCycle = errors.New("symlink cycle")
)

// Classify maps OS errors onto ErrAccessDenied and ErrNotFound,
// keeping the original error in the chain. Other errors are returned as is.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrAccessDenied), errors.Is(err, ErrNotFound), errors.Is(err, ErrSymlinkCycle):
		return err
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %w", ErrAccessDenied, err)
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	default:
		return err
	}
}

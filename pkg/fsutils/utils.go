package fsutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
)

var osUserHomeDir = os.UserHomeDir

// Decoder decodes
type Decoder interface {
	Decode(o any) error
}

// ReadJSONFile decodes filePath into o. A missing file is an error only
// when required.
func ReadJSONFile(filePath string, required bool, o any) (err error) {
	return ReadFile(filePath, required, o, func(r io.Reader) Decoder {
		return json.NewDecoder(r)
	})
}

func ReadFile(filePath string, required bool, o any, newDecoder func(r io.Reader) Decoder) (err error) {
	var file *os.File
	if file, err = os.Open(filePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			err = nil
		}
		return err
	}
	defer multierr.AppendInvoke(&err, multierr.Close(file))
	if err = newDecoder(file).Decode(o); err != nil {
		return fmt.Errorf("failed to decode %s: %w", filePath, err)
	}
	return nil
}

// WriteJSONFile writes o as indented JSON, creating parent directories.
func WriteJSONFile(filePath string, o any) error {
	data, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(filePath, append(data, '\n'), 0o644)
}

// ExpandHome expands leading ~ to the user's home directory.
func ExpandHome(p string) string {
	if p == "" {
		return p
	}
	if strings.HasPrefix(p, "~/") || p == "~" {
		home, err := osUserHomeDir()
		if err == nil {
			if p == "~" {
				return home
			}
			return filepath.Join(home, strings.TrimPrefix(p, "~/"))
		}
	}
	return p
}

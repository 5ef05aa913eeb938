package osfile

import (
	"context"
	"os"
	"path/filepath"

	"github.com/filetug/dutug/pkg/files"
)

var osReadDir = os.ReadDir
var osStat = os.Stat
var filepathEvalSymlinks = filepath.EvalSymlinks

var _ files.Probe = (*Probe)(nil)

// Probe reads the local filesystem.
type Probe struct{}

func NewProbe() *Probe {
	return &Probe{}
}

func (Probe) ListChildren(ctx context.Context, dirPath string) ([]files.Child, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := osReadDir(dirPath)
	if err != nil && len(entries) == 0 {
		return nil, files.Classify(err)
	}
	children := make([]files.Child, len(entries), len(entries)+1)
	for i, entry := range entries {
		children[i] = files.ChildFromDirEntry(entry)
	}
	if err != nil {
		// os.ReadDir returns the entries it read before the error.
		children = append(children, files.Child{
			Name: files.UnlistedName,
			Kind: files.Unreadable,
			Err:  files.Classify(err),
		})
	}
	return children, nil
}

func (Probe) Resolve(ctx context.Context, p string) (target files.Target, err error) {
	if err = ctx.Err(); err != nil {
		return
	}
	if target.RealPath, err = filepathEvalSymlinks(p); err != nil {
		return target, files.Classify(err)
	}
	info, err := osStat(target.RealPath)
	if err != nil {
		return target, files.Classify(err)
	}
	target.IsDir = info.IsDir()
	if !target.IsDir {
		target.Size = info.Size()
	}
	return target, nil
}

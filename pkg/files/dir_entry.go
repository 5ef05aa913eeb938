package files

import (
	"os"
	"path/filepath"
)

// NewDirEntry creates an os.DirEntry that is not backed by a real file.
// Info is nil unless options are given.
func NewDirEntry(name string, mode os.FileMode, o ...FileInfoOption) DirEntry {
	if parent, _ := filepath.Split(name); parent != "" {
		// It's OK to have panic here.
		panic("dir entry name can not have path: " + name)
	}
	dirEntry := DirEntry{
		name: name,
		mode: mode.Type(),
	}
	if len(o) > 0 {
		dirEntry.info = NewFileInfo(dirEntry, o...)
	}
	return dirEntry
}

var _ os.DirEntry = (*DirEntry)(nil)

type DirEntry struct {
	name string
	mode os.FileMode
	info *FileInfo
}

func (d DirEntry) Name() string      { return d.name }
func (d DirEntry) IsDir() bool       { return d.mode.IsDir() }
func (d DirEntry) Type() os.FileMode { return d.mode }
func (d DirEntry) Info() (os.FileInfo, error) {
	if d.info == nil {
		return nil, nil
	}
	if d.info.err != nil {
		return nil, d.info.err
	}
	return d.info, nil
}

package files

import (
	"os"
	"time"
)

type FileInfoOption func(*FileInfo)

type FileInfo struct {
	DirEntry
	size int64
	err  error
}

func NewFileInfo(dirEntry DirEntry, o ...FileInfoOption) (info *FileInfo) {
	info = &FileInfo{
		DirEntry: dirEntry,
	}
	for _, opt := range o {
		opt(info)
	}
	return
}

func Size(v int64) FileInfoOption {
	return func(info *FileInfo) {
		info.size = v
	}
}

// InfoErr makes DirEntry.Info fail with err, like an entry removed between
// the listing and the lstat.
func InfoErr(err error) FileInfoOption {
	return func(info *FileInfo) {
		info.err = err
	}
}

func (f *FileInfo) Name() string {
	if f == nil {
		return ""
	}
	return f.name
}
func (f *FileInfo) Size() int64 {
	if f == nil {
		return 0
	}
	return f.size
}
func (f *FileInfo) Mode() os.FileMode {
	if f == nil {
		return 0
	}
	return f.Type()
}
func (f *FileInfo) ModTime() time.Time {
	return time.Time{}
}
func (f *FileInfo) IsDir() bool {
	if f == nil {
		return false
	}
	return f.mode.IsDir()
}
func (f *FileInfo) Sys() any {
	return nil
}

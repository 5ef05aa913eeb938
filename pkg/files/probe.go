package files

import (
	"context"
	"os"
)

// Child is one entry of a directory listing.
// A child whose metadata could not be read has Kind Unreadable and a non-nil Err.
type Child struct {
	Name string
	Kind Kind
	Size int64
	Err  error
}

// UnlistedName names the Unreadable child that stands in for the entries
// of a listing that failed partway. A slash never occurs in a real name.
const UnlistedName = "/<unlisted>"

// Target is what a path resolves to after following every symlink.
type Target struct {
	RealPath string
	IsDir    bool
	Size     int64
}

//go:generate mockgen -source=probe.go -destination=mock_probe.go -package=files

// Probe is the filesystem capability consumed by the scanner.
type Probe interface {
	// ListChildren lists a directory. An error means the directory itself
	// could not be listed; per-entry failures are reported in Child.Err.
	// A listing that fails after returning some entries ends with an
	// Unreadable child named UnlistedName.
	ListChildren(ctx context.Context, dirPath string) ([]Child, error)
	// Resolve follows symlinks and returns the canonical target of p.
	Resolve(ctx context.Context, p string) (Target, error)
}

// ChildFromDirEntry converts a directory entry using lstat semantics:
// a symlink reports the size of the link itself and directories report 0.
func ChildFromDirEntry(entry os.DirEntry) Child {
	child := Child{Name: entry.Name()}
	info, err := entry.Info()
	if err != nil {
		child.Kind = Unreadable
		child.Err = Classify(err)
		return child
	}
	if info == nil {
		child.Kind = KindFromMode(entry.Type())
		return child
	}
	child.Kind = KindFromMode(info.Mode())
	if child.Kind != Directory {
		child.Size = info.Size()
	}
	return child
}

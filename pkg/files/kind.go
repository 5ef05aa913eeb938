package files

import "os"

// Kind classifies a filesystem node for size accounting.
type Kind uint8

const (
	File Kind = iota
	Directory
	Symlink
	Unreadable
)

func (k Kind) String() string {
	switch k {
	case File:
		return "file"
	case Directory:
		return "dir"
	case Symlink:
		return "symlink"
	case Unreadable:
		return "unreadable"
	default:
		return "unknown"
	}
}

// KindFromMode derives the Kind from an os.FileMode.
// Devices, pipes and sockets are counted as files.
func KindFromMode(mode os.FileMode) Kind {
	switch {
	case mode&os.ModeSymlink != 0:
		return Symlink
	case mode.IsDir():
		return Directory
	default:
		return File
	}
}

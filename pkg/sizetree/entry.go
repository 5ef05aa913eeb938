// Package sizetree holds the immutable size tree produced by a scan.
package sizetree

import "github.com/filetug/dutug/pkg/files"

// Entry is one node of the size tree. Entries are created through the
// constructors below and never change afterwards, so they can be shared
// between goroutines once built.
type Entry struct {
	name          string
	kind          files.Kind
	ownSize       int64
	aggregateSize int64
	children      []*Entry
	err           error
}

func NewFile(name string, size int64) *Entry {
	return &Entry{name: name, kind: files.File, ownSize: size, aggregateSize: size}
}

// NewSymlink creates a symlink that is not descended; size is what it
// accounts for (the link itself, or 0 when its target was already counted).
func NewSymlink(name string, size int64) *Entry {
	return &Entry{name: name, kind: files.Symlink, ownSize: size, aggregateSize: size}
}

// NewUnreadable creates a zero-size entry recording why it could not be read.
func NewUnreadable(name string, err error) *Entry {
	return &Entry{name: name, kind: files.Unreadable, err: err}
}

// NewDir joins fully built children into a directory. The aggregate size is
// computed here, once. The children slice is owned by the entry afterwards.
func NewDir(name string, children []*Entry) *Entry {
	dir := &Entry{name: name, kind: files.Directory, children: children}
	dir.aggregateSize = dir.ownSize
	for _, child := range children {
		dir.aggregateSize += child.aggregateSize
	}
	return dir
}

func (e *Entry) Name() string     { return e.name }
func (e *Entry) Kind() files.Kind { return e.kind }
func (e *Entry) IsDir() bool      { return e.kind == files.Directory }

// OwnSize is the size reported for the node itself; 0 for directories.
func (e *Entry) OwnSize() int64 { return e.ownSize }

// Size is the aggregate size: own size plus every descendant.
func (e *Entry) Size() int64 { return e.aggregateSize }

// Err is the reason an Unreadable entry could not be read.
func (e *Entry) Err() error { return e.err }

// Children returns the children in scan order. The slice must not be modified.
func (e *Entry) Children() []*Entry { return e.children }

type Counts struct {
	Files      int
	Dirs       int
	Symlinks   int
	Unreadable int
}

// Counts tallies the direct children of e by kind.
func (e *Entry) Counts() (c Counts) {
	for _, child := range e.children {
		switch child.kind {
		case files.Directory:
			c.Dirs++
		case files.Symlink:
			c.Symlinks++
		case files.Unreadable:
			c.Unreadable++
		default:
			c.Files++
		}
	}
	return
}

// Walk visits e and its descendants depth first, parents before children.
// Returning false from f skips the children of that entry.
func (e *Entry) Walk(f func(entry *Entry, depth int) bool) {
	e.walk(f, 0)
}

func (e *Entry) walk(f func(entry *Entry, depth int) bool, depth int) {
	if !f(e, depth) {
		return
	}
	for _, child := range e.children {
		child.walk(f, depth+1)
	}
}

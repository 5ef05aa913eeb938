// Package memfile is an in-memory files.Probe for exercising the scanner
// against trees that are awkward to build on a real disk.
package memfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/filetug/dutug/pkg/files"
)

const maxSymlinkHops = 40

var errTooManyLinks = errors.New("too many levels of symbolic links")

var _ files.Probe = (*Probe)(nil)

type node struct {
	mode     os.FileMode
	size     int64
	target   string
	listErr  error
	infoErr  error
	children map[string]*node
}

// Probe is a filesystem tree held in memory. Paths use forward slashes and
// are rooted at "/". Build it before scanning; it is not safe to mutate
// while a scan is running.
type Probe struct {
	root   *node
	onList func(dirPath string)
}

func NewProbe() *Probe {
	return &Probe{root: &node{mode: os.ModeDir, children: map[string]*node{}}}
}

// OnList registers a hook called at the start of every ListChildren.
func (p *Probe) OnList(f func(dirPath string)) *Probe {
	p.onList = f
	return p
}

func (p *Probe) AddDir(dirPath string) *Probe {
	p.add(dirPath, &node{mode: os.ModeDir, children: map[string]*node{}})
	return p
}

func (p *Probe) AddFile(filePath string, size int64) *Probe {
	p.add(filePath, &node{size: size})
	return p
}

// AddSymlink creates a link to target, which may be absolute or relative to
// the link's directory. The link's own size is the length of target.
func (p *Probe) AddSymlink(linkPath, target string) *Probe {
	p.add(linkPath, &node{mode: os.ModeSymlink, target: target, size: int64(len(target))})
	return p
}

// Deny makes listing dirPath fail with files.ErrAccessDenied.
func (p *Probe) Deny(dirPath string) *Probe {
	p.mustGet(dirPath).listErr = fmt.Errorf("%w: open %s", files.ErrAccessDenied, dirPath)
	return p
}

// Vanish makes the metadata read of entryPath fail with files.ErrNotFound,
// as if it was removed between the listing and the lstat.
func (p *Probe) Vanish(entryPath string) *Probe {
	p.mustGet(entryPath).infoErr = fmt.Errorf("%w: lstat %s", files.ErrNotFound, entryPath)
	return p
}

func (p *Probe) ListChildren(ctx context.Context, dirPath string) ([]files.Child, error) {
	if p.onList != nil {
		p.onList(dirPath)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n, _, err := p.resolve(clean(dirPath))
	if err != nil {
		return nil, err
	}
	if !n.mode.IsDir() {
		return nil, fmt.Errorf("readdir %s: not a directory", dirPath)
	}
	if n.listErr != nil {
		return nil, n.listErr
	}
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	slices.Sort(names)
	children := make([]files.Child, len(names))
	for i, name := range names {
		child := n.children[name]
		var o []files.FileInfoOption
		if child.infoErr != nil {
			o = append(o, files.InfoErr(child.infoErr))
		} else {
			o = append(o, files.Size(child.size))
		}
		children[i] = files.ChildFromDirEntry(files.NewDirEntry(name, child.mode, o...))
	}
	return children, nil
}

func (p *Probe) Resolve(ctx context.Context, entryPath string) (files.Target, error) {
	if err := ctx.Err(); err != nil {
		return files.Target{}, err
	}
	n, realPath, err := p.resolve(clean(entryPath))
	if err != nil {
		return files.Target{}, err
	}
	target := files.Target{RealPath: realPath, IsDir: n.mode.IsDir()}
	if !target.IsDir {
		target.Size = n.size
	}
	return target, nil
}

// resolve walks p component by component, following every symlink,
// and returns the node with its canonical path.
func (p *Probe) resolve(entryPath string) (*node, string, error) {
	hops := 0
	pending := splitPath(entryPath)
	nodes := []*node{p.root}
	var names []string
	for len(pending) > 0 {
		name := pending[0]
		pending = pending[1:]
		if name == ".." {
			if len(names) > 0 {
				nodes, names = nodes[:len(nodes)-1], names[:len(names)-1]
			}
			continue
		}
		n := nodes[len(nodes)-1]
		if !n.mode.IsDir() {
			return nil, "", fmt.Errorf("%w: %s", files.ErrNotFound, entryPath)
		}
		child, ok := n.children[name]
		if !ok {
			return nil, "", fmt.Errorf("%w: %s", files.ErrNotFound, entryPath)
		}
		if child.mode&os.ModeSymlink == 0 {
			nodes, names = append(nodes, child), append(names, name)
			continue
		}
		if hops++; hops > maxSymlinkHops {
			return nil, "", fmt.Errorf("%s: %w", entryPath, errTooManyLinks)
		}
		if strings.HasPrefix(child.target, "/") {
			nodes, names = nodes[:1], names[:0]
		}
		pending = append(splitPath(child.target), pending...)
	}
	return nodes[len(nodes)-1], "/" + strings.Join(names, "/"), nil
}

func (p *Probe) add(entryPath string, n *node) {
	dirPath, name := path.Split(clean(entryPath))
	parent := p.mustGet(dirPath)
	if parent.children == nil {
		panic("memfile: parent is not a directory: " + dirPath)
	}
	parent.children[name] = n
}

func (p *Probe) mustGet(entryPath string) *node {
	n := p.root
	for _, name := range splitPath(clean(entryPath)) {
		child, ok := n.children[name]
		if !ok {
			panic("memfile: no such entry: " + entryPath)
		}
		n = child
	}
	return n
}

func clean(p string) string {
	return path.Clean("/" + filepath.ToSlash(p))
}

func splitPath(p string) []string {
	var parts []string
	for _, part := range strings.Split(p, "/") {
		switch part {
		case "", ".":
		default:
			parts = append(parts, part)
		}
	}
	return parts
}

package scanner

import "sync"

// visitedSet records canonical directory paths already descended into.
// Only used when following symlinks.
type visitedSet struct {
	mu    sync.Mutex
	paths map[string]struct{}
}

// claim returns true when realPath had not been claimed before.
func (v *visitedSet) claim(realPath string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.paths == nil {
		v.paths = make(map[string]struct{})
	}
	if _, ok := v.paths[realPath]; ok {
		return false
	}
	v.paths[realPath] = struct{}{}
	return true
}

// realChain is the list of canonical paths from a directory up to the root.
// Nodes are shared by siblings and never modified.
type realChain struct {
	path   string
	parent *realChain
}

func (c *realChain) push(realPath string) *realChain {
	return &realChain{path: realPath, parent: c}
}

func (c *realChain) contains(realPath string) bool {
	for n := c; n != nil; n = n.parent {
		if n.path == realPath {
			return true
		}
	}
	return false
}

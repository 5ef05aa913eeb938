package navigator

import (
	"path/filepath"

	"github.com/filetug/dutug/pkg/sizetree"
)

// Navigator holds the current State for the UI loop.
type Navigator struct {
	rootPath string
	state    State
	done     bool
}

// New starts at root; rootPath is the filesystem path root was scanned from.
func New(root *sizetree.Entry, rootPath string, mode sizetree.SortMode) *Navigator {
	return &Navigator{rootPath: rootPath, state: NewState(root, mode)}
}

// Handle applies ev and reports whether the loop should stop.
func (n *Navigator) Handle(ev Event) bool {
	next, quit := Transition(n.state, ev)
	n.state = next
	if quit {
		n.done = true
	}
	return quit
}

func (n *Navigator) State() State { return n.state }

func (n *Navigator) Done() bool { return n.done }

// View is everything a renderer needs to draw the current directory.
type View struct {
	RootPath string
	// Path holds directory names from the root to the current directory.
	Path     []string
	Dir      *sizetree.Entry
	Entries  []*sizetree.Entry
	Selected int
	SortMode sizetree.SortMode
	Counts   sizetree.Counts
}

func (n *Navigator) View() View {
	s := n.state
	v := View{
		RootPath: n.rootPath,
		Dir:      s.Current(),
		Entries:  s.Entries(),
		Selected: s.Selected(),
		SortMode: s.Mode(),
	}
	for _, dir := range s.Path() {
		v.Path = append(v.Path, dir.Name())
	}
	if v.Dir != nil {
		v.Counts = v.Dir.Counts()
	}
	return v
}

// DirPath is the filesystem path of the current directory.
func (v View) DirPath() string {
	if len(v.Path) <= 1 {
		return v.RootPath
	}
	return filepath.Join(append([]string{v.RootPath}, v.Path[1:]...)...)
}

// SelectedEntry returns nil when the directory is empty.
func (v View) SelectedEntry() *sizetree.Entry {
	if v.Selected < 0 || v.Selected >= len(v.Entries) {
		return nil
	}
	return v.Entries[v.Selected]
}

// Depth is 1 at the root.
func (v View) Depth() int { return len(v.Path) }

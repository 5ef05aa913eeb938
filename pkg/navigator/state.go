// Package navigator is the cursor over a size tree: which directory is
// shown, which child is selected and how children are ordered.
package navigator

import (
	"fmt"

	"github.com/filetug/dutug/pkg/files"
	"github.com/filetug/dutug/pkg/sizetree"
)

// Event is a logical input, independent of key bindings.
type Event uint8

const (
	MoveUp Event = iota
	MoveDown
	Enter
	GoToParent
	ToggleSort
	Quit
)

func (e Event) String() string {
	switch e {
	case MoveUp:
		return "MoveUp"
	case MoveDown:
		return "MoveDown"
	case Enter:
		return "Enter"
	case GoToParent:
		return "GoToParent"
	case ToggleSort:
		return "ToggleSort"
	case Quit:
		return "Quit"
	default:
		return fmt.Sprintf("Event(%d)", e)
	}
}

// frame is one level of the path from the root to the current directory.
type frame struct {
	dir      *sizetree.Entry
	order    []*sizetree.Entry
	mode     sizetree.SortMode // mode order was built with
	selected int
}

func newFrame(dir *sizetree.Entry, mode sizetree.SortMode) frame {
	return frame{dir: dir, order: sizetree.Sort(dir.Children(), mode), mode: mode}
}

// State is a value; Transition never modifies the State it is given.
// The zero State has no directory and ignores every event but Quit.
type State struct {
	frames []frame
	mode   sizetree.SortMode
}

func NewState(root *sizetree.Entry, mode sizetree.SortMode) State {
	return State{frames: []frame{newFrame(root, mode)}, mode: mode}
}

func (s State) Mode() sizetree.SortMode { return s.mode }

// Depth is the number of directories on the path, 1 at the root.
func (s State) Depth() int { return len(s.frames) }

func (s State) Current() *sizetree.Entry {
	if len(s.frames) == 0 {
		return nil
	}
	return s.top().dir
}

// Entries returns the current directory's children in the active order.
// The slice must not be modified.
func (s State) Entries() []*sizetree.Entry {
	if len(s.frames) == 0 {
		return nil
	}
	return s.top().order
}

func (s State) Selected() int {
	if len(s.frames) == 0 {
		return 0
	}
	return s.top().selected
}

// SelectedEntry returns nil when the current directory is empty.
func (s State) SelectedEntry() *sizetree.Entry {
	if len(s.frames) == 0 {
		return nil
	}
	top := s.top()
	if len(top.order) == 0 {
		return nil
	}
	return top.order[top.selected]
}

// Path returns the directories from the root to the current one.
func (s State) Path() []*sizetree.Entry {
	path := make([]*sizetree.Entry, len(s.frames))
	for i, f := range s.frames {
		path[i] = f.dir
	}
	return path
}

// Transition applies ev to s. It is total: events that do not apply in s
// return s unchanged. The bool is true for Quit.
func Transition(s State, ev Event) (State, bool) {
	if ev == Quit {
		return s, true
	}
	if len(s.frames) == 0 {
		return s, false
	}
	switch ev {
	case MoveUp:
		return s.move(-1), false
	case MoveDown:
		return s.move(+1), false
	case Enter:
		return s.enter(), false
	case GoToParent:
		return s.parent(), false
	case ToggleSort:
		return s.toggleSort(), false
	default:
		return s, false
	}
}

func (s State) top() frame {
	return s.frames[len(s.frames)-1]
}

// withTop returns a copy of s with the top frame replaced.
func (s State) withTop(f frame) State {
	frames := make([]frame, len(s.frames))
	copy(frames, s.frames)
	frames[len(frames)-1] = f
	return State{frames: frames, mode: s.mode}
}

func (s State) move(delta int) State {
	top := s.top()
	next := min(max(top.selected+delta, 0), len(top.order)-1)
	if next < 0 || next == top.selected {
		return s
	}
	top.selected = next
	return s.withTop(top)
}

func (s State) enter() State {
	selected := s.SelectedEntry()
	if selected == nil || selected.Kind() != files.Directory {
		return s
	}
	frames := make([]frame, len(s.frames), len(s.frames)+1)
	copy(frames, s.frames)
	frames = append(frames, newFrame(selected, s.mode))
	return State{frames: frames, mode: s.mode}
}

func (s State) parent() State {
	if len(s.frames) < 2 {
		return s
	}
	exited := s.top().dir
	parent := s.frames[len(s.frames)-2]
	if parent.mode != s.mode {
		// Sorting is lazy: levels above are re-sorted when revisited.
		parent.order = sizetree.Sort(parent.dir.Children(), s.mode)
		parent.mode = s.mode
	}
	parent.selected = max(sizetree.IndexOf(parent.order, exited), 0)

	frames := make([]frame, len(s.frames)-1)
	copy(frames, s.frames)
	frames[len(frames)-1] = parent
	return State{frames: frames, mode: s.mode}
}

func (s State) toggleSort() State {
	mode := s.mode.Toggle()
	selected := s.SelectedEntry()
	top := s.top()
	top.order = sizetree.Sort(top.dir.Children(), mode)
	top.mode = mode
	top.selected = max(sizetree.IndexOf(top.order, selected), 0)
	next := s.withTop(top)
	next.mode = mode
	return next
}

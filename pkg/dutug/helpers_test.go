package dutug

import (
	"strings"
	"testing"

	"github.com/filetug/dutug/pkg/files"
	"github.com/filetug/dutug/pkg/navigator"
	"github.com/filetug/dutug/pkg/sizetree"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/shirou/gopsutil/v3/disk"
)

// readLine reads a full line from the screen.
func readLine(screen tcell.Screen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		mainc, combc, _, _ := screen.GetContent(x, y)
		str := string(append([]rune{mainc}, combc...))
		if str == "" {
			b.WriteRune(' ')
			continue
		}
		b.WriteString(str)
	}
	return b.String()
}

func newSimScreen(t *testing.T, width, height int) tcell.Screen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("failed to init simulation screen: %v", err)
	}
	s.SetSize(width, height)
	t.Cleanup(s.Fini)
	return s
}

type fakeApp struct {
	root    tview.Primitive
	focus   tview.Primitive
	stopped bool
}

func (f *fakeApp) SetRoot(root tview.Primitive, _ bool) {
	f.root = root
	f.focus = root
}

func (f *fakeApp) SetFocus(p tview.Primitive) {
	f.focus = p
}

func (f *fakeApp) Stop() {
	f.stopped = true
}

type testTree struct {
	root, x, y, d, link, denied *sizetree.Entry
}

// newTestTree is root{x:100, y:50, d{z:25}, link@, denied!}.
func newTestTree() testTree {
	t := testTree{
		x:      sizetree.NewFile("x", 100),
		y:      sizetree.NewFile("y", 50),
		d:      sizetree.NewDir("d", []*sizetree.Entry{sizetree.NewFile("z", 25)}),
		link:   sizetree.NewSymlink("link", 3),
		denied: sizetree.NewUnreadable("denied", files.ErrAccessDenied),
	}
	t.root = sizetree.NewDir("root", []*sizetree.Entry{t.x, t.y, t.d, t.link, t.denied})
	return t
}

func withDiskUsage(t *testing.T, usage *disk.UsageStat, err error) {
	t.Helper()
	oldDiskUsage := diskUsage
	t.Cleanup(func() {
		diskUsage = oldDiskUsage
	})
	diskUsage = func(string) (*disk.UsageStat, error) {
		return usage, err
	}
}

func newTestBrowser(t *testing.T) (*Browser, *fakeApp, testTree) {
	t.Helper()
	withDiskUsage(t, &disk.UsageStat{Total: 1e12, Free: 4e11, UsedPercent: 60}, nil)
	tree := newTestTree()
	app := &fakeApp{}
	nav := navigator.New(tree.root, "/data/root", sizetree.BySizeDescending)
	return NewBrowser(app, nav), app, tree
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

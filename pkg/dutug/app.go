package dutug

import (
	"github.com/filetug/dutug/pkg/navigator"
	"github.com/filetug/dutug/pkg/scanner"
	"github.com/filetug/dutug/pkg/sizetree"
	"github.com/rivo/tview"
)

type duApp struct {
	*tview.Application
}

func (a duApp) SetRoot(root tview.Primitive, fullscreen bool) {
	_ = a.Application.SetRoot(root, fullscreen)
}

func (a duApp) SetFocus(p tview.Primitive) {
	_ = a.Application.SetFocus(p)
}

// SetupApp makes a Browser over the scan result the root of app.
func SetupApp(app *tview.Application, result *scanner.Result, mode sizetree.SortMode) *Browser {
	nav := navigator.New(result.Root, result.RootPath, mode)
	b := NewBrowser(duApp{Application: app}, nav)
	app.SetRoot(b, true)
	return b
}

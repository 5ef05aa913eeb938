package dutug

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const helpText = `↑ k     - Move up
↓ j     - Move down
→ l ⏎   - Open directory
← h ⌫   - Go to parent
s       - Toggle sort (size/name)
F1 ?    - Help
q Esc   - Quit`

func (b *Browser) showHelp() {
	modal, _, _ := b.createHelpModal()
	b.app.SetRoot(modal, true)
}

func (b *Browser) createHelpModal() (modal tview.Primitive, helpView *tview.TextView, button *tview.Button) {
	helpView = tview.NewTextView().
		SetDynamicColors(false).
		SetText(helpText)
	helpView.SetBackgroundColor(tcell.ColorDarkBlue)

	closeHelp := func() {
		b.app.SetRoot(b, true)
		b.app.SetFocus(b.table)
	}
	closeOnKey := func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Key() == tcell.KeyF1 {
			closeHelp()
			return nil
		}
		return event
	}
	helpView.SetInputCapture(closeOnKey)

	button = tview.NewButton("Close").SetSelectedFunc(closeHelp)
	button.SetBackgroundColor(tcell.ColorDarkBlue)
	button.SetInputCapture(closeOnKey)

	helpFlex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(helpView, 0, 1, false).
		AddItem(button, 1, 0, true)
	helpFlex.SetBorder(true).
		SetTitle(" dutug - Help ").
		SetTitleAlign(tview.AlignCenter)
	helpFlex.SetBackgroundColor(tcell.ColorDarkBlue)

	modal = tview.NewGrid().
		SetColumns(0, 40, 0).
		SetRows(0, 11, 0).
		AddItem(helpFlex, 1, 1, 1, 1, 0, 0, true)

	return modal, helpView, button
}

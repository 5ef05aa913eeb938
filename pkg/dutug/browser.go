package dutug

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/filetug/dutug/pkg/navigator"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/shirou/gopsutil/v3/disk"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var diskUsage = disk.Usage

// appController is the part of tview.Application the browser drives.
type appController interface {
	SetRoot(root tview.Primitive, fullscreen bool)
	SetFocus(p tview.Primitive)
	Stop()
}

// Browser shows one directory of the scanned tree: a header with the
// current path, the entry table and a status bar.
type Browser struct {
	*tview.Flex
	app     appController
	nav     *navigator.Navigator
	header  *tview.TextView
	table   *tview.Table
	status  *tview.TextView
	volume  string
	printer *message.Printer
}

func NewBrowser(app appController, nav *navigator.Navigator) *Browser {
	b := &Browser{
		Flex:    tview.NewFlex().SetDirection(tview.FlexRow),
		app:     app,
		nav:     nav,
		header:  tview.NewTextView().SetDynamicColors(true),
		table:   tview.NewTable(),
		status:  tview.NewTextView().SetDynamicColors(true),
		volume:  volumeText(nav.View().RootPath),
		printer: message.NewPrinter(language.English),
	}

	b.table.SetSelectable(true, false)
	b.table.SetFixed(1, 0)
	b.table.SetSelectedStyle(Style.SelectedStyle)
	b.table.SetBorder(true).
		SetBorderColor(Style.BorderColor).
		SetTitle(" Disk Usage Analyzer (q to quit) ")
	b.table.SetInputCapture(b.inputCapture)

	b.status.SetTextColor(tcell.ColorGray)

	b.AddItem(b.header, 1, 0, false)
	b.AddItem(b.table, 0, 1, true)
	b.AddItem(b.status, 1, 0, false)

	b.Render()
	return b
}

// Render redraws every part from the navigator's current View.
func (b *Browser) Render() {
	view := b.nav.View()
	b.header.SetText(b.headerText(view))
	b.table.SetContent(NewEntryRows(view))
	b.table.Select(view.Selected+1, 0)
	b.status.SetText(b.statusText(view))
}

func (b *Browser) inputCapture(event *tcell.EventKey) *tcell.EventKey {
	if isHelpKey(event) {
		b.showHelp()
		return nil
	}
	ev, ok := EventForKey(event)
	if !ok {
		return nil // the table must not move the selection on its own
	}
	b.nav.Handle(ev)
	if b.nav.Done() {
		b.app.Stop()
		return nil
	}
	b.Render()
	return nil
}

func (b *Browser) headerText(view navigator.View) string {
	text := " [::b]" + tview.Escape(view.DirPath()) + "[::-]"
	if depth := view.Depth(); depth > 1 {
		text += fmt.Sprintf(" [gray](level %d)[-]", depth-1)
	}
	if selected := view.SelectedEntry(); selected != nil {
		text += "  > " + tview.Escape(DisplayName(selected)) + " " + GetSizeText(selected.Size())
	}
	if b.volume != "" {
		text += "  [gray]" + b.volume + "[-]"
	}
	return text
}

func (b *Browser) statusText(view navigator.View) string {
	text := fmt.Sprintf(" ↑/k/↓/j: Navigate | →/Enter: Open | ←/Backspace: Go Back | s: Sort (%s) | F1: Help | ", view.SortMode)
	text += b.printer.Sprintf("Files: %d | Dirs: %d", view.Counts.Files, view.Counts.Dirs)
	if view.Counts.Symlinks > 0 {
		text += b.printer.Sprintf(" | Links: %d", view.Counts.Symlinks)
	}
	if view.Counts.Unreadable > 0 {
		text += b.printer.Sprintf(" | Unreadable: %d", view.Counts.Unreadable)
	}
	var total int64
	if view.Dir != nil {
		total = view.Dir.Size()
	}
	return text + " | Total: " + GetSizeText(total)
}

// volumeText describes the filesystem holding rootPath, or is empty when
// usage is unavailable.
func volumeText(rootPath string) string {
	if rootPath == "" {
		return ""
	}
	usage, err := diskUsage(rootPath)
	if err != nil || usage == nil || usage.Total == 0 {
		return ""
	}
	return fmt.Sprintf("%s free of %s (%.0f%% used)",
		humanize.Bytes(usage.Free), humanize.Bytes(usage.Total), usage.UsedPercent)
}

package dutug

import (
	"github.com/filetug/dutug/pkg/files"
	"github.com/filetug/dutug/pkg/navigator"
	"github.com/filetug/dutug/pkg/sizetree"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

var _ tview.TableContent = (*EntryRows)(nil)

const barWidth = 20

const (
	nameColIndex = iota
	sizeColIndex
	percentColIndex
	barColIndex
	columnCount
)

// EntryRows presents the entries of a navigator View as table rows.
// Row 0 is the header; entry i is on row i+1.
type EntryRows struct {
	tview.TableContentReadOnly
	Dir     *sizetree.Entry
	Entries []*sizetree.Entry
}

func NewEntryRows(view navigator.View) *EntryRows {
	return &EntryRows{Dir: view.Dir, Entries: view.Entries}
}

func (r *EntryRows) GetRowCount() int {
	return 1 + max(len(r.Entries), 1)
}

func (r *EntryRows) GetColumnCount() int {
	return columnCount
}

func (r *EntryRows) GetCell(row, col int) *tview.TableCell {
	if row == 0 {
		return r.getHeaderCell(col)
	}
	if len(r.Entries) == 0 {
		if row == 1 && col == nameColIndex {
			cell := tview.NewTableCell("[::i]No entries[::-]")
			cell.SetTextColor(tcell.ColorGray)
			return cell
		}
		return nil
	}
	i := row - 1
	if i < 0 || i >= len(r.Entries) {
		return nil
	}
	entry := r.Entries[i]
	var cell *tview.TableCell
	switch col {
	case nameColIndex:
		cell = getNameCell(entry)
	case sizeColIndex:
		cell = GetSizeCell(entry.Size(), Style.FileColor)
	case percentColIndex:
		cell = tview.NewTableCell(percentText(r.share(entry)))
		cell.SetAlign(tview.AlignRight)
	case barColIndex:
		cell = tview.NewTableCell(" " + shareBar(r.share(entry), barWidth))
		cell.SetTextColor(Style.BarColor)
	default:
		return nil
	}
	if entry.Kind() == files.Unreadable {
		cell.SetTextColor(Style.UnreadableColor)
		cell.SetAttributes(tcell.AttrDim)
	}
	cell.SetReference(entry)
	return cell
}

func (r *EntryRows) share(entry *sizetree.Entry) float64 {
	if r.Dir == nil {
		return 0
	}
	return share(entry.Size(), r.Dir.Size())
}

func (r *EntryRows) getHeaderCell(col int) *tview.TableCell {
	th := func(text string, align int) *tview.TableCell {
		cell := tview.NewTableCell(text)
		cell.SetTextColor(Style.TableHeaderColor)
		cell.SetAttributes(tcell.AttrBold)
		cell.SetAlign(align)
		cell.SetSelectable(false)
		return cell
	}
	switch col {
	case nameColIndex:
		return th("Name", tview.AlignLeft).SetExpansion(1)
	case sizeColIndex:
		return th("Size", tview.AlignRight)
	case percentColIndex:
		return th("%", tview.AlignRight)
	case barColIndex:
		return th("", tview.AlignLeft)
	default:
		return nil
	}
}

// DisplayName is the entry name with a marker for its kind.
func DisplayName(entry *sizetree.Entry) string {
	switch entry.Kind() {
	case files.Directory:
		return entry.Name() + "/"
	case files.Symlink:
		return entry.Name() + "@"
	case files.Unreadable:
		return "!" + entry.Name()
	default:
		return entry.Name()
	}
}

func getNameCell(entry *sizetree.Entry) *tview.TableCell {
	cell := tview.NewTableCell(" " + tview.Escape(DisplayName(entry)))
	cell.SetExpansion(1)
	switch entry.Kind() {
	case files.Directory:
		cell.SetTextColor(Style.DirColor)
		cell.SetAttributes(tcell.AttrBold)
	case files.Symlink:
		cell.SetTextColor(Style.SymlinkColor)
	default:
		cell.SetTextColor(Style.FileColor)
	}
	return cell
}

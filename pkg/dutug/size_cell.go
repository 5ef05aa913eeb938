package dutug

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// eighths are block characters from 1/8 to 8/8 of a cell wide.
var eighths = []rune("▏▎▍▌▋▊▉█")

// GetSizeText formats a byte count in decimal units.
func GetSizeText(size int64) string {
	if size < 0 {
		size = 0
	}
	return humanize.Bytes(uint64(size))
}

// GetSizeCell creates a table cell with size information and appropriate color.
func GetSizeCell(size int64, defaultColor tcell.Color) *tview.TableCell {
	sizeCell := tview.NewTableCell("  " + GetSizeText(size))
	sizeCell.SetAlign(tview.AlignRight)
	switch {
	case size >= humanize.TByte:
		sizeCell.SetTextColor(tcell.ColorOrangeRed)
	case size >= humanize.GByte:
		sizeCell.SetTextColor(tcell.ColorYellow)
	case size >= humanize.MByte:
		sizeCell.SetTextColor(tcell.ColorLightGreen)
	case size >= humanize.KByte:
		sizeCell.SetTextColor(Style.TableHeaderColor)
	case size > 0:
		sizeCell.SetTextColor(defaultColor)
	default:
		sizeCell.SetTextColor(Style.ZeroSizeColor)
	}
	return sizeCell
}

// share is part/total in [0, 1]; 0 when total is 0.
func share(part, total int64) float64 {
	if total <= 0 || part <= 0 {
		return 0
	}
	return min(float64(part)/float64(total), 1)
}

func percentText(fraction float64) string {
	return fmt.Sprintf("%5.1f%%", fraction*100)
}

// shareBar draws fraction of width cells with eighth-cell resolution.
func shareBar(fraction float64, width int) string {
	units := int(fraction*float64(width*8) + 0.5)
	full, rest := units/8, units%8
	bar := strings.Repeat(string(eighths[len(eighths)-1]), full)
	if rest > 0 {
		bar += string(eighths[rest-1])
	}
	return bar
}

package dutug

import (
	"github.com/gdamore/tcell/v2"
)

type Styles struct {
	BorderColor      tcell.Color
	TableHeaderColor tcell.Color

	DirColor        tcell.Color
	FileColor       tcell.Color
	SymlinkColor    tcell.Color
	UnreadableColor tcell.Color
	ZeroSizeColor   tcell.Color
	BarColor        tcell.Color

	SelectedStyle tcell.Style
}

var Style = Styles{
	BorderColor:      tcell.ColorCornflowerBlue,
	TableHeaderColor: tcell.ColorWhiteSmoke,

	DirColor:        tcell.ColorDodgerBlue,
	FileColor:       tcell.ColorWhite,
	SymlinkColor:    tcell.ColorDarkCyan,
	UnreadableColor: tcell.ColorGray,
	ZeroSizeColor:   tcell.ColorGray,
	BarColor:        tcell.ColorCornflowerBlue,

	SelectedStyle: tcell.StyleDefault.Reverse(true),
}

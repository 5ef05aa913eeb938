package dutug

import (
	"github.com/filetug/dutug/pkg/navigator"
	"github.com/gdamore/tcell/v2"
)

// EventForKey maps a key press to a navigator event.
func EventForKey(event *tcell.EventKey) (navigator.Event, bool) {
	switch event.Key() {
	case tcell.KeyUp:
		return navigator.MoveUp, true
	case tcell.KeyDown:
		return navigator.MoveDown, true
	case tcell.KeyRight, tcell.KeyEnter:
		return navigator.Enter, true
	case tcell.KeyLeft, tcell.KeyBackspace, tcell.KeyBackspace2:
		return navigator.GoToParent, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return navigator.Quit, true
	case tcell.KeyRune:
		switch event.Rune() {
		case 'k':
			return navigator.MoveUp, true
		case 'j':
			return navigator.MoveDown, true
		case 'l':
			return navigator.Enter, true
		case 'h':
			return navigator.GoToParent, true
		case 's':
			return navigator.ToggleSort, true
		case 'q':
			return navigator.Quit, true
		}
	}
	return 0, false
}

func isHelpKey(event *tcell.EventKey) bool {
	return event.Key() == tcell.KeyF1 || (event.Key() == tcell.KeyRune && event.Rune() == '?')
}

package terminal

import "github.com/gdamore/tcell/v2"

// Run draws and handles events until the player quits. The caller owns the
// screen's Init and Fini.
func (u *UI) Run(screen tcell.Screen) {
	for {
		u.Draw(screen)
		screen.Show()
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			if !u.Handle(ev.Key(), ev.Rune()) {
				return
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}

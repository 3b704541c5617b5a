// Package terminal plays blockfall interactively in a tcell screen.
package terminal

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"svw.info/blockfall/internal/domain"
	"svw.info/blockfall/internal/ports"
	"svw.info/blockfall/internal/usecase"
)

// Canvas is the part of tcell.Screen the UI draws on.
type Canvas interface {
	Clear()
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
}

// UI holds the cursor and the pending move of one interactive game.
//
// Arrow keys (or h j k l) move the cursor, + and - pick the distance, Enter
// plays the move and brings the next row, ? asks for a hint, n brings the
// next row without moving and q quits.
type UI struct {
	ctx    context.Context
	game   *usecase.Game
	hinter ports.Hinter

	cursor  domain.Position
	steps   int
	message string
	hint    *domain.Hint
}

func New(ctx context.Context, g *usecase.Game, h ports.Hinter) *UI {
	u := &UI{ctx: ctx, game: g, hinter: h, cursor: domain.Pos('a', 1), steps: 1}
	u.nextRow()
	return u
}

func (u *UI) Cursor() domain.Position { return u.cursor }
func (u *UI) Steps() int              { return u.steps }
func (u *UI) Message() string         { return u.message }

// Handle applies one key press and reports whether the UI should keep running.
func (u *UI) Handle(key tcell.Key, r rune) bool {
	dim := u.game.Board().Dimension()
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		r = 'h'
	case tcell.KeyRight:
		r = 'l'
	case tcell.KeyUp:
		r = 'k'
	case tcell.KeyDown:
		r = 'j'
	case tcell.KeyEnter:
		r = '\n'
	case tcell.KeyRune:
	default:
		return true
	}

	switch r {
	case 'q':
		return false
	case 'h':
		if p, ok := dim.Left(u.cursor, 1); ok {
			u.cursor = p
		}
	case 'l':
		if p, ok := dim.Right(u.cursor, 1); ok {
			u.cursor = p
		}
	case 'k':
		// the overflow row is never playable
		if p, ok := dim.Up(u.cursor, 1); ok && p.Row != domain.Overflow {
			u.cursor = p
		}
	case 'j':
		if p, ok := dim.Down(u.cursor, 1); ok {
			u.cursor = p
		}
	case '+':
		u.steps = u.nudge(u.steps + 1)
	case '-':
		u.steps = u.nudge(u.steps - 1)
	case '\n':
		u.play()
	case 'n':
		u.nextRow()
	case '?':
		u.askHint()
	}
	return true
}

// nudge skips zero, which is not a move.
func (u *UI) nudge(s int) int {
	if s == 0 {
		if u.steps > 0 {
			return -1
		}
		return 1
	}
	return s
}

func (u *UI) play() {
	if u.game.Over() {
		u.message = "game over, press q"
		return
	}
	m, err := u.game.Move(u.cursor, u.steps)
	switch {
	case errors.Is(err, usecase.ErrNoBlock):
		u.message = fmt.Sprintf("no block at %s", u.cursor)
		return
	case errors.Is(err, usecase.ErrIllegalMove):
		u.message = fmt.Sprintf("cannot move %s by %+d", u.cursor, u.steps)
		return
	case err != nil:
		u.message = err.Error()
		return
	}
	u.hint = nil
	u.message = fmt.Sprintf("moved %s", m)
	u.nextRow()
}

func (u *UI) nextRow() {
	if _, err := u.game.NextRow(); err != nil {
		u.message = "game over, press q"
		return
	}
	if u.game.Over() {
		u.message = "game over, press q"
	}
}

func (u *UI) askHint() {
	if u.hinter == nil {
		return
	}
	h, ok, err := u.hinter.Hint(u.ctx, u.game.Board(), u.game.Progress())
	switch {
	case err != nil:
		u.message = err.Error()
	case !ok:
		u.message = "no block can move"
		u.hint = nil
	default:
		u.hint = &h
		u.cursor = h.Move.From
		u.steps = h.Move.Steps
		u.message = h.Message
	}
}

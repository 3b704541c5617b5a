package terminal

import (
	"fmt"
	"slices"

	"github.com/gdamore/tcell/v2"

	"svw.info/blockfall/internal/domain"
)

var palette = map[domain.Color]tcell.Color{
	domain.Black:   tcell.ColorSilver,
	domain.Red:     tcell.ColorRed,
	domain.Green:   tcell.ColorGreen,
	domain.Yellow:  tcell.ColorYellow,
	domain.Blue:    tcell.ColorBlue,
	domain.Magenta: tcell.ColorPurple,
	domain.Cyan:    tcell.ColorTeal,
	domain.White:   tcell.ColorWhite,
}

const (
	boardTop  = 2
	boardLeft = 3
)

// Draw renders the status line, the board top row first, and the message
// line.
func (u *UI) Draw(c Canvas) {
	c.Clear()
	b := u.game.Board()
	dim := b.Dimension()
	p := u.game.Progress()

	text(c, 0, 0, tcell.StyleDefault.Bold(true),
		fmt.Sprintf("level %d  score %d  turn %d  next %d", p.Level, p.Score, u.game.Turns(), len(u.game.Pending())))

	var hinted []domain.Position
	if u.hint != nil {
		hinted = u.hint.Cells
	}
	for i, n := 0, dim.Rows; n >= 1; i, n = i+1, n-1 {
		row := dim.RowAt(n)
		y := boardTop + i
		c.SetContent(0, y, rune(row), nil, tcell.StyleDefault.Dim(true))
		for col := 1; col <= dim.Columns; col++ {
			pos := domain.Pos(row, col)
			ch, style := '·', tcell.StyleDefault.Foreground(tcell.ColorGray)
			if blk := b.BlockAt(pos); blk != nil {
				ch, style = blk.Symbol(), tcell.StyleDefault.Foreground(palette[blk.Color()])
			}
			if slices.Contains(hinted, pos) {
				style = style.Underline(true)
			}
			if pos == u.cursor {
				style = style.Reverse(true)
			}
			c.SetContent(boardLeft+col-1, y, ch, nil, style)
		}
	}

	y := boardTop + dim.Rows + 1
	text(c, 0, y, tcell.StyleDefault, fmt.Sprintf("cursor %s  move %+d", u.cursor, u.steps))
	style := tcell.StyleDefault
	if u.game.Over() {
		style = style.Foreground(tcell.ColorRed).Bold(true)
	}
	text(c, 0, y+1, style, u.message)
}

func text(c Canvas, x, y int, style tcell.Style, s string) {
	w, h := c.Size()
	if y >= h {
		return
	}
	for _, r := range s {
		if x >= w {
			return
		}
		c.SetContent(x, y, r, nil, style)
		x++
	}
}

package hint

import (
	"context"
	"fmt"

	"svw.info/blockfall/internal/board"
	"svw.info/blockfall/internal/domain"
	"svw.info/blockfall/internal/ports"
)

// Greedy implements a Hinter that suggests the best single move.
type Greedy struct {
	Finder ports.MoveFinder
}

func NewGreedy(f ports.MoveFinder) *Greedy { return &Greedy{Finder: f} }

// Hint returns the move the finder prefers, with the cells of the block to
// move and the cells it would end up on.
func (h *Greedy) Hint(ctx context.Context, b *board.Board, p domain.Progress) (domain.Hint, bool, error) {
	plan, ok, _, err := h.Finder.BestMove(ctx, b, p)
	if err != nil || !ok {
		return domain.Hint{}, false, err
	}
	m := plan.Moves[0]
	cells := b.PositionsOf(m.Block)
	gained := plan.Result.Score - p.Score
	msg := fmt.Sprintf("Move the block at %s %s", m.From, distance(m.Steps))
	if gained > 0 {
		msg += fmt.Sprintf(" for %d points", gained)
	}
	return domain.Hint{
		Message: msg,
		Cells:   cells,
		Move:    m,
		Result:  plan.Result,
	}, true, nil
}

func distance(steps int) string {
	dir := "right"
	if steps < 0 {
		dir, steps = "left", -steps
	}
	if steps == 1 {
		return "1 cell " + dir
	}
	return fmt.Sprintf("%d cells %s", steps, dir)
}

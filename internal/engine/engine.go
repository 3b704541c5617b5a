// Package engine drives a board to rest after a change and keeps score.
package engine

import (
	"svw.info/blockfall/internal/board"
	"svw.info/blockfall/internal/domain"
)

// FullRowExplosion collects the blocks of all full rows (bottom-up, left to
// right) and lets each explode once, unless an earlier cascade already
// removed it. Halves of a fragile block split along the way do not explode
// on their own. Returns the total score.
func FullRowExplosion(b *board.Board) int {
	var pending []*domain.Block
	for _, row := range b.FullRows() {
		pending = append(pending, b.BlocksInRow(row)...)
	}
	total := 0
	for _, blk := range pending {
		if b.Contains(blk) {
			total += b.Explode(blk)
		}
	}
	return total
}

// Threshold is the score a game must exceed to leave level.
func Threshold(level, columns int) int {
	t := 11 * columns
	for n := 2; n <= level; n++ {
		t += (10 + n) * columns * n
	}
	return t
}

// AdjustScore adds the explosion score, weighted by the number of full rows
// and the level, and moves up one level once the threshold is passed.
func AdjustScore(p domain.Progress, exploded, fullRows, columns int) domain.Progress {
	p.Score += exploded * fullRows * p.Level
	if p.Score > Threshold(p.Level, columns) {
		p.Level++
	}
	return p
}

// Stabilize lets all blocks fall and explodes full rows, repeating until a
// fall leaves no full row.
func Stabilize(b *board.Board, p domain.Progress) domain.Progress {
	columns := b.Dimension().Columns
	b.LetAllBlocksFall()
	full := len(b.FullRows())
	for full > 0 {
		exploded := FullRowExplosion(b)
		p = AdjustScore(p, exploded, full, columns)
		b.LetAllBlocksFall()
		full = len(b.FullRows())
	}
	return p
}

// PossibleSteps returns, in ascending order, every non-zero distance block
// can slide over. The range is contiguous around zero.
func PossibleSteps(b *board.Board, block *domain.Block) []int {
	lo := 0
	for b.CanMoveOver(block, lo-1) {
		lo--
	}
	hi := 0
	for b.CanMoveOver(block, hi+1) {
		hi++
	}
	out := make([]int, 0, hi-lo)
	for s := lo; s <= hi; s++ {
		if s != 0 {
			out = append(out, s)
		}
	}
	return out
}

// ApplyMove moves the block and stabilizes the board.
func ApplyMove(b *board.Board, m domain.Move, p domain.Progress) domain.Progress {
	b.MoveHorizontally(m.Block, m.Steps)
	return Stabilize(b, p)
}

// InsertBatch pushes the board up, fills the bottom row and stabilizes.
func InsertBatch(b *board.Board, batch domain.FillBatch, p domain.Progress) domain.Progress {
	b.InsertBottomRow(batch)
	return Stabilize(b, p)
}

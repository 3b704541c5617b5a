package solver

import (
	"svw.info/blockfall/internal/board"
	"svw.info/blockfall/internal/domain"
	"svw.info/blockfall/internal/engine"
)

// BacktrackingSolver searches for the shortest sequence of moves that lifts
// the score to a target while fill batches keep pushing the board up.
type BacktrackingSolver struct{}

func NewBacktrackingSolver() *BacktrackingSolver { return &BacktrackingSolver{} }

// --- helpers shared by TopMoves and BestMove ---

// candidateMoves lists every legal move on b. Blocks come bottom-up and left
// to right, steps ascend, so the list is sorted by Move.Compare.
func candidateMoves(b *board.Board) []domain.Move {
	var out []domain.Move
	for _, blk := range b.Blocks() {
		from, _ := b.LeftmostPositionOf(blk)
		for _, steps := range engine.PossibleSteps(b, blk) {
			out = append(out, domain.Move{Block: blk, From: from, Steps: steps})
		}
	}
	return out
}

// better reports whether plan a beats plan b: fewer moves first, then the
// pairwise smaller move sequence.
func better(a, b []domain.Move) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return domain.CompareMoves(a, b) < 0
}

// trial plays m on a copy of b.
func trial(b *board.Board, m domain.Move, p domain.Progress) (*board.Board, domain.Progress) {
	next := b.Clone()
	return next, engine.ApplyMove(next, m, p)
}

// The implementations for TopMoves and BestMove are in backtrack_solve.go and
// greedy.go and use the helpers above.

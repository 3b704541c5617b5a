package solver

import (
	"context"
	"time"

	"svw.info/blockfall/internal/board"
	"svw.info/blockfall/internal/domain"
	"svw.info/blockfall/internal/ports"
)

// GreedySolver looks one move ahead.
type GreedySolver struct{}

func NewGreedySolver() *GreedySolver { return &GreedySolver{} }

// BestMove tries every legal move on a copy of b and keeps the one with the
// highest resulting score. On a tie the earlier move wins, i.e. the block with
// the smaller leftmost position, then the smaller step. ok is false when no
// block can move.
func (s *GreedySolver) BestMove(ctx context.Context, b *board.Board, p domain.Progress) (domain.Plan, bool, ports.Stats, error) {
	start := time.Now()
	nodes := 0
	var best domain.Plan
	found := false
	for _, m := range candidateMoves(b) {
		if err := ctx.Err(); err != nil {
			return domain.Plan{}, false, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, err
		}
		nodes++
		_, q := trial(b, m, p)
		if !found || q.Score > best.Result.Score {
			best = domain.Plan{Moves: []domain.Move{m}, Result: q}
			found = true
		}
	}
	return best, found, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
}

package solver

import (
	"context"
	"time"

	"svw.info/blockfall/internal/board"
	"svw.info/blockfall/internal/domain"
	"svw.info/blockfall/internal/engine"
	"svw.info/blockfall/internal/ports"
)

// TopMoves returns the fewest moves, at most t.MaxMoves, that bring the score
// to t.MinScore. Before each move the next batch is inserted at the bottom.
// Neither b nor batches is modified. ok is false when no such plan exists.
func (s *BacktrackingSolver) TopMoves(ctx context.Context, b *board.Board, batches []domain.FillBatch, t domain.Target, p domain.Progress) (domain.Plan, bool, ports.Stats, error) {
	start := time.Now()
	nodes := 0
	var dfs func(b *board.Board, batches []domain.FillBatch, budget int, p domain.Progress) (domain.Plan, bool)
	dfs = func(b *board.Board, batches []domain.FillBatch, budget int, p domain.Progress) (domain.Plan, bool) {
		nodes++
		if p.Score >= t.MinScore && budget >= 0 {
			return domain.Plan{Moves: []domain.Move{}, Result: p}, true
		}
		if len(batches) == 0 || budget <= 0 || b.Overflowed() || ctx.Err() != nil {
			return domain.Plan{}, false
		}
		filled := b.Clone()
		p = engine.InsertBatch(filled, batches[0], p)
		var best domain.Plan
		found := false
		for _, m := range candidateMoves(filled) {
			next, q := trial(filled, m, p)
			sub, ok := dfs(next, batches[1:], budget-1, q)
			if !ok {
				continue
			}
			moves := append([]domain.Move{m}, sub.Moves...)
			if !found || better(moves, best.Moves) {
				best = domain.Plan{Moves: moves, Result: sub.Result}
				found = true
				budget = len(moves)
			}
		}
		return best, found
	}
	plan, ok := dfs(b, batches, t.MaxMoves, p)
	stats := ports.Stats{Nodes: nodes, Duration: time.Since(start)}
	if err := ctx.Err(); err != nil {
		return domain.Plan{}, false, stats, err
	}
	return plan, ok, stats, nil
}

package ports

import (
	"context"
	"time"

	"svw.info/blockfall/internal/board"
	"svw.info/blockfall/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Nodes    int
	Duration time.Duration
}

// MoveFinder picks the single move with the highest resulting score.
type MoveFinder interface {
	BestMove(ctx context.Context, b *board.Board, p domain.Progress) (domain.Plan, bool, Stats, error)
}

// Planner searches for the shortest move sequence reaching a target score.
type Planner interface {
	TopMoves(ctx context.Context, b *board.Board, batches []domain.FillBatch, t domain.Target, p domain.Progress) (domain.Plan, bool, Stats, error)
}

// Generator creates random fill batches for a board of the given dimension.
type Generator interface {
	Generate(ctx context.Context, seed int64, dim domain.Dimension, level, count int) ([]domain.FillBatch, Stats, error)
}

// Validator checks boards and batches coming from outside the engine.
type Validator interface {
	Validate(ctx context.Context, b *board.Board) (ok bool, conflicts []domain.Position, err error)
	ValidateBatch(ctx context.Context, dim domain.Dimension, batch domain.FillBatch) (ok bool, conflicts []domain.Position, err error)
}

// Hinter suggests the next move for a player.
type Hinter interface {
	Hint(ctx context.Context, b *board.Board, p domain.Progress) (domain.Hint, bool, error)
}

// Storage persists and retrieves scenarios.
type Storage interface {
	Save(ctx context.Context, s *domain.Scenario) error
	Load(ctx context.Context, id string) (*domain.Scenario, error)
	List(ctx context.Context) ([]domain.ScenarioMeta, error)
}

// Tracer records played turns.
type Tracer interface {
	Write(v any) error
}

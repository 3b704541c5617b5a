package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"svw.info/blockfall/internal/board"
	"svw.info/blockfall/internal/domain"
	"svw.info/blockfall/internal/engine"
	"svw.info/blockfall/internal/ports"
	"svw.info/blockfall/internal/validator"
)

type Service struct {
	Finder    ports.MoveFinder
	Planner   ports.Planner
	Generator ports.Generator
	Validator ports.Validator
	Hinter    ports.Hinter
	Storage   ports.Storage
	Tracer    ports.Tracer
	Logger    *slog.Logger

	// MaxMoves caps the move budget of any search; 0 means no cap.
	MaxMoves int
}

func NewService(f ports.MoveFinder, p ports.Planner, g ports.Generator, v ports.Validator, h ports.Hinter, st ports.Storage) *Service {
	return &Service{Finder: f, Planner: p, Generator: g, Validator: v, Hinter: h, Storage: st, Logger: slog.Default()}
}

var errNotConfigured = errors.New("usecase dependency not configured")

// ErrBudgetTooLarge is returned when a search asks for more moves than
// MaxMoves allows.
var ErrBudgetTooLarge = errors.New("move budget exceeds the limit")

// ErrNoMove is returned when play cannot continue because no block can move.
var ErrNoMove = errors.New("no move possible")

func (u *Service) log() *slog.Logger {
	if u.Logger == nil {
		return slog.Default()
	}
	return u.Logger
}

// Stabilize settles b in place.
func (u *Service) Stabilize(ctx context.Context, b *board.Board, p domain.Progress) domain.Progress {
	return engine.Stabilize(b, p)
}

func (u *Service) BestMove(ctx context.Context, b *board.Board, p domain.Progress) (domain.Plan, bool, ports.Stats, error) {
	if u.Finder == nil {
		return domain.Plan{}, false, ports.Stats{}, errNotConfigured
	}
	plan, ok, st, err := u.Finder.BestMove(ctx, b, p)
	u.log().Debug("best move", "found", ok, "nodes", st.Nodes, "dur", st.Duration)
	return plan, ok, st, err
}

func (u *Service) TopMoves(ctx context.Context, b *board.Board, batches []domain.FillBatch, t domain.Target, p domain.Progress) (domain.Plan, bool, ports.Stats, error) {
	if u.Planner == nil {
		return domain.Plan{}, false, ports.Stats{}, errNotConfigured
	}
	if u.MaxMoves > 0 && t.MaxMoves > u.MaxMoves {
		return domain.Plan{}, false, ports.Stats{}, fmt.Errorf("%w: %d > %d", ErrBudgetTooLarge, t.MaxMoves, u.MaxMoves)
	}
	plan, ok, st, err := u.Planner.TopMoves(ctx, b, batches, t, p)
	u.log().Debug("top moves",
		"found", ok,
		"moves", len(plan.Moves),
		"min_score", t.MinScore,
		"max_moves", t.MaxMoves,
		"nodes", st.Nodes,
		"dur", st.Duration,
	)
	return plan, ok, st, err
}

func (u *Service) Generate(ctx context.Context, seed int64, dim domain.Dimension, level, count int) ([]domain.FillBatch, ports.Stats, error) {
	if u.Generator == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Generator.Generate(ctx, seed, dim, level, count)
}

func (u *Service) Validate(ctx context.Context, b *board.Board) (bool, []domain.Position, error) {
	if u.Validator == nil {
		return false, nil, errNotConfigured
	}
	return u.Validator.Validate(ctx, b)
}

func (u *Service) ValidateBatch(ctx context.Context, dim domain.Dimension, batch domain.FillBatch) (bool, []domain.Position, error) {
	if u.Validator == nil {
		return false, nil, errNotConfigured
	}
	return u.Validator.ValidateBatch(ctx, dim, batch)
}

// ValidateBatches checks every batch and reports the first bad one.
func (u *Service) ValidateBatches(ctx context.Context, dim domain.Dimension, batches []domain.FillBatch) error {
	for i, batch := range batches {
		ok, conf, err := u.ValidateBatch(ctx, dim, batch)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: batch %d at %v", validator.ErrInvalidBatch, i, conf)
		}
	}
	return nil
}

func (u *Service) Hint(ctx context.Context, b *board.Board, p domain.Progress) (domain.Hint, bool, error) {
	if u.Hinter == nil {
		return domain.Hint{}, false, errNotConfigured
	}
	return u.Hinter.Hint(ctx, b, p)
}

// Persistence
func (u *Service) Save(ctx context.Context, s *domain.Scenario) error {
	if u.Storage == nil {
		return errNotConfigured
	}
	return u.Storage.Save(ctx, s)
}
func (u *Service) Load(ctx context.Context, id string) (*domain.Scenario, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.Load(ctx, id)
}
func (u *Service) List(ctx context.Context) ([]domain.ScenarioMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.List(ctx)
}

// ScenarioBoard builds the starting board and fill batches of s, validating
// both.
func (u *Service) ScenarioBoard(ctx context.Context, s *domain.Scenario) (*board.Board, []domain.FillBatch, error) {
	placements := make([]domain.Placement, len(s.Board))
	for i, p := range s.Board {
		placements[i] = p.Placement()
	}
	b, err := validator.NewBoard(s.Dimension, placements)
	if err != nil {
		return nil, nil, err
	}
	batches := domain.Batches(s.Batches)
	if err := u.ValidateBatches(ctx, s.Dimension, batches); err != nil {
		return nil, nil, err
	}
	return b, batches, nil
}

// SolveScenario loads a stored scenario and searches for its top moves.
func (u *Service) SolveScenario(ctx context.Context, id string) (domain.Plan, bool, ports.Stats, error) {
	s, err := u.Load(ctx, id)
	if err != nil {
		return domain.Plan{}, false, ports.Stats{}, err
	}
	b, batches, err := u.ScenarioBoard(ctx, s)
	if err != nil {
		return domain.Plan{}, false, ports.Stats{}, fmt.Errorf("scenario %s: %w", id, err)
	}
	start := s.Start
	if start.Level == 0 {
		start.Level = 1
	}
	return u.TopMoves(ctx, b, batches, s.Target, start)
}

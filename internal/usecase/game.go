package usecase

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"

	"svw.info/blockfall/internal/board"
	"svw.info/blockfall/internal/domain"
	"svw.info/blockfall/internal/engine"
	"svw.info/blockfall/internal/generator"
	"svw.info/blockfall/internal/ports"
)

var (
	ErrNoBlock     = errors.New("no block at position")
	ErrIllegalMove = errors.New("block cannot move over that distance")
	ErrGameOver    = errors.New("game over")
)

// TurnRecord is one line of the trace log.
type TurnRecord struct {
	Turn     int              `json:"turn"`
	Batch    domain.BatchSpec `json:"batch,omitempty"`
	Move     *domain.Move     `json:"move,omitempty"`
	Progress domain.Progress  `json:"progress"`
	Over     bool             `json:"over,omitempty"`
}

// GameResult summarizes an automatic game.
type GameResult struct {
	Progress domain.Progress `json:"progress"`
	Moves    []domain.Move   `json:"moves"`
	Turns    int             `json:"turns"`
	Over     bool            `json:"over"`
}

func (u *Service) trace(rec TurnRecord, observers []ports.Tracer) {
	if u.Tracer != nil {
		if err := u.Tracer.Write(rec); err != nil {
			u.log().Warn("trace write failed", "err", err)
		}
	}
	for _, o := range observers {
		if err := o.Write(rec); err != nil {
			u.log().Debug("observer write failed", "err", err)
		}
	}
}

// PlayGreedy plays on an empty board of dimension dim. Each turn inserts the
// next batch and makes the best single move. Play stops when the batches run
// out, the overflow row fills, or no block can move. Every turn is written to
// the service tracer and to observers.
func (u *Service) PlayGreedy(ctx context.Context, dim domain.Dimension, batches []domain.FillBatch, observers ...ports.Tracer) (GameResult, error) {
	if u.Finder == nil {
		return GameResult{}, errNotConfigured
	}
	b := board.New(dim)
	res := GameResult{Progress: domain.StartProgress(), Moves: []domain.Move{}}
	for _, batch := range batches {
		if b.Overflowed() {
			break
		}
		res.Turns++
		res.Progress = engine.InsertBatch(b, batch, res.Progress)
		plan, ok, _, err := u.Finder.BestMove(ctx, b, res.Progress)
		if err != nil {
			return res, err
		}
		if !ok {
			u.trace(TurnRecord{Turn: res.Turns, Batch: batch.Spec(), Progress: res.Progress, Over: b.Overflowed()}, observers)
			break
		}
		m := plan.Moves[0]
		res.Progress = engine.ApplyMove(b, m, res.Progress)
		res.Moves = append(res.Moves, m)
		u.trace(TurnRecord{Turn: res.Turns, Batch: batch.Spec(), Move: &m, Progress: res.Progress, Over: b.Overflowed()}, observers)
	}
	res.Over = b.Overflowed()
	u.log().Info("greedy game finished",
		"turns", res.Turns,
		"moves", len(res.Moves),
		"score", res.Progress.Score,
		"level", res.Progress.Level,
		"over", res.Over,
	)
	return res, nil
}

// Game is an interactive game. Scenario batches fill the bottom row first;
// after that the row is filled at random with blocks that grow with the
// level.
type Game struct {
	board    *board.Board
	progress domain.Progress
	pending  []domain.FillBatch
	rng      *rand.Rand
	turns    int
	tracer   ports.Tracer

	// Logger reports trace failures; nil means slog.Default.
	Logger *slog.Logger
}

// NewGame starts on an empty board. batches is not modified.
func NewGame(dim domain.Dimension, batches []domain.FillBatch, seed int64, tracer ports.Tracer) *Game {
	return &Game{
		board:    board.New(dim),
		progress: domain.StartProgress(),
		pending:  batches,
		rng:      rand.New(rand.NewSource(seed)),
		tracer:   tracer,
	}
}

func (g *Game) Board() *board.Board         { return g.board }
func (g *Game) Progress() domain.Progress   { return g.progress }
func (g *Game) Turns() int                  { return g.turns }
func (g *Game) Over() bool                  { return g.board.Overflowed() }
func (g *Game) Pending() []domain.FillBatch { return g.pending }

func (g *Game) log() *slog.Logger {
	if g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

// NextRow pushes the board up, fills the bottom row and stabilizes.
func (g *Game) NextRow() (domain.FillBatch, error) {
	if g.Over() {
		return nil, ErrGameOver
	}
	var batch domain.FillBatch
	if len(g.pending) > 0 {
		batch, g.pending = g.pending[0], g.pending[1:]
		g.board.InsertBottomRow(batch)
	} else {
		g.board.PushAllBlocksUp()
		maxLen := generator.MaxBlockLength(g.progress.Level, g.board.Dimension().Columns)
		batch = generator.FillBottomRow(g.rng, g.board, maxLen)
	}
	g.progress = engine.Stabilize(g.board, g.progress)
	return batch, nil
}

// Move slides the block covering at over steps cells and stabilizes.
func (g *Game) Move(at domain.Position, steps int) (domain.Move, error) {
	if g.Over() {
		return domain.Move{}, ErrGameOver
	}
	blk := g.board.BlockAt(at)
	if blk == nil {
		return domain.Move{}, ErrNoBlock
	}
	if steps == 0 || !g.board.CanMoveOver(blk, steps) {
		return domain.Move{}, ErrIllegalMove
	}
	from, _ := g.board.LeftmostPositionOf(blk)
	m := domain.Move{Block: blk, From: from, Steps: steps}
	g.progress = engine.ApplyMove(g.board, m, g.progress)
	g.turns++
	if g.tracer != nil {
		if err := g.tracer.Write(TurnRecord{Turn: g.turns, Move: &m, Progress: g.progress, Over: g.Over()}); err != nil {
			g.log().Warn("trace write failed", "turn", g.turns, "err", err)
		}
	}
	return m, nil
}

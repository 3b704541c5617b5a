package validator

import (
	"context"
	"errors"
	"fmt"

	"svw.info/blockfall/internal/board"
	"svw.info/blockfall/internal/domain"
)

var (
	ErrInvalidDimension = errors.New("invalid dimension")
	ErrInvalidBoard     = errors.New("invalid board")
	ErrInvalidBatch     = errors.New("invalid fill batch")
)

type FastValidator struct{}

func New() *FastValidator { return &FastValidator{} }

// Validate checks that every block on b is proper for its dimension and
// occupies exactly one run of Length cells in a single row. It returns the
// cells that break these rules.
func (v *FastValidator) Validate(ctx context.Context, b *board.Board) (bool, []domain.Position, error) {
	dim := b.Dimension()
	if !dim.Valid() {
		return false, nil, fmt.Errorf("%w: %s", ErrInvalidDimension, dim)
	}
	conf := make([]domain.Position, 0, 8)
	seen := make(map[*domain.Block]bool)
	for _, row := range dim.AllRows() {
		var prev *domain.Block
		run := 0
		var runStart domain.Position
		flush := func() {
			if prev != nil && run != prev.Length() {
				conf = append(conf, runStart)
			}
		}
		for col := 1; col <= dim.Columns; col++ {
			p := domain.Pos(row, col)
			blk := b.BlockAt(p)
			if blk == prev && blk != nil {
				run++
				continue
			}
			flush()
			prev, run, runStart = blk, 0, p
			if blk == nil {
				continue
			}
			run = 1
			if !blk.Valid() || !blk.FitsIn(dim) || seen[blk] {
				conf = append(conf, p)
			}
			seen[blk] = true
		}
		flush()
	}
	return len(conf) == 0, conf, nil
}

// ValidateBatch checks a fill batch against an empty bottom row of dim:
// every block is proper, lies in row a within bounds, and neither overlaps
// another nor appears twice.
func (v *FastValidator) ValidateBatch(ctx context.Context, dim domain.Dimension, batch domain.FillBatch) (bool, []domain.Position, error) {
	if !dim.Valid() {
		return false, nil, fmt.Errorf("%w: %s", ErrInvalidDimension, dim)
	}
	conf := make([]domain.Position, 0, 4)
	scratch := board.New(dim)
	for _, p := range batch {
		if p.At.Row != 'a' || !p.Block.Valid() || !scratch.CanAccept(p.Block, p.At) {
			conf = append(conf, p.At)
			continue
		}
		scratch.Place(p.Block, p.At)
	}
	return len(conf) == 0, conf, nil
}

// NewBoard builds a board from placements coming from outside the engine,
// rejecting the first one that cannot be placed.
func NewBoard(dim domain.Dimension, placements []domain.Placement) (*board.Board, error) {
	if !dim.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDimension, dim)
	}
	b := board.New(dim)
	for _, p := range placements {
		if !p.Block.Valid() || !b.CanAccept(p.Block, p.At) {
			return nil, fmt.Errorf("%w: cannot place %v at %s", ErrInvalidBoard, p.Block, p.At)
		}
		b.Place(p.Block, p.At)
	}
	return b, nil
}

package generator

import (
	"context"
	"math"
	"math/rand"
	"time"

	"svw.info/blockfall/internal/board"
	"svw.info/blockfall/internal/domain"
	"svw.info/blockfall/internal/ports"
)

// BatchGenerator creates random fill batches for the bottom row.
type BatchGenerator struct{}

// NewBatchGenerator wires a generator; all randomness comes from the seed
// passed to Generate.
func NewBatchGenerator() *BatchGenerator {
	return &BatchGenerator{}
}

// MaxBlockLength is the longest block generated at level on a board with the
// given number of columns. Longer blocks appear as the level rises; the
// result never exceeds half the columns.
func MaxBlockLength(level, columns int) int {
	div := 2.0
	switch {
	case level <= 3:
		div = 4
	case level <= 6:
		div = 3
	}
	n := max(2, int(math.RoundToEven(float64(columns)/div)))
	return min(n, columns/2)
}

// Generate creates count batches for a board of dimension dim at level. The
// same seed always yields the same batches.
func (g *BatchGenerator) Generate(ctx context.Context, seed int64, dim domain.Dimension, level, count int) ([]domain.FillBatch, ports.Stats, error) {
	start := time.Now()
	rng := rand.New(rand.NewSource(seed))
	maxLen := MaxBlockLength(level, dim.Columns)
	out := make([]domain.FillBatch, 0, count)
	nodes := 0
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, err
		}
		batch := FillBottomRow(rng, board.New(dim), maxLen)
		nodes += len(batch)
		out = append(out, batch)
	}
	return out, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
}

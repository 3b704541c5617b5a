package hint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/blockfall/internal/board"
	"svw.info/blockfall/internal/domain"
	"svw.info/blockfall/internal/solver"
)

func TestHint(t *testing.T) {
	b := board.New(domain.Dimension{Rows: 4, Columns: 6})
	b.Place(domain.NewBlock(3, domain.Ordinary, domain.Red), domain.Pos('a', 1))
	b.Place(domain.NewBlock(2, domain.Ordinary, domain.Red), domain.Pos('a', 5))
	b.Place(domain.NewBlock(1, domain.Ordinary, domain.Red), domain.Pos('b', 1))

	h, ok, err := NewGreedy(solver.NewGreedySolver()).Hint(context.Background(), b, domain.StartProgress())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Move the block at a1 1 cell right for 6 points", h.Message)
	assert.Equal(t, []domain.Position{domain.Pos('a', 1), domain.Pos('a', 2), domain.Pos('a', 3)}, h.Cells)
	assert.Equal(t, 6, h.Result.Score)
}

func TestHintNoMove(t *testing.T) {
	b := board.New(domain.Dimension{Rows: 4, Columns: 6})
	_, ok, err := NewGreedy(solver.NewGreedySolver()).Hint(context.Background(), b, domain.StartProgress())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDistance(t *testing.T) {
	assert.Equal(t, "1 cell left", distance(-1))
	assert.Equal(t, "3 cells right", distance(3))
}

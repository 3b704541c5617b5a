package usecase

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/blockfall/internal/domain"
)

func TestGameMoves(t *testing.T) {
	rec := &recorder{}
	g := NewGame(domain.Dimension{Rows: 4, Columns: 6}, domain.Batches([]domain.BatchSpec{gapBatch()}), 1, rec)

	batch, err := g.NextRow()
	require.NoError(t, err)
	assert.Len(t, batch, 2)
	assert.Empty(t, g.Pending())

	_, err = g.Move(domain.Pos('a', 4), 1)
	assert.ErrorIs(t, err, ErrNoBlock)
	_, err = g.Move(domain.Pos('a', 2), 0)
	assert.ErrorIs(t, err, ErrIllegalMove)
	_, err = g.Move(domain.Pos('a', 2), 2)
	assert.ErrorIs(t, err, ErrIllegalMove)

	m, err := g.Move(domain.Pos('a', 2), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.Pos('a', 1), m.From)
	assert.Equal(t, 1, g.Turns())
	require.Len(t, rec.records, 1)

	// scenario batches are used up, the next row is random
	batch, err = g.NextRow()
	require.NoError(t, err)
	assert.NotEmpty(t, batch)
	assert.False(t, g.Over())
}

func TestGameOver(t *testing.T) {
	one := domain.BatchSpec{{At: domain.Pos('a', 1), Block: block(2)}}
	g := NewGame(domain.Dimension{Rows: 3, Columns: 4}, domain.Batches([]domain.BatchSpec{one, one, one}), 1, nil)

	for i := 0; i < 3; i++ {
		_, err := g.NextRow()
		require.NoError(t, err, "row %d", i)
	}
	assert.True(t, g.Over())

	_, err := g.NextRow()
	assert.ErrorIs(t, err, ErrGameOver)
	_, err = g.Move(domain.Pos('a', 1), 1)
	assert.ErrorIs(t, err, ErrGameOver)
}

type brokenTracer struct{}

func (brokenTracer) Write(v any) error { return errors.New("disk full") }

func TestGameLogsTraceFailure(t *testing.T) {
	var buf bytes.Buffer
	g := NewGame(domain.Dimension{Rows: 4, Columns: 6}, domain.Batches([]domain.BatchSpec{gapBatch()}), 1, brokenTracer{})
	g.Logger = slog.New(slog.NewTextHandler(&buf, nil))

	_, err := g.NextRow()
	require.NoError(t, err)
	_, err = g.Move(domain.Pos('a', 1), 1)
	require.NoError(t, err, "a failing trace does not undo the move")
	assert.Equal(t, 1, g.Turns())
	assert.Contains(t, buf.String(), "trace write failed")
	assert.Contains(t, buf.String(), "disk full")
}

package board

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/blockfall/internal/domain"
)

func ordinary(length int) *domain.Block {
	return domain.NewBlock(length, domain.Ordinary, domain.Yellow)
}

func place(t *testing.T, b *Board, blk *domain.Block, p domain.Position) *domain.Block {
	t.Helper()
	require.True(t, b.CanAccept(blk, p), "cannot place %s at %s", blk, p)
	b.Place(blk, p)
	return blk
}

func TestPlaceAndQuery(t *testing.T) {
	b := New(domain.Dimension{Rows: 5, Columns: 8})
	for length := 1; length <= 4; length++ {
		blk := ordinary(length)
		at := domain.Pos(b.Dimension().RowAt(length), 9-length)
		place(t, b, blk, at)

		left, ok := b.LeftmostPositionOf(blk)
		require.True(t, ok)
		assert.Equal(t, at, left)
		positions := b.PositionsOf(blk)
		require.Len(t, positions, length)
		for i, p := range positions {
			assert.Equal(t, domain.Pos(at.Row, at.Col+i), p)
		}
	}
}

func TestIdentityNotValue(t *testing.T) {
	b := New(domain.Dimension{Rows: 3, Columns: 6})
	first := place(t, b, ordinary(2), domain.Pos('a', 1))
	twin := ordinary(2)

	assert.True(t, b.Contains(first))
	assert.False(t, b.Contains(twin))
	_, ok := b.LeftmostPositionOf(twin)
	assert.False(t, ok)
	assert.False(t, b.CanAccept(first, domain.Pos('a', 4)), "already on board")
	assert.True(t, b.CanAccept(twin, domain.Pos('a', 4)))
}

func TestCanAccept(t *testing.T) {
	b := New(domain.Dimension{Rows: 3, Columns: 6})
	place(t, b, ordinary(2), domain.Pos('a', 3))

	cases := []struct {
		name string
		blk  *domain.Block
		at   domain.Position
		want bool
	}{
		{"free", ordinary(2), domain.Pos('a', 1), true},
		{"overlap", ordinary(2), domain.Pos('a', 2), false},
		{"past right edge", ordinary(2), domain.Pos('b', 6), false},
		{"too long", ordinary(4), domain.Pos('b', 1), false},
		{"off board", ordinary(1), domain.Pos('c', 1), false},
		{"overflow row", ordinary(1), domain.Pos(domain.Overflow, 1), true},
		{"nil", nil, domain.Pos('b', 1), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, b.CanAccept(tc.blk, tc.at))
		})
	}
}

func TestRemoveLeavesOthers(t *testing.T) {
	b := New(domain.Dimension{Rows: 3, Columns: 6})
	x := place(t, b, ordinary(2), domain.Pos('a', 1))
	y := place(t, b, ordinary(2), domain.Pos('a', 3))
	b.Remove(x)
	assert.False(t, b.Contains(x))
	assert.True(t, b.Contains(y))
	assert.True(t, b.IsFreeAt(domain.Pos('a', 1)))
	assert.True(t, b.IsFreeAt(domain.Pos('a', 2)))
}

func TestRowQueries(t *testing.T) {
	b := New(domain.Dimension{Rows: 4, Columns: 6})
	assert.Equal(t, 6, b.LargestGapInRow('a'))
	assert.True(t, b.IsEmptyRow('a'))

	x := place(t, b, ordinary(2), domain.Pos('a', 1))
	y := place(t, b, ordinary(2), domain.Pos('a', 3))
	assert.Equal(t, 2, b.LargestGapInRow('a'))
	assert.False(t, b.IsFullRow('a'))

	z := place(t, b, ordinary(2), domain.Pos('a', 5))
	assert.True(t, b.IsFullRow('a'))
	assert.Equal(t, 0, b.LargestGapInRow('a'))
	assert.Equal(t, []domain.Row{'a'}, b.FullRows())
	assert.Equal(t, []*domain.Block{x, y, z}, b.BlocksInRow('a'))
}

func TestBlocksOrder(t *testing.T) {
	b := New(domain.Dimension{Rows: 4, Columns: 6})
	top := place(t, b, ordinary(1), domain.Pos('b', 1))
	right := place(t, b, ordinary(1), domain.Pos('a', 5))
	left := place(t, b, ordinary(1), domain.Pos('a', 2))
	assert.Equal(t, []*domain.Block{left, right, top}, b.Blocks())

	got := b.Placements()
	require.Len(t, got, 3)
	assert.Equal(t, domain.Pos('a', 2), got[0].At)
	assert.Equal(t, domain.Pos('b', 1), got[2].At)
}

func TestCloneIsIndependent(t *testing.T) {
	b := New(domain.Dimension{Rows: 4, Columns: 6})
	x := place(t, b, ordinary(2), domain.Pos('a', 1))
	before := b.Snapshot()

	c := b.Clone()
	require.True(t, c.Contains(x), "clone shares blocks")
	c.MoveHorizontally(x, 2)
	c.Place(ordinary(1), domain.Pos('b', 1))

	if diff := cmp.Diff(before, b.Snapshot()); diff != "" {
		t.Fatalf("original changed (-before +after):\n%s", diff)
	}
	left, _ := c.LeftmostPositionOf(x)
	assert.Equal(t, domain.Pos('a', 3), left)
}

func TestInsertBottomRow(t *testing.T) {
	b := New(domain.Dimension{Rows: 4, Columns: 6})
	old := place(t, b, ordinary(2), domain.Pos('a', 1))
	fresh := ordinary(1)

	b.InsertBottomRow(domain.FillBatch{{At: domain.Pos('a', 6), Block: fresh}})

	left, _ := b.LeftmostPositionOf(old)
	assert.Equal(t, domain.Pos('b', 1), left)
	left, _ = b.LeftmostPositionOf(fresh)
	assert.Equal(t, domain.Pos('a', 6), left)
	assert.False(t, b.Overflowed())
}

func TestOverflowed(t *testing.T) {
	b := New(domain.Dimension{Rows: 3, Columns: 4})
	place(t, b, ordinary(1), domain.Pos('b', 2))
	assert.False(t, b.Overflowed())
	b.PushAllBlocksUp()
	assert.True(t, b.Overflowed())
	assert.Equal(t, "X", b.Snapshot().Rows[0].Row.String())
}

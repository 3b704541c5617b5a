package board

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/blockfall/internal/domain"
)

func TestLetAllBlocksFallIdempotent(t *testing.T) {
	b := New(domain.Dimension{Rows: 5, Columns: 6})
	low := place(t, b, ordinary(2), domain.Pos('c', 2))
	high := place(t, b, ordinary(3), domain.Pos('d', 1))
	assert.True(t, b.IsAirborne(low))
	assert.False(t, b.IsStable())

	b.LetAllBlocksFall()
	once := b.Snapshot()
	b.LetAllBlocksFall()
	if diff := cmp.Diff(once, b.Snapshot()); diff != "" {
		t.Fatalf("second fall changed the board (-once +twice):\n%s", diff)
	}

	assert.True(t, b.IsStable())
	left, _ := b.LeftmostPositionOf(low)
	assert.Equal(t, domain.Pos('a', 2), left)
	left, _ = b.LeftmostPositionOf(high)
	assert.Equal(t, domain.Pos('b', 1), left)
}

func TestExplode(t *testing.T) {
	cases := []struct {
		name string
		kind domain.BlockType
		want int
	}{
		{"ordinary", domain.Ordinary, 3},
		{"fragile", domain.Fragile, 6},
		{"lone electrified", domain.Electrified, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := New(domain.Dimension{Rows: 3, Columns: 6})
			blk := place(t, b, domain.NewBlock(3, tc.kind, domain.Red), domain.Pos('a', 2))
			assert.Equal(t, tc.want, b.Explode(blk))
			assert.False(t, b.Contains(blk))
		})
	}
}

func TestExplodeFragileLeavesHalves(t *testing.T) {
	b := New(domain.Dimension{Rows: 3, Columns: 8})
	blk := place(t, b, domain.NewBlock(4, domain.Fragile, domain.Green), domain.Pos('a', 3))

	require.Equal(t, 8, b.Explode(blk))
	halves := b.BlocksInRow('a')
	require.Len(t, halves, 2)
	for i, h := range halves {
		assert.Equal(t, 2, h.Length())
		assert.Equal(t, domain.Fragile, h.Type())
		left, _ := b.LeftmostPositionOf(h)
		assert.Equal(t, domain.Pos('a', 3+2*i), left)
	}
}

func TestExplodeFragileLengthOne(t *testing.T) {
	b := New(domain.Dimension{Rows: 3, Columns: 4})
	blk := place(t, b, domain.NewBlock(1, domain.Fragile, domain.Green), domain.Pos('a', 1))

	assert.Equal(t, 2, b.Explode(blk))
	rest := b.BlocksInRow('a')
	require.Len(t, rest, 1)
	assert.Equal(t, domain.Ordinary, rest[0].Type())
	assert.Equal(t, 1, rest[0].Length())
}

func TestExplodeElectrifiedCascade(t *testing.T) {
	b := New(domain.Dimension{Rows: 4, Columns: 4})
	e := place(t, b, domain.NewBlock(2, domain.Electrified, domain.Blue), domain.Pos('a', 1))
	o := place(t, b, ordinary(2), domain.Pos('b', 1))

	assert.Equal(t, 4, b.Explode(e))
	assert.False(t, b.Contains(e))
	assert.False(t, b.Contains(o))
}

func TestExplodeElectrifiedChain(t *testing.T) {
	// e2 is detonated by e1 and passes the cascade on to its own neighbours
	b := New(domain.Dimension{Rows: 5, Columns: 6})
	e1 := place(t, b, domain.NewBlock(2, domain.Electrified, domain.Blue), domain.Pos('a', 1))
	e2 := place(t, b, domain.NewBlock(3, domain.Electrified, domain.Blue), domain.Pos('b', 2))
	top := place(t, b, ordinary(1), domain.Pos('c', 4))
	side := place(t, b, ordinary(1), domain.Pos('a', 4))

	assert.Equal(t, 2+3+1+1, b.Explode(e1))
	for _, blk := range []*domain.Block{e1, e2, top, side} {
		assert.False(t, b.Contains(blk), blk.String())
	}
}

func TestMoves(t *testing.T) {
	b := New(domain.Dimension{Rows: 3, Columns: 6})
	blk := place(t, b, ordinary(2), domain.Pos('a', 3))

	for steps, want := range map[int]bool{-3: false, -2: true, -1: true, 1: true, 2: true, 3: false} {
		assert.Equal(t, want, b.CanMoveOver(blk, steps), "steps %d", steps)
	}
	b.MoveHorizontally(blk, -2)
	left, _ := b.LeftmostPositionOf(blk)
	assert.Equal(t, domain.Pos('a', 1), left)

	place(t, b, ordinary(1), domain.Pos('a', 4))
	assert.True(t, b.CanMoveOver(blk, 1))
	assert.False(t, b.CanMoveOver(blk, 2))
}

func TestPushRowUp(t *testing.T) {
	b := New(domain.Dimension{Rows: 4, Columns: 6})
	x := place(t, b, ordinary(2), domain.Pos('a', 1))
	y := place(t, b, ordinary(3), domain.Pos('a', 4))
	b.PushRowUp('a')
	assert.True(t, b.IsEmptyRow('a'))
	assert.Equal(t, []*domain.Block{x, y}, b.BlocksInRow('b'))
}

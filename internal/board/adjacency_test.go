package board

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"svw.info/blockfall/internal/domain"
)

// tower builds
//
//	c: . . S . . .
//	b: . R R R . .
//	a: P P . Q Q .
func tower(t *testing.T) (b *Board, p, q, r, s *domain.Block) {
	b = New(domain.Dimension{Rows: 4, Columns: 6})
	p = place(t, b, ordinary(2), domain.Pos('a', 1))
	q = place(t, b, ordinary(2), domain.Pos('a', 4))
	r = place(t, b, ordinary(3), domain.Pos('b', 2))
	s = place(t, b, ordinary(1), domain.Pos('c', 3))
	return b, p, q, r, s
}

func TestAdjacentBlocks(t *testing.T) {
	b, p, q, r, s := tower(t)

	assert.Equal(t, []*domain.Block{p, q}, b.AdjacentBlocksBelow(r))
	assert.Equal(t, []*domain.Block{s}, b.AdjacentBlocksAbove(r))
	assert.Equal(t, []*domain.Block{r}, b.AdjacentBlocksAbove(p))
	assert.Empty(t, b.AdjacentBlocksBelow(p))
	assert.Empty(t, b.AdjacentBlocksAbove(s))

	assert.Nil(t, b.AdjacentBlockLeft(p))
	assert.Nil(t, b.AdjacentBlockRight(p))
	assert.Nil(t, b.AdjacentBlockLeft(q))
	extra := place(t, b, ordinary(1), domain.Pos('a', 3))
	assert.Same(t, extra, b.AdjacentBlockRight(p))
	assert.Same(t, extra, b.AdjacentBlockLeft(q))
}

func TestSupportGraph(t *testing.T) {
	b, p, q, _, s := tower(t)

	want := []domain.Position{domain.Pos('a', 1), domain.Pos('a', 4), domain.Pos('b', 2)}
	if diff := cmp.Diff(want, b.SupportingBlocks(s)); diff != "" {
		t.Fatalf("supporting mismatch (-want +got):\n%s", diff)
	}
	want = []domain.Position{domain.Pos('b', 2), domain.Pos('c', 3)}
	if diff := cmp.Diff(want, b.SupportedBlocks(p)); diff != "" {
		t.Fatalf("supported mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, b.SupportedBlocks(p), b.SupportedBlocks(q))
	assert.Empty(t, b.SupportingBlocks(p))
	assert.Empty(t, b.SupportedBlocks(s))
}

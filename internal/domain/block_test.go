package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	for length := 1; length <= 20; length++ {
		first, second := NewBlock(length, Fragile, Cyan).Split()
		if first.Length()+second.Length() != length {
			t.Fatalf("split %d: parts %d+%d", length, first.Length(), second.Length())
		}
		assert.GreaterOrEqual(t, first.Length(), second.Length())
		for _, part := range []*Block{first, second} {
			want := Fragile
			if part.Length()%2 == 1 {
				want = Ordinary
			}
			assert.Equal(t, want, part.Type(), "length %d part %d", length, part.Length())
			assert.Equal(t, Cyan, part.Color())
		}
	}
}

func TestBlockValidity(t *testing.T) {
	d := Dimension{Rows: 5, Columns: 7}
	assert.True(t, NewBlock(3, Ordinary, Black).FitsIn(d))
	assert.False(t, NewBlock(4, Ordinary, Black).FitsIn(d))
	assert.False(t, NewBlock(0, Ordinary, Black).Valid())
	assert.False(t, NewBlock(1, BlockType(9), Black).Valid())
	assert.False(t, NewBlock(1, Ordinary, Color(40)).Valid())
	var nilBlock *Block
	assert.False(t, nilBlock.Valid())
}

func TestBlockIdentity(t *testing.T) {
	spec := BlockSpec{Length: 2}
	a, b := spec.Block(), spec.Block()
	assert.NotSame(t, a, b)
	assert.Equal(t, a.Spec(), b.Spec())
	assert.Equal(t, Ordinary, a.Type())
	assert.Equal(t, Black, a.Color())
}

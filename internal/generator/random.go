package generator

import (
	"math/rand"

	"svw.info/blockfall/internal/board"
	"svw.info/blockfall/internal/domain"
)

// RandomColor picks one of the proper colors.
func RandomColor(rng *rand.Rand) domain.Color {
	return domain.AllColors[rng.Intn(len(domain.AllColors))]
}

// RandomBlock returns a block of length 1..maxLen. Four out of five blocks
// are ordinary, three in twenty electrified, one in twenty fragile. A block
// of length 1 is always ordinary.
func RandomBlock(rng *rand.Rand, maxLen int) *domain.Block {
	length := rng.Intn(maxLen) + 1
	n := 20
	if length == 1 {
		n = 16
	}
	draw := rng.Intn(n) + 1
	kind := domain.Ordinary
	switch {
	case draw == 20:
		kind = domain.Fragile
	case draw > 16:
		kind = domain.Electrified
	}
	return domain.NewBlock(length, kind, RandomColor(rng))
}

// RandomPositionFor tries the columns of row in random order and returns the
// first position where b accepts block.
func RandomPositionFor(rng *rand.Rand, b *board.Board, block *domain.Block, row domain.Row) (domain.Position, bool) {
	for _, i := range rng.Perm(b.Dimension().Columns) {
		p := domain.Pos(row, i+1)
		if b.CanAccept(block, p) {
			return p, true
		}
	}
	return domain.Position{}, false
}

// FillBottomRow adds random blocks to the empty bottom row of b until the
// next block has no room or would leave no free cell. The placements are
// returned in the order they were made.
func FillBottomRow(rng *rand.Rand, b *board.Board, maxLen int) domain.FillBatch {
	columns := b.Dimension().Columns
	var batch domain.FillBatch
	filled := 0
	for {
		blk := RandomBlock(rng, maxLen)
		p, ok := RandomPositionFor(rng, b, blk, 'a')
		if !ok || filled+blk.Length() >= columns {
			return batch
		}
		b.Place(blk, p)
		filled += blk.Length()
		batch = append(batch, domain.Placement{At: p, Block: blk})
	}
}

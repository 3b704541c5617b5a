package board

import (
	"slices"

	"svw.info/blockfall/internal/domain"
)

// AdjacentBlockLeft returns the block touching block's left end, or nil.
func (b *Board) AdjacentBlockLeft(block *domain.Block) *domain.Block {
	left, ok := b.LeftmostPositionOf(block)
	if !ok {
		return nil
	}
	p, ok := b.dim.Left(left, 1)
	if !ok {
		return nil
	}
	return b.BlockAt(p)
}

// AdjacentBlockRight returns the block touching block's right end, or nil.
func (b *Board) AdjacentBlockRight(block *domain.Block) *domain.Block {
	left, ok := b.LeftmostPositionOf(block)
	if !ok {
		return nil
	}
	p, ok := b.dim.Right(left, block.Length())
	if !ok {
		return nil
	}
	return b.BlockAt(p)
}

// AdjacentBlocksAbove lists, left to right, every block sharing part of its
// bottom edge with block's top edge.
func (b *Board) AdjacentBlocksAbove(block *domain.Block) []*domain.Block {
	return b.adjacentRun(block, b.dim.Up)
}

// AdjacentBlocksBelow lists, left to right, every block sharing part of its
// top edge with block's bottom edge.
func (b *Board) AdjacentBlocksBelow(block *domain.Block) []*domain.Block {
	return b.adjacentRun(block, b.dim.Down)
}

// adjacentRun walks the row next to block (as chosen by vertical) along
// block's span. On hitting a neighbour it jumps past the rest of that
// neighbour so a block overlapping several cells is listed once.
func (b *Board) adjacentRun(block *domain.Block, vertical func(domain.Position, int) (domain.Position, bool)) []*domain.Block {
	left, ok := b.LeftmostPositionOf(block)
	if !ok {
		return nil
	}
	var out []*domain.Block
	pos, ok := vertical(left, 1)
	remaining := block.Length()
	for ok && remaining > 0 {
		n := 1
		if other := b.BlockAt(pos); other != nil {
			out = append(out, other)
			n = other.Length() - (pos.Col - b.leftmostAt(pos).Col)
		}
		remaining -= n
		pos, ok = b.dim.Right(pos, n)
	}
	return out
}

// leftmostAt walks left from an occupied cell to the first cell of the same
// block.
func (b *Board) leftmostAt(p domain.Position) domain.Position {
	blk := b.BlockAt(p)
	for {
		q, ok := b.dim.Left(p, 1)
		if !ok || b.BlockAt(q) != blk {
			return p
		}
		p = q
	}
}

// SupportingBlocks returns the leftmost positions of all blocks that hold
// block up, directly or through other blocks, sorted ascending.
func (b *Board) SupportingBlocks(block *domain.Block) []domain.Position {
	seen := map[*domain.Block]bool{block: true}
	pending := []*domain.Block{block}
	var out []domain.Position
	for len(pending) > 0 {
		cur := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if cur != block {
			left, _ := b.LeftmostPositionOf(cur)
			out = append(out, left)
		}
		for _, below := range b.AdjacentBlocksBelow(cur) {
			if !seen[below] {
				seen[below] = true
				pending = append(pending, below)
			}
		}
	}
	slices.SortFunc(out, domain.Position.Compare)
	return out
}

// SupportedBlocks returns the leftmost positions of all blocks resting on
// block, directly or through other blocks, sorted ascending.
func (b *Board) SupportedBlocks(block *domain.Block) []domain.Position {
	found := make(map[domain.Position]struct{})
	b.collectSupported(block, map[*domain.Block]bool{}, found)
	out := make([]domain.Position, 0, len(found))
	for p := range found {
		out = append(out, p)
	}
	slices.SortFunc(out, domain.Position.Compare)
	return out
}

func (b *Board) collectSupported(block *domain.Block, visited map[*domain.Block]bool, found map[domain.Position]struct{}) {
	visited[block] = true
	left, ok := b.LeftmostPositionOf(block)
	if !ok || left.Row == domain.Overflow {
		return
	}
	for _, above := range b.AdjacentBlocksAbove(block) {
		if visited[above] {
			continue
		}
		p, _ := b.LeftmostPositionOf(above)
		found[p] = struct{}{}
		b.collectSupported(above, visited, found)
	}
}

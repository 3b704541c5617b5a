package board

import "svw.info/blockfall/internal/domain"

// IsAirborne reports whether every cell below block exists and is free.
// A block in the bottom row rests on the floor.
func (b *Board) IsAirborne(block *domain.Block) bool {
	for _, p := range b.PositionsOf(block) {
		below, ok := b.dim.Down(p, 1)
		if !ok || !b.IsFreeAt(below) {
			return false
		}
	}
	return true
}

// LetFall drops an airborne block to the lowest row it can reach.
func (b *Board) LetFall(block *domain.Block) {
	if !b.IsAirborne(block) {
		return
	}
	pos, _ := b.LeftmostPositionOf(block)
	b.Remove(block)
	next, ok := b.dim.Down(pos, 1)
	for ok && b.CanAccept(block, next) {
		pos = next
		next, ok = b.dim.Down(next, 1)
	}
	b.Place(block, pos)
}

// LetAllBlocksFall settles the board in one bottom-up sweep. Row b is the
// first row that can hold an airborne block; lower rows are final before
// upper rows are handled.
func (b *Board) LetAllBlocksFall() {
	for n := 2; n <= b.dim.Rows; n++ {
		for _, blk := range b.BlocksInRow(b.dim.RowAt(n)) {
			b.LetFall(blk)
		}
	}
}

// IsStable reports whether no block on the board is airborne.
func (b *Board) IsStable() bool {
	for _, blk := range b.Blocks() {
		if b.IsAirborne(blk) {
			return false
		}
	}
	return true
}

// Explode detonates block and returns the score it produces.
//
// An ordinary block is removed and scores its length. A fragile block is
// replaced by its two split halves and scores twice its length; the halves do
// not explode. An electrified block is removed and scores its length plus the
// explosions of the blocks directly below it, then those directly above it,
// each taken left to right and skipped if an earlier explosion already
// removed it.
func (b *Board) Explode(block *domain.Block) int {
	switch block.Type() {
	case domain.Fragile:
		pos, ok := b.LeftmostPositionOf(block)
		if !ok {
			return 0
		}
		b.Remove(block)
		first, second := block.Split()
		for _, part := range []*domain.Block{first, second} {
			if part.Length() == 0 {
				continue
			}
			b.Place(part, pos)
			pos, _ = b.dim.Right(pos, part.Length())
		}
		return 2 * block.Length()
	case domain.Electrified:
		neighbours := append(b.AdjacentBlocksBelow(block), b.AdjacentBlocksAbove(block)...)
		b.Remove(block)
		score := block.Length()
		for _, n := range neighbours {
			if b.Contains(n) {
				score += b.Explode(n)
			}
		}
		return score
	default:
		b.Remove(block)
		return block.Length()
	}
}

// PushRowUp moves every block in row one row up. The row above must be empty
// and row must not be the overflow row.
func (b *Board) PushRowUp(row domain.Row) {
	for _, blk := range b.BlocksInRow(row) {
		left, _ := b.LeftmostPositionOf(blk)
		up, ok := b.dim.Up(left, 1)
		if !ok {
			continue
		}
		b.Remove(blk)
		b.Place(blk, up)
	}
}

// PushAllBlocksUp moves every block one row up, top row first. Blocks pushed
// into the overflow row are the caller's game-over signal.
func (b *Board) PushAllBlocksUp() {
	for n := b.dim.Rows - 1; n >= 1; n-- {
		b.PushRowUp(b.dim.RowAt(n))
	}
}

// CanMoveOver reports whether block can slide steps cells horizontally
// (negative is left): every cell it passes over must be on the board and free.
func (b *Board) CanMoveOver(block *domain.Block, steps int) bool {
	cur, ok := b.LeftmostPositionOf(block)
	if !ok {
		return false
	}
	if steps > 0 {
		cur, _ = b.dim.Right(cur, block.Length()-1)
	}
	for steps != 0 {
		if steps < 0 {
			cur, ok = b.dim.Left(cur, 1)
			steps++
		} else {
			cur, ok = b.dim.Right(cur, 1)
			steps--
		}
		if !ok || !b.IsFreeAt(cur) {
			return false
		}
	}
	return true
}

// MoveHorizontally slides block over steps cells. The caller must have
// checked CanMoveOver.
func (b *Board) MoveHorizontally(block *domain.Block, steps int) {
	left, ok := b.LeftmostPositionOf(block)
	if !ok {
		return
	}
	var to domain.Position
	if steps < 0 {
		to, ok = b.dim.Left(left, -steps)
	} else {
		to, ok = b.dim.Right(left, steps)
	}
	if !ok {
		return
	}
	b.Remove(block)
	b.Place(block, to)
}

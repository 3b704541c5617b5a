// Package board stores which block occupies which cell and implements the
// physics acting on those blocks: gravity, adjacency, explosions and
// horizontal moves.
//
// Mutators assume their preconditions hold (see CanAccept and CanMoveOver);
// they do not re-check them.
package board

import (
	"github.com/kamstrup/intmap"

	"svw.info/blockfall/internal/domain"
)

// cellKey is the row-major index of a cell: (rowNumber-1)*columns + (col-1).
type cellKey uint32

// Board maps cells to the block occupying them. A block of length L appears
// under L consecutive keys of one row.
type Board struct {
	dim   domain.Dimension
	cells *intmap.Map[cellKey, *domain.Block]
}

// New returns an empty board.
func New(dim domain.Dimension) *Board {
	return &Board{
		dim:   dim,
		cells: intmap.New[cellKey, *domain.Block](dim.Rows * dim.Columns),
	}
}

func (b *Board) Dimension() domain.Dimension { return b.dim }

func (b *Board) key(p domain.Position) cellKey {
	return cellKey((b.dim.RowNumber(p.Row)-1)*b.dim.Columns + p.Col - 1)
}

// Clone copies the occupancy of every cell. Blocks are shared, since they
// are immutable; the copy can be mutated without affecting b.
func (b *Board) Clone() *Board {
	out := &Board{
		dim:   b.dim,
		cells: intmap.New[cellKey, *domain.Block](b.cells.Len()),
	}
	for n := 1; n <= b.dim.Rows; n++ {
		row := b.dim.RowAt(n)
		for col := 1; col <= b.dim.Columns; col++ {
			k := b.key(domain.Pos(row, col))
			if blk, ok := b.cells.Get(k); ok {
				out.cells.Put(k, blk)
			}
		}
	}
	return out
}

// BlockAt returns the block at p, or nil when p is free or off the board.
func (b *Board) BlockAt(p domain.Position) *domain.Block {
	if !b.dim.Contains(p) {
		return nil
	}
	blk, _ := b.cells.Get(b.key(p))
	return blk
}

// IsFreeAt reports whether p is on the board and unoccupied.
func (b *Board) IsFreeAt(p domain.Position) bool {
	return b.dim.Contains(p) && b.BlockAt(p) == nil
}

// LeftmostPositionOf scans the board row by row from a1 and returns the first
// cell holding exactly this block.
func (b *Board) LeftmostPositionOf(block *domain.Block) (domain.Position, bool) {
	for n := 1; n <= b.dim.Rows; n++ {
		row := b.dim.RowAt(n)
		for col := 1; col <= b.dim.Columns; {
			cur := b.BlockAt(domain.Pos(row, col))
			switch {
			case cur == nil:
				col++
			case cur == block:
				return domain.Pos(row, col), true
			default:
				col += cur.Length()
			}
		}
	}
	return domain.Position{}, false
}

// PositionsOf lists the cells occupied by block from left to right, or nil
// when the block is not on the board.
func (b *Board) PositionsOf(block *domain.Block) []domain.Position {
	left, ok := b.LeftmostPositionOf(block)
	if !ok {
		return nil
	}
	out := make([]domain.Position, 0, block.Length())
	for i := 0; i < block.Length(); i++ {
		p, ok := b.dim.Right(left, i)
		if !ok {
			break
		}
		out = append(out, p)
	}
	return out
}

// Contains reports whether this very block is on the board.
func (b *Board) Contains(block *domain.Block) bool {
	_, ok := b.LeftmostPositionOf(block)
	return ok
}

// CanAccept reports whether block may be placed with its leftmost cell at p:
// it fits the dimension, is not on the board yet, and every cell it would
// cover is on the board and free.
func (b *Board) CanAccept(block *domain.Block, p domain.Position) bool {
	if block == nil || !block.FitsIn(b.dim) || !b.dim.Contains(p) {
		return false
	}
	if b.Contains(block) {
		return false
	}
	for i := 0; i < block.Length(); i++ {
		q, ok := b.dim.Right(p, i)
		if !ok || !b.IsFreeAt(q) {
			return false
		}
	}
	return true
}

// Place writes block into the cells p, p+1, ..., p+L-1. The caller must have
// checked CanAccept.
func (b *Board) Place(block *domain.Block, p domain.Position) {
	for i := 0; i < block.Length(); i++ {
		q, ok := b.dim.Right(p, i)
		if !ok {
			return
		}
		b.cells.Put(b.key(q), block)
	}
}

// Remove deletes block from every cell it occupies. Other blocks stay put.
func (b *Board) Remove(block *domain.Block) {
	for _, p := range b.PositionsOf(block) {
		b.cells.Del(b.key(p))
	}
}

// InsertBottomRow pushes every block up one row and installs the batch in
// the freed bottom row. The overflow row must be empty beforehand.
func (b *Board) InsertBottomRow(batch domain.FillBatch) {
	b.PushAllBlocksUp()
	for _, p := range batch {
		b.Place(p.Block, p.At)
	}
}

// Placements lists every block with its leftmost position, bottom-up.
func (b *Board) Placements() []domain.Placement {
	blocks := b.Blocks()
	out := make([]domain.Placement, 0, len(blocks))
	for _, blk := range blocks {
		left, _ := b.LeftmostPositionOf(blk)
		out = append(out, domain.Placement{At: left, Block: blk})
	}
	return out
}

// Overflowed reports whether any block sits in the overflow row, which ends
// the game.
func (b *Board) Overflowed() bool {
	return !b.IsEmptyRow(domain.Overflow)
}

package board

import "svw.info/blockfall/internal/domain"

// BlocksInRow lists each block in row once, left to right.
func (b *Board) BlocksInRow(row domain.Row) []*domain.Block {
	var out []*domain.Block
	for col := 1; col <= b.dim.Columns; {
		blk := b.BlockAt(domain.Pos(row, col))
		if blk == nil {
			col++
			continue
		}
		out = append(out, blk)
		col += blk.Length()
	}
	return out
}

func (b *Board) IsEmptyRow(row domain.Row) bool {
	for col := 1; col <= b.dim.Columns; col++ {
		if b.BlockAt(domain.Pos(row, col)) != nil {
			return false
		}
	}
	return true
}

// IsFullRow reports whether row has no free cell.
func (b *Board) IsFullRow(row domain.Row) bool {
	for col := 1; col <= b.dim.Columns; {
		blk := b.BlockAt(domain.Pos(row, col))
		if blk == nil {
			return false
		}
		col += blk.Length()
	}
	return true
}

// FullRows lists the full rows bottom-up.
func (b *Board) FullRows() []domain.Row {
	var out []domain.Row
	for _, row := range b.dim.AllRows() {
		if b.IsFullRow(row) {
			out = append(out, row)
		}
	}
	return out
}

// Blocks lists every block on the board once, row by row from the bottom,
// left to right within a row.
func (b *Board) Blocks() []*domain.Block {
	var out []*domain.Block
	for _, row := range b.dim.AllRows() {
		out = append(out, b.BlocksInRow(row)...)
	}
	return out
}

// LargestGapInRow returns the length of the longest run of free cells in row.
func (b *Board) LargestGapInRow(row domain.Row) int {
	largest, current := 0, 0
	for col := 1; col <= b.dim.Columns; {
		blk := b.BlockAt(domain.Pos(row, col))
		if blk == nil {
			current++
			col++
			continue
		}
		largest = max(largest, current)
		current = 0
		col += blk.Length()
	}
	return max(largest, current)
}

// CellView is one cell of a Snapshot.
type CellView struct {
	Empty  bool             `json:"empty"`
	Start  bool             `json:"start,omitempty"`
	Symbol string           `json:"symbol,omitempty"`
	Type   domain.BlockType `json:"type,omitempty"`
	Color  domain.Color     `json:"color,omitempty"`
	Length int              `json:"length,omitempty"`
}

type RowView struct {
	Row   domain.Row `json:"row"`
	Cells []CellView `json:"cells"`
}

// Snapshot is a read-only, render-ready copy of the board, top row first.
type Snapshot struct {
	Dimension domain.Dimension `json:"dimension"`
	Rows      []RowView        `json:"rows"`
}

func (b *Board) Snapshot() Snapshot {
	s := Snapshot{Dimension: b.dim, Rows: make([]RowView, 0, b.dim.Rows)}
	for n := b.dim.Rows; n >= 1; n-- {
		row := b.dim.RowAt(n)
		rv := RowView{Row: row, Cells: make([]CellView, b.dim.Columns)}
		var prev *domain.Block
		for col := 1; col <= b.dim.Columns; col++ {
			blk := b.BlockAt(domain.Pos(row, col))
			if blk == nil {
				rv.Cells[col-1] = CellView{Empty: true}
				prev = nil
				continue
			}
			rv.Cells[col-1] = CellView{
				Start:  blk != prev,
				Symbol: string(blk.Symbol()),
				Type:   blk.Type(),
				Color:  blk.Color(),
				Length: blk.Length(),
			}
			prev = blk
		}
		s.Rows = append(s.Rows, rv)
	}
	return s
}

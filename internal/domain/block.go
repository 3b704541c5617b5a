package domain

import (
	"encoding/json"
	"fmt"
)

// Block is an immutable horizontal run of cells. Boards track blocks by
// pointer: two blocks with equal fields are still different blocks.
type Block struct {
	length int
	kind   BlockType
	color  Color
}

// NewBlock does not check its arguments; see Valid and FitsIn.
func NewBlock(length int, kind BlockType, color Color) *Block {
	return &Block{length: length, kind: kind, color: color}
}

func (b *Block) Length() int     { return b.length }
func (b *Block) Type() BlockType { return b.kind }
func (b *Block) Color() Color    { return b.color }

// Valid reports whether the block has a positive length, a known type and a
// known color.
func (b *Block) Valid() bool {
	return b != nil && b.length > 0 && b.kind.Valid() && b.color.Valid()
}

// FitsIn reports whether the block may be placed on a board of the given
// dimension: it may not be longer than half the number of columns.
func (b *Block) FitsIn(d Dimension) bool {
	return b.length <= d.Columns/2
}

// Split returns the two halves a fragile block breaks into. The first half
// takes the extra cell of an odd length. A half of odd length is ordinary,
// a half of even length is fragile again.
func (b *Block) Split() (*Block, *Block) {
	first := (b.length + 1) / 2
	second := b.length / 2
	return NewBlock(first, splitType(first), b.color), NewBlock(second, splitType(second), b.color)
}

func splitType(length int) BlockType {
	if length%2 == 1 {
		return Ordinary
	}
	return Fragile
}

// Symbol is the glyph drawn in every cell of the block.
func (b *Block) Symbol() rune {
	switch b.kind {
	case Electrified:
		return '▣'
	case Fragile:
		return '▤'
	default:
		return '▢'
	}
}

func (b *Block) String() string {
	return fmt.Sprintf("%s %s/%d", b.color, b.kind, b.length)
}

// Spec returns the block's fields as a plain value.
func (b *Block) Spec() BlockSpec {
	return BlockSpec{Length: b.length, Type: b.kind, Color: b.color}
}

func (b *Block) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Spec())
}

// BlockSpec is the wire and file form of a block. Every call to Block
// creates a new, distinct block.
type BlockSpec struct {
	Length int       `json:"length" yaml:"length"`
	Type   BlockType `json:"type" yaml:"type"`
	Color  Color     `json:"color" yaml:"color"`
}

// Normalized fills in the default type and color.
func (s BlockSpec) Normalized() BlockSpec {
	if s.Type == 0 {
		s.Type = Ordinary
	}
	if s.Color == 0 {
		s.Color = Black
	}
	return s
}

func (s BlockSpec) Block() *Block {
	n := s.Normalized()
	return NewBlock(n.Length, n.Type, n.Color)
}

package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Row identifies a board row: 'a' is the bottom row, letters ascend upward,
// and Overflow sits above every lettered row.
type Row byte

// Overflow is the staging row above the playing field. A block left in it
// ends the game.
const Overflow Row = 'X'

// MaxRows is the largest row count a Dimension can address (26 letters plus X).
const MaxRows = 27

// MaxColumns bounds the board width so every cell has its own index.
const MaxColumns = 1024

func (r Row) String() string { return string(rune(r)) }

func (r Row) valid() bool {
	return r == Overflow || (r >= 'a' && r <= 'z')
}

// rank orders rows bottom-up with Overflow on top, independent of any dimension.
func (r Row) rank() int {
	if r == Overflow {
		return MaxRows
	}
	return int(r-'a') + 1
}

// Dimension is the size of a board. Rows includes the overflow row.
type Dimension struct {
	Rows    int `json:"rows" yaml:"rows"`
	Columns int `json:"columns" yaml:"columns"`
}

func (d Dimension) Valid() bool {
	return d.Rows >= 2 && d.Rows <= MaxRows && d.Columns >= 2 && d.Columns <= MaxColumns
}

// RowNumber converts a row to its 1-based ordinal; Overflow maps to d.Rows.
func (d Dimension) RowNumber(r Row) int {
	if r == Overflow {
		return d.Rows
	}
	return int(r-'a') + 1
}

// RowAt is the inverse of RowNumber.
func (d Dimension) RowAt(n int) Row {
	if n == d.Rows {
		return Overflow
	}
	return Row('a' + n - 1)
}

// AllRows lists the rows bottom-up, ending with Overflow.
func (d Dimension) AllRows() []Row {
	rows := make([]Row, 0, d.Rows)
	for n := 1; n <= d.Rows; n++ {
		rows = append(rows, d.RowAt(n))
	}
	return rows
}

// Contains reports whether p lies within the boundaries of the dimension.
func (d Dimension) Contains(p Position) bool {
	if p.Col < 1 || p.Col > d.Columns || !p.Row.valid() {
		return false
	}
	if p.Row == Overflow {
		return true
	}
	return d.RowNumber(p.Row) <= d.Rows-1
}

func (d Dimension) Left(p Position, n int) (Position, bool) {
	if p.Col-n < 1 {
		return Position{}, false
	}
	return Position{Row: p.Row, Col: p.Col - n}, true
}

func (d Dimension) Right(p Position, n int) (Position, bool) {
	if p.Col+n > d.Columns {
		return Position{}, false
	}
	return Position{Row: p.Row, Col: p.Col + n}, true
}

// Up steps n rows upward; the top lettered row is adjacent to Overflow.
func (d Dimension) Up(p Position, n int) (Position, bool) {
	num := d.RowNumber(p.Row) + n
	if num > d.Rows {
		return Position{}, false
	}
	return Position{Row: d.RowAt(num), Col: p.Col}, true
}

// Down steps n rows downward; Overflow is adjacent to the top lettered row.
func (d Dimension) Down(p Position, n int) (Position, bool) {
	num := d.RowNumber(p.Row) - n
	if num < 1 {
		return Position{}, false
	}
	return Position{Row: d.RowAt(num), Col: p.Col}, true
}

func (d Dimension) String() string {
	return fmt.Sprintf("%dx%d", d.Rows, d.Columns)
}

// Position is a cell on a board. Its text form is the row letter followed by
// the column, e.g. "a3" or "X10".
type Position struct {
	Row Row
	Col int
}

// Pos is shorthand for Position{Row: row, Col: col}.
func Pos(row Row, col int) Position {
	return Position{Row: row, Col: col}
}

// Compare orders positions by row (bottom-up, Overflow last), then column.
func (p Position) Compare(o Position) int {
	if pr, or := p.Row.rank(), o.Row.rank(); pr != or {
		if pr < or {
			return -1
		}
		return 1
	}
	switch {
	case p.Col < o.Col:
		return -1
	case p.Col > o.Col:
		return 1
	}
	return 0
}

func (p Position) Less(o Position) bool { return p.Compare(o) < 0 }

func (p Position) String() string {
	return p.Row.String() + strconv.Itoa(p.Col)
}

var ErrInvalidPosition = errors.New("invalid position")

// ParsePosition reads "a3", "a,3" or "X 10".
func ParsePosition(s string) (Position, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
	row := Row(s[0])
	if !row.valid() {
		return Position{}, fmt.Errorf("%w: bad row in %q", ErrInvalidPosition, s)
	}
	rest := strings.TrimLeft(s[1:], ", ")
	col, err := strconv.Atoi(rest)
	if err != nil || col <= 0 {
		return Position{}, fmt.Errorf("%w: bad column in %q", ErrInvalidPosition, s)
	}
	return Position{Row: row, Col: col}, nil
}

func (p Position) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Position) UnmarshalText(b []byte) error {
	v, err := ParsePosition(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (r Row) MarshalText() ([]byte, error) {
	return []byte{byte(r)}, nil
}

func (r *Row) UnmarshalText(b []byte) error {
	if len(b) != 1 || !Row(b[0]).valid() {
		return fmt.Errorf("invalid row %q", b)
	}
	*r = Row(b[0])
	return nil
}

package domain

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDimensionRows(t *testing.T) {
	d := Dimension{Rows: 4, Columns: 6}
	if diff := cmp.Diff([]Row{'a', 'b', 'c', Overflow}, d.AllRows()); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 4, d.RowNumber(Overflow))
	assert.Equal(t, Overflow, d.RowAt(4))
	assert.Equal(t, Row('c'), d.RowAt(3))
}

func TestDimensionValid(t *testing.T) {
	cases := []struct {
		name string
		d    Dimension
		want bool
	}{
		{"smallest", Dimension{Rows: 2, Columns: 2}, true},
		{"largest", Dimension{Rows: MaxRows, Columns: MaxColumns}, true},
		{"one row", Dimension{Rows: 1, Columns: 6}, false},
		{"too many rows", Dimension{Rows: MaxRows + 1, Columns: 6}, false},
		{"one column", Dimension{Rows: 4, Columns: 1}, false},
		{"too wide", Dimension{Rows: 4, Columns: MaxColumns + 1}, false},
		{"index overflow", Dimension{Rows: MaxRows, Columns: 200_000_000}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.d.Valid())
		})
	}
}

func TestDimensionContains(t *testing.T) {
	d := Dimension{Rows: 4, Columns: 6}
	cases := []struct {
		p    Position
		want bool
	}{
		{Pos('a', 1), true},
		{Pos('c', 6), true},
		{Pos(Overflow, 6), true},
		{Pos('d', 1), false},
		{Pos('a', 0), false},
		{Pos('a', 7), false},
		{Pos('A', 1), false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, d.Contains(tc.p), tc.p.String())
	}
}

func TestDimensionSteps(t *testing.T) {
	d := Dimension{Rows: 4, Columns: 6}

	p, ok := d.Up(Pos('c', 2), 1)
	require.True(t, ok)
	assert.Equal(t, Pos(Overflow, 2), p)

	p, ok = d.Down(Pos(Overflow, 2), 1)
	require.True(t, ok)
	assert.Equal(t, Pos('c', 2), p)

	_, ok = d.Up(Pos(Overflow, 2), 1)
	assert.False(t, ok)
	_, ok = d.Down(Pos('a', 2), 1)
	assert.False(t, ok)
	_, ok = d.Left(Pos('a', 2), 2)
	assert.False(t, ok)
	_, ok = d.Right(Pos('a', 2), 5)
	assert.False(t, ok)

	// steps compose: n steps equal n single steps
	start := Pos('a', 1)
	two, _ := d.Up(start, 2)
	one, _ := d.Up(start, 1)
	oneMore, _ := d.Up(one, 1)
	assert.Equal(t, two, oneMore)
	right, _ := d.Right(start, 4)
	back, _ := d.Left(right, 4)
	assert.Equal(t, start, back)
}

func TestPositionOrder(t *testing.T) {
	got := []Position{Pos(Overflow, 1), Pos('b', 1), Pos('a', 3), Pos('a', 10), Pos('z', 2)}
	slices.SortFunc(got, Position.Compare)
	want := []Position{Pos('a', 3), Pos('a', 10), Pos('b', 1), Pos('z', 2), Pos(Overflow, 1)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, Pos('a', 9).Less(Pos('a', 10)))
}

func TestParsePosition(t *testing.T) {
	cases := []struct {
		in   string
		want Position
		err  bool
	}{
		{"a3", Pos('a', 3), false},
		{"a,3", Pos('a', 3), false},
		{" X 10 ", Pos(Overflow, 10), false},
		{"", Position{}, true},
		{"a", Position{}, true},
		{"3a", Position{}, true},
		{"a0", Position{}, true},
		{"b-1", Position{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParsePosition(tc.in)
			if tc.err {
				assert.ErrorIs(t, err, ErrInvalidPosition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

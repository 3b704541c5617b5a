package domain

import (
	"fmt"
	"strings"
)

// BlockType decides what happens when a block explodes.
type BlockType int

const (
	Ordinary    BlockType = iota + 1 // removed, scores its length
	Electrified                      // removed, detonates neighbours below and above
	Fragile                          // split in two, scores twice its length
)

func (t BlockType) Valid() bool {
	return t >= Ordinary && t <= Fragile
}

func (t BlockType) String() string {
	switch t {
	case Ordinary:
		return "ordinary"
	case Electrified:
		return "electrified"
	case Fragile:
		return "fragile"
	default:
		return fmt.Sprintf("BlockType(%d)", int(t))
	}
}

// ParseBlockType accepts the lower-case names produced by String.
func ParseBlockType(s string) (BlockType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ordinary":
		return Ordinary, nil
	case "electrified":
		return Electrified, nil
	case "fragile":
		return Fragile, nil
	}
	return 0, fmt.Errorf("unknown block type %q", s)
}

func (t BlockType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid block type %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *BlockType) UnmarshalText(b []byte) error {
	v, err := ParseBlockType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Color is the ANSI foreground code used to draw a block.
type Color int

const (
	Black   Color = 30
	Red     Color = 31
	Green   Color = 32
	Yellow  Color = 33
	Blue    Color = 34
	Magenta Color = 35
	Cyan    Color = 36
	White   Color = 37
)

// AllColors lists every proper color in code order.
var AllColors = []Color{Black, Red, Green, Yellow, Blue, Magenta, Cyan, White}

var colorNames = map[Color]string{
	Black:   "black",
	Red:     "red",
	Green:   "green",
	Yellow:  "yellow",
	Blue:    "blue",
	Magenta: "magenta",
	Cyan:    "cyan",
	White:   "white",
}

func (c Color) Valid() bool {
	_, ok := colorNames[c]
	return ok
}

// Name returns the lower-case color name, or "" for an improper color.
func (c Color) Name() string {
	return colorNames[c]
}

func (c Color) String() string {
	if n := c.Name(); n != "" {
		return n
	}
	return fmt.Sprintf("Color(%d)", int(c))
}

func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Black, nil
	}
	for c, n := range colorNames {
		if n == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown color %q", s)
}

func (c Color) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid color %d", int(c))
	}
	return []byte(c.Name()), nil
}

func (c *Color) UnmarshalText(b []byte) error {
	v, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

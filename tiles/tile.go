// Package tiles implements the basic data layer for the planner: tiles,
// count-indexed racks, melds, and the table of played melds.
package tiles

import (
	"fmt"
	"strconv"
)

// Tile is a machine-friendly representation of a Rummikub tile, packed
// into a single byte:
//   - bits 0-1: color (0 = red, 1 = blue, 2 = yellow, 3 = black)
//   - bits 2-5: number (1-13)
//   - 0xFF: the wild/joker tile
type Tile uint8

const (
	ColorRed uint8 = iota
	ColorBlue
	ColorYellow
	ColorBlack
)

const (
	NumColors = 4
	MinNumber = 1
	MaxNumber = 13
)

const (
	colorMask   = 0b0000_0011
	numberMask  = 0b0011_1100
	numberShift = 2
	wildValue   = 0xFF
)

var colorLetters = [NumColors]byte{'r', 'b', 'y', 'k'}

// New creates a tile from a color (0-3) and a number (1-13). Callers
// are expected to pass in-range values; use FromString for untrusted
// input.
func New(color, number uint8) Tile {
	return Tile(number<<numberShift | color)
}

// Wild returns the wild/joker tile.
func Wild() Tile {
	return Tile(wildValue)
}

// IsWild returns whether this is the wild tile.
func (t Tile) IsWild() bool {
	return t == wildValue
}

// Color returns the tile's color; ok is false for the wild tile.
func (t Tile) Color() (color uint8, ok bool) {
	if t.IsWild() {
		return 0, false
	}
	return uint8(t) & colorMask, true
}

// Number returns the tile's number (1-13); ok is false for the wild
// tile.
func (t Tile) Number() (number uint8, ok bool) {
	if t.IsWild() {
		return 0, false
	}
	return (uint8(t) & numberMask) >> numberShift, true
}

// Points returns the point value of the tile. Wilds are worth nothing.
func (t Tile) Points() int {
	n, ok := t.Number()
	if !ok {
		return 0
	}
	return int(n)
}

// String returns the user-visible form of the tile: "r13", "b1", "y7",
// "k9", or "w" for the wild.
func (t Tile) String() string {
	if t.IsWild() {
		return "w"
	}
	c, _ := t.Color()
	n, _ := t.Number()
	return string(colorLetters[c]) + strconv.Itoa(int(n))
}

// FromString parses a tile from its user-visible form.
func FromString(s string) (Tile, error) {
	if s == "w" {
		return Wild(), nil
	}
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid tile string: %s", s)
	}
	color, err := parseColor(s[:1])
	if err != nil {
		return 0, err
	}
	number, err := strconv.Atoi(s[1:])
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", s[1:])
	}
	if number < MinNumber || number > MaxNumber {
		return 0, fmt.Errorf("number must be 1-13, got %d", number)
	}
	return New(color, uint8(number)), nil
}

func parseColor(s string) (uint8, error) {
	switch s {
	case "r":
		return ColorRed, nil
	case "b":
		return ColorBlue, nil
	case "y":
		return ColorYellow, nil
	case "k":
		return ColorBlack, nil
	}
	return 0, fmt.Errorf("invalid color: %s", s)
}

// rackIndex maps a tile to its slot in a Rack's count array. The wild
// goes at 0; real tiles occupy 4..55 (their packed byte value).
func (t Tile) rackIndex() int {
	if t.IsWild() {
		return 0
	}
	return int(t)
}

func tileAt(idx int) Tile {
	if idx == 0 {
		return Wild()
	}
	return Tile(idx)
}

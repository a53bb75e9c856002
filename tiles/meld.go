package tiles

import (
	"fmt"
	"strconv"
	"strings"
)

// MeldKind distinguishes the two legal meld shapes.
type MeldKind uint8

const (
	// Group: same number, different colors.
	Group MeldKind = iota
	// Run: consecutive numbers, same color.
	Run
)

func (k MeldKind) String() string {
	if k == Group {
		return "group"
	}
	return "run"
}

// Meld is an ordered sequence of at least three tiles played together,
// either a group or a run. Tile order is significant: for runs the
// position of a wild determines which number it stands for.
type Meld struct {
	Kind  MeldKind
	Tiles []Tile
}

// NewMeld creates a meld.
func NewMeld(kind MeldKind, tiles []Tile) Meld {
	return Meld{Kind: kind, Tiles: tiles}
}

// Copy returns a deep copy of the meld.
func (m Meld) Copy() Meld {
	t := make([]Tile, len(m.Tiles))
	copy(t, m.Tiles)
	return Meld{Kind: m.Kind, Tiles: t}
}

// Equal compares kind and tile sequence.
func (m Meld) Equal(other Meld) bool {
	if m.Kind != other.Kind || len(m.Tiles) != len(other.Tiles) {
		return false
	}
	for i, t := range m.Tiles {
		if t != other.Tiles[i] {
			return false
		}
	}
	return true
}

// SameTiles reports whether two melds hold the same tile sequence,
// ignoring kind.
func (m Meld) SameTiles(other Meld) bool {
	if len(m.Tiles) != len(other.Tiles) {
		return false
	}
	for i, t := range m.Tiles {
		if t != other.Tiles[i] {
			return false
		}
	}
	return true
}

// String returns a user-visible version of the meld, e.g.
// "[run r1 r2 r3]" or "[group r5 b5 w]".
func (m Meld) String() string {
	parts := make([]string, 0, len(m.Tiles)+1)
	parts = append(parts, m.Kind.String())
	for _, t := range m.Tiles {
		parts = append(parts, t.String())
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// MeldFromString parses a meld from text, auto-detecting its kind.
// Formats:
//   - group: "5 r b k" (number followed by color letters)
//   - run:   "y 6 7 8" (color letter followed by numbers)
//
// A "w" token stands for the wild in either position list.
func MeldFromString(input string) (Meld, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return Meld{}, fmt.Errorf("empty meld string")
	}
	if num, err := strconv.Atoi(fields[0]); err == nil {
		if num >= MinNumber && num <= MaxNumber {
			return GroupFromString(input)
		}
	}
	switch fields[0] {
	case "r", "b", "y", "k":
		return RunFromString(input)
	}
	return Meld{}, fmt.Errorf(
		"invalid meld format: %q; use 'N c1 c2 c3' for group or 'C n1 n2 n3' for run", input)
}

// GroupFromString parses a group meld: "5 r b k".
func GroupFromString(input string) (Meld, error) {
	fields := strings.Fields(input)
	if len(fields) < 4 {
		return Meld{}, fmt.Errorf(
			"group must have at least 4 tokens (number + 3 colors), got %d", len(fields))
	}
	number, err := strconv.Atoi(fields[0])
	if err != nil {
		return Meld{}, fmt.Errorf("invalid number: %s", fields[0])
	}
	if number < MinNumber || number > MaxNumber {
		return Meld{}, fmt.Errorf("number must be 1-13, got %d", number)
	}
	melded := make([]Tile, 0, len(fields)-1)
	for _, tok := range fields[1:] {
		if tok == "w" {
			melded = append(melded, Wild())
			continue
		}
		color, err := parseColor(tok)
		if err != nil {
			return Meld{}, err
		}
		melded = append(melded, New(color, uint8(number)))
	}
	if len(melded) < 3 {
		return Meld{}, fmt.Errorf("group must have at least 3 tiles, got %d", len(melded))
	}
	return NewMeld(Group, melded), nil
}

// RunFromString parses a run meld: "y 6 7 8".
func RunFromString(input string) (Meld, error) {
	fields := strings.Fields(input)
	if len(fields) < 4 {
		return Meld{}, fmt.Errorf(
			"run must have at least 4 tokens (color + 3 numbers), got %d", len(fields))
	}
	if fields[0] == "w" {
		return Meld{}, fmt.Errorf("wild cannot be the starting color of a run")
	}
	color, err := parseColor(fields[0])
	if err != nil {
		return Meld{}, err
	}
	melded := make([]Tile, 0, len(fields)-1)
	for _, tok := range fields[1:] {
		if tok == "w" {
			melded = append(melded, Wild())
			continue
		}
		number, err := strconv.Atoi(tok)
		if err != nil {
			return Meld{}, fmt.Errorf("invalid number: %s", tok)
		}
		if number < MinNumber || number > MaxNumber {
			return Meld{}, fmt.Errorf("number must be 1-13, got %d", number)
		}
		melded = append(melded, New(color, uint8(number)))
	}
	if len(melded) < 3 {
		return Meld{}, fmt.Errorf("run must have at least 3 tiles, got %d", len(melded))
	}
	return NewMeld(Run, melded), nil
}

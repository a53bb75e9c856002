package tiles

import (
	"strings"
)

// numRackSlots covers the packed byte range of real tiles (4..55) plus
// slot 0 for the wild.
const numRackSlots = 56

// Rack is a count-indexed multiset of tiles: a player's hand. The wild
// tile lives at slot 0. Counts are never negative.
type Rack struct {
	counts   [numRackSlots]uint8
	numTiles int
}

// NewRack creates an empty rack.
func NewRack() *Rack {
	return &Rack{}
}

// RackFromString creates a rack from a space-separated list of tile
// strings, e.g. "r1 r2 r3 w".
func RackFromString(s string) (*Rack, error) {
	r := NewRack()
	for _, field := range strings.Fields(s) {
		t, err := FromString(field)
		if err != nil {
			return nil, err
		}
		r.Add(t)
	}
	return r, nil
}

// Add adds one copy of a tile to the rack.
func (r *Rack) Add(t Tile) {
	r.counts[t.rackIndex()]++
	r.numTiles++
}

// Remove removes one copy of a tile from the rack. It returns false if
// the tile is not present; the rack is unchanged in that case.
func (r *Rack) Remove(t Tile) bool {
	idx := t.rackIndex()
	if r.counts[idx] == 0 {
		return false
	}
	r.counts[idx]--
	r.numTiles--
	return true
}

// Count returns how many copies of a tile the rack holds.
func (r *Rack) Count(t Tile) uint8 {
	return r.counts[t.rackIndex()]
}

// NumTiles returns the total tile count.
func (r *Rack) NumTiles() int {
	return r.numTiles
}

// Empty returns whether the rack holds no tiles.
func (r *Rack) Empty() bool {
	return r.numTiles == 0
}

// Copy returns a deep copy of this rack.
func (r *Rack) Copy() *Rack {
	n := &Rack{}
	n.CopyFrom(r)
	return n
}

// CopyFrom copies the other rack's contents into this one.
func (r *Rack) CopyFrom(other *Rack) {
	r.counts = other.counts
	r.numTiles = other.numTiles
}

// Equals compares two racks by contents.
func (r *Rack) Equals(other *Rack) bool {
	return r.counts == other.counts
}

// Each calls f for every tile identity with a nonzero count, in a
// fixed (packed-value) order, wild first.
func (r *Rack) Each(f func(t Tile, count uint8)) {
	for idx, ct := range r.counts {
		if ct > 0 {
			f(tileAt(idx), ct)
		}
	}
}

// TilesOn expands the rack into a flat list of tiles, in a fixed
// order, one entry per copy.
func (r *Rack) TilesOn() []Tile {
	out := make([]Tile, 0, r.numTiles)
	r.Each(func(t Tile, count uint8) {
		for i := uint8(0); i < count; i++ {
			out = append(out, t)
		}
	})
	return out
}

// CanPlay reports whether the rack holds every tile of the meld,
// respecting multiplicity (wilds included).
func (r *Rack) CanPlay(m Meld) bool {
	var need [numRackSlots]uint8
	for _, t := range m.Tiles {
		idx := t.rackIndex()
		need[idx]++
		if need[idx] > r.counts[idx] {
			return false
		}
	}
	return true
}

// Play removes the meld's tiles from the rack. Callers must have
// checked CanPlay first.
func (r *Rack) Play(m Meld) {
	for _, t := range m.Tiles {
		r.Remove(t)
	}
}

// Unplay returns the meld's tiles to the rack, undoing Play.
func (r *Rack) Unplay(m Meld) {
	for _, t := range m.Tiles {
		r.Add(t)
	}
}

// Points returns the total point value of the rack (wilds count zero).
func (r *Rack) Points() int {
	total := 0
	r.Each(func(t Tile, count uint8) {
		total += t.Points() * int(count)
	})
	return total
}

// String returns a user-visible version of this rack.
func (r *Rack) String() string {
	parts := make([]string, 0, r.numTiles)
	r.Each(func(t Tile, count uint8) {
		for i := uint8(0); i < count; i++ {
			parts = append(parts, t.String())
		}
	})
	return strings.Join(parts, " ")
}

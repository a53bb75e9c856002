package tiles

// Table is the ordered sequence of melds currently played. Melds are
// addressed by position; removing a meld shifts later indices, so
// recorded indices are only meaningful against the table state they
// were recorded from.
type Table struct {
	melds []Meld
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{}
}

// Add appends a meld to the table.
func (tb *Table) Add(m Meld) {
	tb.melds = append(tb.melds, m)
}

// Melds returns the melds on the table. Callers must not mutate the
// returned slice.
func (tb *Table) Melds() []Meld {
	return tb.melds
}

// Meld returns the meld at the given index; ok is false if the index
// is stale.
func (tb *Table) Meld(idx int) (Meld, bool) {
	if idx < 0 || idx >= len(tb.melds) {
		return Meld{}, false
	}
	return tb.melds[idx], true
}

// RemoveAt removes and returns the meld at the given index. Later
// melds shift down by one.
func (tb *Table) RemoveAt(idx int) (Meld, bool) {
	if idx < 0 || idx >= len(tb.melds) {
		return Meld{}, false
	}
	m := tb.melds[idx]
	tb.melds = append(tb.melds[:idx], tb.melds[idx+1:]...)
	return m, true
}

// InsertAt inserts a meld at the given index, shifting later melds up.
func (tb *Table) InsertAt(idx int, m Meld) {
	tb.melds = append(tb.melds, Meld{})
	copy(tb.melds[idx+1:], tb.melds[idx:])
	tb.melds[idx] = m
}

// Len returns the number of melds on the table.
func (tb *Table) Len() int {
	return len(tb.melds)
}

// Copy returns a deep copy of the table.
func (tb *Table) Copy() *Table {
	n := &Table{melds: make([]Meld, len(tb.melds))}
	for i, m := range tb.melds {
		n.melds[i] = m.Copy()
	}
	return n
}

// CopyFrom replaces this table's contents with a deep copy of the
// other table's.
func (tb *Table) CopyFrom(other *Table) {
	tb.melds = tb.melds[:0]
	for _, m := range other.melds {
		tb.melds = append(tb.melds, m.Copy())
	}
}

// Equals compares two tables meld-for-meld.
func (tb *Table) Equals(other *Table) bool {
	if len(tb.melds) != len(other.melds) {
		return false
	}
	for i, m := range tb.melds {
		if !m.Equal(other.melds[i]) {
			return false
		}
	}
	return true
}

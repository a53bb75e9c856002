package tiles

import (
	"testing"

	"github.com/matryer/is"
)

func TestMeldFromStringAutoDetect(t *testing.T) {
	is := is.New(t)

	run, err := MeldFromString("y 6 7 8")
	is.NoErr(err)
	is.Equal(run.Kind, Run)
	is.Equal(run.Tiles, []Tile{
		New(ColorYellow, 6), New(ColorYellow, 7), New(ColorYellow, 8),
	})

	group, err := MeldFromString("5 r b k")
	is.NoErr(err)
	is.Equal(group.Kind, Group)
	is.Equal(group.Tiles, []Tile{
		New(ColorRed, 5), New(ColorBlue, 5), New(ColorBlack, 5),
	})
}

func TestMeldFromStringWilds(t *testing.T) {
	is := is.New(t)

	run, err := MeldFromString("r 1 w 3")
	is.NoErr(err)
	is.Equal(run.Tiles[1], Wild())

	group, err := MeldFromString("5 r b w")
	is.NoErr(err)
	is.Equal(group.Tiles[2], Wild())
}

func TestMeldFromStringErrors(t *testing.T) {
	is := is.New(t)
	for _, bad := range []string{
		"",
		"z 1 2 3",
		"5 r b",     // group too short
		"y 6 7",     // run too short
		"14 r b k",  // number out of range
		"y 6 7 14",  // run number out of range
		"w 1 2 3",   // wild as run color
		"5 r b q",   // bad color in group
	} {
		_, err := MeldFromString(bad)
		is.True(err != nil)
	}
}

func TestMeldEqualAndCopy(t *testing.T) {
	is := is.New(t)
	m, err := MeldFromString("r 1 2 3")
	is.NoErr(err)
	cp := m.Copy()
	is.True(m.Equal(cp))
	cp.Tiles[0] = Wild()
	is.True(!m.Equal(cp))

	g, err := MeldFromString("5 r b k")
	is.NoErr(err)
	is.True(!m.Equal(g))
}

func TestMeldString(t *testing.T) {
	is := is.New(t)
	m, err := MeldFromString("r 1 w 3")
	is.NoErr(err)
	is.Equal(m.String(), "[run r1 w r3]")
}

func TestTableAddRemoveInsert(t *testing.T) {
	is := is.New(t)
	tb := NewTable()
	m1, _ := MeldFromString("r 1 2 3")
	m2, _ := MeldFromString("b 4 5 6")
	tb.Add(m1)
	tb.Add(m2)
	is.Equal(tb.Len(), 2)

	got, ok := tb.RemoveAt(0)
	is.True(ok)
	is.True(got.Equal(m1))
	is.Equal(tb.Len(), 1)
	// index shifted
	shifted, ok := tb.Meld(0)
	is.True(ok)
	is.True(shifted.Equal(m2))

	tb.InsertAt(0, m1)
	is.Equal(tb.Len(), 2)
	first, _ := tb.Meld(0)
	is.True(first.Equal(m1))

	_, ok = tb.RemoveAt(5)
	is.True(!ok)
}

func TestTableCopyEquals(t *testing.T) {
	is := is.New(t)
	tb := NewTable()
	m1, _ := MeldFromString("r 1 2 3")
	tb.Add(m1)
	cp := tb.Copy()
	is.True(tb.Equals(cp))
	cp.RemoveAt(0)
	is.True(!tb.Equals(cp))
}

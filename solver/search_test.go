package solver

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/rummisolve/tiles"
)

func mustRack(t *testing.T, s string) *tiles.Rack {
	t.Helper()
	r, err := tiles.RackFromString(s)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func mustMeld(t *testing.T, s string) tiles.Meld {
	t.Helper()
	m, err := tiles.MeldFromString(s)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func mustTable(t *testing.T, melds ...string) *tiles.Table {
	t.Helper()
	tb := tiles.NewTable()
	for _, s := range melds {
		tb.Add(mustMeld(t, s))
	}
	return tb
}

func TestBeatsNeverReflexive(t *testing.T) {
	is := is.New(t)
	for _, s := range []string{"r1", "r1 r2 r3 w", "", "w w"} {
		r := mustRack(t, s)
		is.True(!beats(r, r))
	}
}

func TestBeatsRejectsInventedTiles(t *testing.T) {
	is := is.New(t)
	baseline := mustRack(t, "r1 r2 r3")
	result := mustRack(t, "r1 b5")
	// b5 is absent from the baseline: not a legal improvement even
	// though two tiles were shed.
	is.True(!beats(result, baseline))
}

func TestBeatsRequiresStrictDecrease(t *testing.T) {
	is := is.New(t)
	baseline := mustRack(t, "r1 r2 r3")

	is.True(beats(mustRack(t, "r1"), baseline))
	is.True(beats(mustRack(t, ""), baseline))
	is.True(beats(mustRack(t, "r1 r2"), baseline))
}

func TestBeatsCountsDuplicates(t *testing.T) {
	is := is.New(t)
	baseline := mustRack(t, "r5 r5")
	is.True(beats(mustRack(t, "r5"), baseline))
	is.True(!beats(mustRack(t, "r5 r5"), baseline))
}

func TestFirstCombination(t *testing.T) {
	is := is.New(t)
	is.Equal(firstCombination(0), []int{})
	is.Equal(firstCombination(3), []int{0, 1, 2})
}

func TestNextCombinationLexicographic(t *testing.T) {
	is := is.New(t)
	combo := firstCombination(2)
	var seen [][]int
	for {
		c := make([]int, len(combo))
		copy(c, combo)
		seen = append(seen, c)
		if !nextCombination(combo, 4) {
			break
		}
	}
	is.Equal(seen, [][]int{
		{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3},
	})
}

func TestNextCombinationDegenerate(t *testing.T) {
	is := is.New(t)
	is.True(!nextCombination([]int{}, 5))

	combo := []int{0}
	is.True(nextCombination(combo, 2))
	is.Equal(combo, []int{1})
	is.True(!nextCombination(combo, 2))
}

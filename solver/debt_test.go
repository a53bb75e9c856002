package solver

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/rummisolve/tiles"
)

func TestRunWildObligationIsConcrete(t *testing.T) {
	is := is.New(t)
	picked := []tiles.Meld{mustMeld(t, "r 1 w 3")}
	debt := computeWildDebt(picked)

	is.Equal(len(debt.eitherOr), 0)
	is.Equal(debt.concrete[tiles.New(tiles.ColorRed, 2)], 1)
}

func TestRunWildObligationAtEdge(t *testing.T) {
	is := is.New(t)
	// Wild trailing an 11-12-13 run would stand for a 14: no
	// obligation can be derived, the wild is skipped.
	m := tiles.NewMeld(tiles.Run, []tiles.Tile{
		tiles.New(tiles.ColorBlue, 11),
		tiles.New(tiles.ColorBlue, 12),
		tiles.New(tiles.ColorBlue, 13),
		tiles.Wild(),
	})
	debt := computeWildDebt([]tiles.Meld{m})
	is.True(debt.empty())
}

func TestGroupOfFourWildIsConcrete(t *testing.T) {
	is := is.New(t)
	picked := []tiles.Meld{mustMeld(t, "5 r b y w")}
	debt := computeWildDebt(picked)

	is.Equal(len(debt.eitherOr), 0)
	is.Equal(debt.concrete[tiles.New(tiles.ColorBlack, 5)], 1)
}

func TestGroupOfThreeWildIsEitherOf(t *testing.T) {
	is := is.New(t)
	picked := []tiles.Meld{mustMeld(t, "5 r b w")}
	debt := computeWildDebt(picked)

	is.Equal(len(debt.concrete), 0)
	is.Equal(len(debt.eitherOr), 1)

	y5 := tiles.New(tiles.ColorYellow, 5)
	k5 := tiles.New(tiles.ColorBlack, 5)

	is.True(debt.satisfiedBy([]tiles.Meld{mustMeld(t, "5 y b k")}))       // y5 present
	is.True(debt.satisfiedBy([]tiles.Meld{mustMeld(t, "k 4 5 6")}))       // k5 present
	is.True(debt.satisfiedBy([]tiles.Meld{{Kind: tiles.Group, Tiles: []tiles.Tile{y5, k5, tiles.New(tiles.ColorRed, 5)}}}))
	is.True(!debt.satisfiedBy([]tiles.Meld{mustMeld(t, "r 1 2 3")})) // neither
}

func TestConcreteObligationsSum(t *testing.T) {
	is := is.New(t)
	picked := []tiles.Meld{
		mustMeld(t, "r 1 w 3"),
		mustMeld(t, "r 2 3 4"),
	}
	// No wild in the second meld; still exactly one r2 owed.
	debt := computeWildDebt(picked)
	is.Equal(debt.concrete[tiles.New(tiles.ColorRed, 2)], 1)

	twice := computeWildDebt([]tiles.Meld{
		mustMeld(t, "b 1 w 3"),
		mustMeld(t, "b w 3 4"),
	})
	is.Equal(twice.concrete[tiles.New(tiles.ColorBlue, 2)], 2)
	is.True(!twice.satisfiedBy([]tiles.Meld{mustMeld(t, "b 1 2 3")}))
	is.True(twice.satisfiedBy([]tiles.Meld{
		mustMeld(t, "b 1 2 3"),
		mustMeld(t, "b 2 3 4"),
	}))
}

func TestEmptyDebtTriviallySatisfied(t *testing.T) {
	is := is.New(t)
	debt := computeWildDebt(nil)
	is.True(debt.empty())
	is.True(debt.satisfiedBy(nil))
	is.True(debt.satisfiedBy([]tiles.Meld{mustMeld(t, "r 1 2 3")}))
}

func TestWildsInLaidMeldsDoNotPayDebt(t *testing.T) {
	is := is.New(t)
	debt := computeWildDebt([]tiles.Meld{mustMeld(t, "r 1 w 3")})
	// A wild standing in the r2 slot of a new meld is not an r2.
	is.True(!debt.satisfiedBy([]tiles.Meld{mustMeld(t, "r 1 w 3")}))
	is.True(debt.satisfiedBy([]tiles.Meld{mustMeld(t, "r 2 3 4")}))
}

package move

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/domino14/rummisolve/tiles"
)

func TestMoveAccessors(t *testing.T) {
	p := NewPickUp(2)
	assert.Equal(t, ActionPickUp, p.Action())
	assert.Equal(t, 2, p.TableIndex())

	m, err := tiles.MeldFromString("r 1 2 3")
	assert.NoError(t, err)
	l := NewLayDown(m)
	assert.Equal(t, ActionLayDown, l.Action())
	assert.True(t, l.Meld().Equal(m))
}

func TestMoveEqual(t *testing.T) {
	m, _ := tiles.MeldFromString("r 1 2 3")
	m2, _ := tiles.MeldFromString("b 4 5 6")
	assert.True(t, NewPickUp(1).Equal(NewPickUp(1)))
	assert.False(t, NewPickUp(1).Equal(NewPickUp(2)))
	assert.True(t, NewLayDown(m).Equal(NewLayDown(m)))
	assert.False(t, NewLayDown(m).Equal(NewLayDown(m2)))
	assert.False(t, NewPickUp(0).Equal(NewLayDown(m)))
}

func TestMoveShortDescription(t *testing.T) {
	m, _ := tiles.MeldFromString("r 1 2 3")
	assert.Equal(t, "pickup 0", NewPickUp(0).ShortDescription())
	assert.Equal(t, "laydown [run r1 r2 r3]", NewLayDown(m).ShortDescription())
}

func TestHumanShortDescription(t *testing.T) {
	m, _ := tiles.MeldFromString("r 1 2 3")
	h := Human{Type: PlayFromHand, Result: m}
	assert.Equal(t, "play [run r1 r2 r3] from hand", h.ShortDescription())

	ext, _ := tiles.MeldFromString("r 1 2 3 4")
	h = Human{
		Type:     ExtendMeld,
		Original: m,
		Added:    []tiles.Tile{tiles.New(tiles.ColorRed, 4)},
		Result:   ext,
	}
	assert.Equal(t,
		"extend [run r1 r2 r3] with r4 -> [run r1 r2 r3 r4]",
		h.ShortDescription())
}

func TestHumanTypeStrings(t *testing.T) {
	cases := map[HumanType]string{
		PlayFromHand: "play",
		ExtendMeld:   "extend",
		TakeFromMeld: "take",
		SplitMeld:    "split",
		JoinMelds:    "join",
		SwapWild:     "swap-wild",
		Rearrange:    "rearrange",
	}
	for ht, want := range cases {
		assert.Equal(t, want, ht.String())
	}
}

package move

import (
	"fmt"
	"strings"

	"github.com/domino14/rummisolve/tiles"
)

// HumanType classifies a human-legible edit operation.
type HumanType uint8

const (
	// PlayFromHand plays a meld entirely from the hand.
	PlayFromHand HumanType = iota
	// ExtendMeld adds hand tiles to an existing table meld.
	ExtendMeld
	// TakeFromMeld removes tiles from a meld, leaving a valid meld
	// behind.
	TakeFromMeld
	// SplitMeld breaks one table meld into several melds.
	SplitMeld
	// JoinMelds combines several table melds into one.
	JoinMelds
	// SwapWild replaces wild(s) in a meld with real tiles from hand.
	SwapWild
	// Rearrange is the catch-all for transformations that fit no other
	// category.
	Rearrange
)

func (ht HumanType) String() string {
	switch ht {
	case PlayFromHand:
		return "play"
	case ExtendMeld:
		return "extend"
	case TakeFromMeld:
		return "take"
	case SplitMeld:
		return "split"
	case JoinMelds:
		return "join"
	case SwapWild:
		return "swap-wild"
	case Rearrange:
		return "rearrange"
	}
	return "UNHANDLED"
}

// WildSwap pairs a replacement tile from hand with the wild it frees.
type WildSwap struct {
	Replacement tiles.Tile
	Wild        tiles.Tile
}

// Human is a human-legible edit operation, derived once from a
// finished solver transcript plus the original table and hand. It is a
// closed tagged variant; only the fields relevant to its Type are
// populated.
type Human struct {
	Type HumanType

	// PlayFromHand, ExtendMeld, TakeFromMeld, SwapWild, JoinMelds.
	Result tiles.Meld
	// ExtendMeld, TakeFromMeld, SplitMeld, SwapWild.
	Original tiles.Meld

	// ExtendMeld.
	Added []tiles.Tile
	// TakeFromMeld.
	Taken     []tiles.Tile
	Remaining tiles.Meld
	// SplitMeld.
	Parts []tiles.Meld
	// JoinMelds.
	Sources []tiles.Meld
	// SwapWild.
	Swaps []WildSwap
	// Rearrange.
	Consumed      []tiles.Meld
	Produced      []tiles.Meld
	HandTilesUsed []tiles.Tile
}

// ShortDescription renders the operation for display.
func (h Human) ShortDescription() string {
	switch h.Type {
	case PlayFromHand:
		return fmt.Sprintf("play %s from hand", h.Result)
	case ExtendMeld:
		return fmt.Sprintf("extend %s with %s -> %s",
			h.Original, tileList(h.Added), h.Result)
	case TakeFromMeld:
		return fmt.Sprintf("take %s from %s, leaving %s",
			tileList(h.Taken), h.Original, h.Remaining)
	case SplitMeld:
		return fmt.Sprintf("split %s into %s", h.Original, meldList(h.Parts))
	case JoinMelds:
		return fmt.Sprintf("join %s -> %s", meldList(h.Sources), h.Result)
	case SwapWild:
		swaps := make([]string, len(h.Swaps))
		for i, s := range h.Swaps {
			swaps[i] = fmt.Sprintf("%s for %s", s.Replacement, s.Wild)
		}
		return fmt.Sprintf("swap %s in %s -> %s",
			strings.Join(swaps, ", "), h.Original, h.Result)
	case Rearrange:
		return fmt.Sprintf("rearrange %s + hand tiles %s -> %s",
			meldList(h.Consumed), tileList(h.HandTilesUsed), meldList(h.Produced))
	}
	return "UNHANDLED"
}

func (h Human) String() string {
	return "<" + h.ShortDescription() + ">"
}

func tileList(ts []tiles.Tile) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

func meldList(ms []tiles.Meld) string {
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

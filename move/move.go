// Package move defines the two move vocabularies of the planner: the
// solver's raw pick-up/lay-down transcript, and the human-legible edit
// operations derived from it.
package move

import (
	"fmt"

	"github.com/domino14/rummisolve/tiles"
)

// Action is the kind of a solver move.
type Action uint8

const (
	// ActionPickUp removes the meld at a table index, returning its
	// tiles to the hand.
	ActionPickUp Action = iota
	// ActionLayDown plays a meld from the hand onto the table.
	ActionLayDown
)

// Move is one step of a solver transcript. It is a closed tagged
// variant: a pick-up carries a table index, a lay-down carries a meld.
// Pick-up indices are relative to the table state at the moment the
// move was recorded.
type Move struct {
	action Action
	index  int
	meld   tiles.Meld
}

// NewPickUp creates a pick-up move for the meld at the given table
// index.
func NewPickUp(index int) Move {
	return Move{action: ActionPickUp, index: index}
}

// NewLayDown creates a lay-down move for the given meld.
func NewLayDown(m tiles.Meld) Move {
	return Move{action: ActionLayDown, meld: m}
}

// Action returns the move's kind.
func (m Move) Action() Action {
	return m.action
}

// TableIndex returns the table index of a pick-up move.
func (m Move) TableIndex() int {
	return m.index
}

// Meld returns the meld of a lay-down move.
func (m Move) Meld() tiles.Meld {
	return m.meld
}

// Equal compares two moves.
func (m Move) Equal(other Move) bool {
	if m.action != other.action {
		return false
	}
	if m.action == ActionPickUp {
		return m.index == other.index
	}
	return m.meld.Equal(other.meld)
}

// ShortDescription provides a short description, useful for logging or
// user display.
func (m Move) ShortDescription() string {
	switch m.action {
	case ActionPickUp:
		return fmt.Sprintf("pickup %d", m.index)
	case ActionLayDown:
		return fmt.Sprintf("laydown %s", m.meld)
	}
	return "UNHANDLED"
}

func (m Move) String() string {
	return "<" + m.ShortDescription() + ">"
}

package solver

import (
	"fmt"

	"github.com/domino14/rummisolve/tiles"
)

// QualityFunc scores a rack; higher is better. The solver maximizes
// the quality of the hand left after playing.
type QualityFunc func(*tiles.Rack) int

// Strategy is the closed choice of built-in quality functions.
type Strategy int

const (
	// MinimizeTiles prefers leaving the fewest tiles in hand.
	MinimizeTiles Strategy = iota
	// MinimizePoints prefers leaving the lowest point total in hand
	// (tile number sum, wild = 0).
	MinimizePoints
)

// Evaluate scores a rack under this strategy.
func (st Strategy) Evaluate(r *tiles.Rack) int {
	switch st {
	case MinimizePoints:
		return -r.Points()
	default:
		return -r.NumTiles()
	}
}

// Quality returns the strategy as a QualityFunc.
func (st Strategy) Quality() QualityFunc {
	return st.Evaluate
}

func (st Strategy) String() string {
	if st == MinimizePoints {
		return "minimize_points"
	}
	return "minimize_tiles"
}

// StrategyFromString parses a strategy name.
func StrategyFromString(s string) (Strategy, error) {
	switch s {
	case "minimize_tiles":
		return MinimizeTiles, nil
	case "minimize_points":
		return MinimizePoints, nil
	}
	return 0, fmt.Errorf("unknown strategy: %s", s)
}

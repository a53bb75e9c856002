// Package api is the process-boundary adapter for the planner: tiles
// and melds travel as short strings ("r13", "w") inside a JSON
// envelope, and malformed input comes back as a structured error
// response, never a panic.
package api

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/rummisolve/explain"
	"github.com/domino14/rummisolve/move"
	"github.com/domino14/rummisolve/solver"
	"github.com/domino14/rummisolve/tiles"
)

// DefaultTimeLimitMs is used when a request carries no time limit.
const DefaultTimeLimitMs = 5000

// MeldJSON is the wire form of a meld.
type MeldJSON struct {
	Type  string   `json:"type"`
	Tiles []string `json:"tiles"`
}

// MoveJSON is the wire form of a solver move: a pick-up carries a
// table index, a lay-down carries a meld. Index is always serialized;
// table index 0 is a legitimate pick-up target.
type MoveJSON struct {
	Action string    `json:"action"`
	Index  int       `json:"index"`
	Meld   *MeldJSON `json:"meld,omitempty"`
}

// SolveRequest is one planning request.
type SolveRequest struct {
	Hand  []string   `json:"hand"`
	Table []MeldJSON `json:"table"`
	// Strategy is "minimize_tiles" (default) or "minimize_points".
	Strategy    string `json:"strategy,omitempty"`
	TimeLimitMs int64  `json:"time_limit_ms,omitempty"`
	// Narrate additionally renders the transcript as human-legible
	// edit operations.
	Narrate bool `json:"narrate,omitempty"`
}

// SolveResponse is the planning outcome. Success is false both for
// malformed input (Error set) and for a position with no improving
// play.
type SolveResponse struct {
	Success         bool       `json:"success"`
	Moves           []MoveJSON `json:"moves,omitempty"`
	HumanMoves      []string   `json:"human_moves,omitempty"`
	Error           string     `json:"error,omitempty"`
	SearchCompleted bool       `json:"search_completed"`
	DepthReached    int        `json:"depth_reached"`
	InitialQuality  int        `json:"initial_quality"`
	FinalQuality    int        `json:"final_quality"`
}

// ParseHand parses a list of tile strings into a rack.
func ParseHand(strs []string) (*tiles.Rack, error) {
	rack := tiles.NewRack()
	for _, s := range strs {
		t, err := tiles.FromString(s)
		if err != nil {
			return nil, err
		}
		rack.Add(t)
	}
	return rack, nil
}

// MeldFromJSON converts a wire meld to the internal form.
func MeldFromJSON(mj MeldJSON) (tiles.Meld, error) {
	var kind tiles.MeldKind
	switch mj.Type {
	case "group":
		kind = tiles.Group
	case "run":
		kind = tiles.Run
	default:
		return tiles.Meld{}, fmt.Errorf("unknown meld type: %s", mj.Type)
	}
	ts := make([]tiles.Tile, 0, len(mj.Tiles))
	for _, s := range mj.Tiles {
		t, err := tiles.FromString(s)
		if err != nil {
			return tiles.Meld{}, err
		}
		ts = append(ts, t)
	}
	return tiles.NewMeld(kind, ts), nil
}

// MeldToJSON converts an internal meld to the wire form.
func MeldToJSON(m tiles.Meld) MeldJSON {
	strs := make([]string, len(m.Tiles))
	for i, t := range m.Tiles {
		strs[i] = t.String()
	}
	return MeldJSON{Type: m.Kind.String(), Tiles: strs}
}

// MoveToJSON converts a solver move to the wire form.
func MoveToJSON(mv move.Move) MoveJSON {
	if mv.Action() == move.ActionPickUp {
		return MoveJSON{Action: "pickup", Index: mv.TableIndex()}
	}
	mj := MeldToJSON(mv.Meld())
	return MoveJSON{Action: "laydown", Meld: &mj}
}

// ParseTable converts a list of wire melds to a table.
func ParseTable(mjs []MeldJSON) (*tiles.Table, error) {
	table := tiles.NewTable()
	for _, mj := range mjs {
		m, err := MeldFromJSON(mj)
		if err != nil {
			return nil, err
		}
		table.Add(m)
	}
	return table, nil
}

// Solve handles one request end to end. It never returns an error;
// every failure mode is encoded in the response.
func Solve(ctx context.Context, req SolveRequest) SolveResponse {
	rack, err := ParseHand(req.Hand)
	if err != nil {
		return errResponse(fmt.Errorf("invalid hand: %w", err))
	}
	table, err := ParseTable(req.Table)
	if err != nil {
		return errResponse(fmt.Errorf("invalid table: %w", err))
	}
	strategyName := req.Strategy
	if strategyName == "" {
		strategyName = solver.MinimizeTiles.String()
	}
	strategy, err := solver.StrategyFromString(strategyName)
	if err != nil {
		return errResponse(err)
	}
	limitMs := req.TimeLimitMs
	if limitMs <= 0 {
		limitMs = DefaultTimeLimitMs
	}

	s := new(solver.Solver)
	if err := s.Init(table, rack); err != nil {
		return errResponse(err)
	}
	s.SetQuality(strategy.Quality())
	solveCtx, cancel := context.WithTimeout(ctx, time.Duration(limitMs)*time.Millisecond)
	defer cancel()
	res, err := s.Solve(solveCtx)
	if err != nil {
		return errResponse(err)
	}

	resp := SolveResponse{
		Success:         len(res.Moves) > 0,
		SearchCompleted: res.Exhausted,
		DepthReached:    res.DepthReached,
		InitialQuality:  res.InitialQuality,
		FinalQuality:    res.FinalQuality,
	}
	if len(res.Moves) == 0 {
		resp.Error = "No solution found within time limit"
		return resp
	}
	resp.Moves = make([]MoveJSON, len(res.Moves))
	for i, mv := range res.Moves {
		resp.Moves[i] = MoveToJSON(mv)
	}
	if req.Narrate {
		for _, h := range explain.Narrate(table, rack, res.Moves) {
			resp.HumanMoves = append(resp.HumanMoves, h.ShortDescription())
		}
	}
	log.Debug().Int("moves", len(resp.Moves)).Bool("completed", resp.SearchCompleted).
		Msg("api-solve")
	return resp
}

func errResponse(err error) SolveResponse {
	return SolveResponse{Success: false, Error: err.Error()}
}

package api

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/rummisolve/move"
	"github.com/domino14/rummisolve/tiles"
)

func TestSolveRoundTrip(t *testing.T) {
	is := is.New(t)
	req := SolveRequest{
		Hand:        []string{"r1", "r2", "r3"},
		TimeLimitMs: 5000,
	}
	resp := Solve(context.Background(), req)

	is.True(resp.Success)
	is.True(resp.SearchCompleted)
	is.Equal(len(resp.Moves), 1)
	is.Equal(resp.Moves[0].Action, "laydown")
	is.Equal(resp.Moves[0].Meld.Type, "run")
	is.Equal(resp.Moves[0].Meld.Tiles, []string{"r1", "r2", "r3"})
	is.True(resp.FinalQuality > resp.InitialQuality)
}

func TestSolveWithTable(t *testing.T) {
	is := is.New(t)
	req := SolveRequest{
		Hand: []string{"r4"},
		Table: []MeldJSON{
			{Type: "run", Tiles: []string{"r1", "r2", "r3"}},
		},
		Strategy: "minimize_points",
		Narrate:  true,
	}
	resp := Solve(context.Background(), req)

	is.True(resp.Success)
	is.Equal(resp.Moves[0].Action, "pickup")
	is.Equal(resp.Moves[0].Index, 0)
	is.Equal(len(resp.HumanMoves), 1) // the narrated extend
}

func TestSolveNoSolution(t *testing.T) {
	is := is.New(t)
	resp := Solve(context.Background(), SolveRequest{Hand: []string{"r1", "b5"}})

	is.True(!resp.Success)
	is.Equal(resp.Error, "No solution found within time limit")
	is.Equal(len(resp.Moves), 0)
	is.Equal(resp.FinalQuality, resp.InitialQuality)
}

func TestSolveMalformedInput(t *testing.T) {
	is := is.New(t)

	resp := Solve(context.Background(), SolveRequest{Hand: []string{"r99"}})
	is.True(!resp.Success)
	is.True(resp.Error != "")

	resp = Solve(context.Background(), SolveRequest{
		Hand:  []string{"r1"},
		Table: []MeldJSON{{Type: "ladder", Tiles: []string{"r1"}}},
	})
	is.True(!resp.Success)
	is.True(resp.Error != "")

	resp = Solve(context.Background(), SolveRequest{
		Hand:     []string{"r1"},
		Strategy: "maximize_chaos",
	})
	is.True(!resp.Success)
	is.True(resp.Error != "")
}

func TestMeldJSONConversion(t *testing.T) {
	is := is.New(t)
	mj := MeldJSON{Type: "group", Tiles: []string{"r5", "b5", "w"}}
	m, err := MeldFromJSON(mj)
	is.NoErr(err)
	is.Equal(m.Kind, tiles.Group)
	is.True(m.Tiles[2].IsWild())

	back := MeldToJSON(m)
	is.Equal(back, mj)
}

func TestPickUpWireShape(t *testing.T) {
	is := is.New(t)
	// Table index 0 is the most common pick-up target; the index
	// field must survive serialization even at its zero value.
	raw, err := json.Marshal(MoveToJSON(move.NewPickUp(0)))
	is.NoErr(err)

	var decoded map[string]any
	is.NoErr(json.Unmarshal(raw, &decoded))
	is.Equal(decoded["action"], "pickup")
	idx, hasIdx := decoded["index"]
	is.True(hasIdx)
	is.Equal(idx, float64(0))
}

func TestResponseWireShape(t *testing.T) {
	is := is.New(t)
	resp := Solve(context.Background(), SolveRequest{Hand: []string{"r1", "r2", "r3"}})
	raw, err := json.Marshal(resp)
	is.NoErr(err)

	var decoded map[string]any
	is.NoErr(json.Unmarshal(raw, &decoded))
	is.Equal(decoded["success"], true)
	_, hasErr := decoded["error"]
	is.True(!hasErr) // omitted on success
	_, hasDepth := decoded["depth_reached"]
	is.True(hasDepth)
}

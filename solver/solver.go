// Package solver plans the best legal move for one turn: which table
// melds to pick up, and which melds to lay down, so that the remaining
// hand scores highest under the chosen strategy.
//
// The search runs in two nested layers. The outer layer iterates
// disassembly depth: how many table melds are picked up and returned
// to the hand, trying every k-combination of melds at each depth. The
// inner layer is a backtracking subset search over every candidate
// meld constructible from the augmented hand, constrained so that the
// leftover hand strictly improves on the original and every wildcard
// obligation incurred by disassembly is repaid.
package solver

import (
	"context"
	"errors"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/domino14/rummisolve/move"
	"github.com/domino14/rummisolve/movegen"
	"github.com/domino14/rummisolve/tiles"
)

// Result is the outcome of one Solve call.
type Result struct {
	// Moves is the planned turn: pick-ups first (ascending table
	// index, against the original table), then lay-downs. Empty when
	// no improving move exists.
	Moves []move.Move
	// Score is the quality of the hand left after the turn; only
	// meaningful when Moves is non-empty.
	Score int
	// Exhausted is true when every disassembly depth was fully
	// explored before any deadline.
	Exhausted bool
	// DepthReached is the deepest disassembly level fully explored.
	DepthReached int
	// InitialQuality and FinalQuality score the hand before and after
	// the planned turn. FinalQuality is the quality of the true
	// remaining hand (picked-up tiles included), the same value the
	// search ranked candidates by; when no move is found it equals
	// InitialQuality.
	InitialQuality int
	FinalQuality   int
}

// Solver is the turn planner. Zero value is not usable; call Init
// first. A Solver is not safe for concurrent Solve calls.
type Solver struct {
	origTable *tiles.Table
	origRack  *tiles.Rack
	quality   QualityFunc
	threads   int
	logStream io.Writer

	nodes atomic.Uint64
	// depthDone is the deepest disassembly level fully explored by
	// the last Solve call.
	depthDone int
}

// Init sets the position to solve. The table and rack are copied; the
// caller's values are never mutated.
func (s *Solver) Init(table *tiles.Table, rack *tiles.Rack) error {
	if table == nil || rack == nil {
		return errors.New("solver: table and rack are required")
	}
	s.origTable = table.Copy()
	s.origRack = rack.Copy()
	if s.quality == nil {
		s.quality = MinimizeTiles.Quality()
	}
	if s.threads == 0 {
		s.threads = 1
	}
	return nil
}

// SetQuality overrides the hand-scoring function. Higher is better.
func (s *Solver) SetQuality(q QualityFunc) {
	s.quality = q
}

// SetThreads sets the worker count for the combination trials. n <= 0
// means one worker per CPU.
func (s *Solver) SetThreads(n int) {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	s.threads = n
}

// SetLogStream directs a YAML record of every improving trial to w.
func (s *Solver) SetLogStream(w io.Writer) {
	s.logStream = w
}

// trial is one evaluated pick-up combination together with the best
// lay-down found for it.
type trial struct {
	moves   []move.Move
	score   int
	ordinal uint64
}

type trialRecord struct {
	Depth       int      `yaml:"depth"`
	Combination []int    `yaml:"combination,flow,omitempty"`
	Score       int      `yaml:"score"`
	Moves       []string `yaml:"moves,flow"`
}

// Solve runs the planner until the position is exhausted or ctx
// expires. Deadline expiry is not an error; the best result found so
// far is returned with Exhausted false.
func (s *Solver) Solve(ctx context.Context) (*Result, error) {
	if s.origTable == nil {
		return nil, errors.New("solver: call Init before Solve")
	}
	s.nodes.Store(0)

	tickerDone := make(chan struct{})
	go s.logNodes(tickerDone)
	defer close(tickerDone)

	var best *trial
	if s.threads > 1 {
		best = s.solveParallel(ctx)
	} else {
		best = s.solveSequential(ctx)
	}

	res := &Result{
		Exhausted:      ctx.Err() == nil && s.depthDone == s.origTable.Len(),
		DepthReached:   s.depthDone,
		InitialQuality: s.quality(s.origRack),
	}
	res.FinalQuality = res.InitialQuality
	if best != nil {
		res.Moves = best.moves
		res.Score = best.score
		res.FinalQuality = best.score
	}
	log.Info().
		Uint64("nodes", s.nodes.Load()).
		Int("depth-reached", res.DepthReached).
		Bool("exhausted", res.Exhausted).
		Int("final-quality", res.FinalQuality).
		Msg("solve-done")
	return res, nil
}

func (s *Solver) logNodes(done <-chan struct{}) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()
	var last uint64
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			n := s.nodes.Load()
			log.Debug().Uint64("nps", n-last).Uint64("nodes", n).Msg("solver-progress")
			last = n
		}
	}
}

func (s *Solver) newSearchState() *searchState {
	return &searchState{
		gen:   movegen.NewGenerator(),
		table: s.origTable.Copy(),
		rack:  s.origRack.Copy(),
	}
}

// solveSequential walks depths 0..len(table), enumerating every
// k-combination of table melds at each depth in lexicographic order.
func (s *Solver) solveSequential(ctx context.Context) *trial {
	st := s.newSearchState()
	maxDepth := s.origTable.Len()
	var best *trial
	var ordinal uint64
	s.depthDone = 0

	for depth := 0; depth <= maxDepth; depth++ {
		if ctx.Err() != nil {
			break
		}
		combo := firstCombination(depth)
		for {
			if ctx.Err() != nil {
				break
			}
			if t := s.tryCombination(ctx, st, depth, combo, ordinal); t != nil {
				if best == nil || t.score > best.score {
					best = t
					s.logImprovement(depth, combo, t)
				}
			}
			ordinal++
			if !nextCombination(combo, maxDepth) {
				break
			}
		}
		if ctx.Err() == nil {
			s.depthDone = depth
		}
	}
	return best
}

// solveParallel distributes combination trials over worker goroutines,
// each with its own mutable search state. The winner matches what the
// sequential search would pick: highest score, earliest enumeration
// ordinal among equals.
func (s *Solver) solveParallel(ctx context.Context) *trial {
	maxDepth := s.origTable.Len()

	type job struct {
		depth   int
		combo   []int
		ordinal uint64
	}

	var mu sync.Mutex
	var best *trial
	s.depthDone = 0

	for depth := 0; depth <= maxDepth; depth++ {
		if ctx.Err() != nil {
			break
		}
		jobs := make(chan job)
		g, gctx := errgroup.WithContext(ctx)
		for i := 0; i < s.threads; i++ {
			st := s.newSearchState()
			g.Go(func() error {
				for j := range jobs {
					t := s.tryCombination(gctx, st, j.depth, j.combo, j.ordinal)
					if t == nil {
						continue
					}
					mu.Lock()
					if best == nil || t.score > best.score ||
						(t.score == best.score && t.ordinal < best.ordinal) {
						best = t
						s.logImprovement(j.depth, j.combo, t)
					}
					mu.Unlock()
				}
				return nil
			})
		}

		combo := firstCombination(depth)
		ordinal := uint64(depth) << 40 // depth-major enumeration order
		for {
			if gctx.Err() != nil {
				break
			}
			c := make([]int, len(combo))
			copy(c, combo)
			jobs <- job{depth: depth, combo: c, ordinal: ordinal}
			ordinal++
			if !nextCombination(combo, maxDepth) {
				break
			}
		}
		close(jobs)
		g.Wait()

		if ctx.Err() == nil {
			s.depthDone = depth
		}
	}
	return best
}

// tryCombination evaluates one pick-up combination: snapshot the
// position, remove the chosen melds from the table into the hand,
// charge the wildcard debt, and search for the best lay-down. The
// search state is left equal to the original position afterwards.
func (s *Solver) tryCombination(ctx context.Context, st *searchState,
	depth int, combo []int, ordinal uint64) *trial {

	st.table.CopyFrom(s.origTable)
	st.rack.CopyFrom(s.origRack)

	// Remove in descending index order so earlier indices stay valid;
	// the pick-up moves themselves are recorded against the original
	// table, in ascending order.
	picked := make([]tiles.Meld, 0, len(combo))
	for i := len(combo) - 1; i >= 0; i-- {
		m, ok := st.table.Meld(combo[i])
		if !ok {
			return nil
		}
		picked = append(picked, m)
		st.table.RemoveAt(combo[i])
		for _, t := range m.Tiles {
			st.rack.Add(t)
		}
	}
	debt := computeWildDebt(picked)

	res := s.findBestMelds(ctx, st, s.quality, s.origRack, debt)
	if res == nil {
		return nil
	}

	moves := make([]move.Move, 0, len(combo)+len(res.melds))
	for _, idx := range combo {
		moves = append(moves, move.NewPickUp(idx))
	}
	for _, m := range res.melds {
		moves = append(moves, move.NewLayDown(m))
	}
	return &trial{moves: moves, score: res.score, ordinal: ordinal}
}

func (s *Solver) logImprovement(depth int, combo []int, t *trial) {
	log.Debug().Int("depth", depth).Ints("combination", combo).
		Int("score", t.score).Msg("new-best")
	if s.logStream == nil {
		return
	}
	rec := trialRecord{Depth: depth, Combination: combo, Score: t.score}
	for _, mv := range t.moves {
		rec.Moves = append(rec.Moves, mv.ShortDescription())
	}
	out, err := yaml.Marshal([]trialRecord{rec})
	if err == nil {
		s.logStream.Write(out)
	}
}

// Plan is the one-shot convenience wrapper: solve the position with
// the given strategy within the time budget.
func Plan(table *tiles.Table, rack *tiles.Rack, strategy Strategy,
	budget time.Duration) (*Result, error) {

	s := new(Solver)
	if err := s.Init(table, rack); err != nil {
		return nil, err
	}
	s.SetQuality(strategy.Quality())
	ctx := context.Background()
	if budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}
	return s.Solve(ctx)
}

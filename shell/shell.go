// Package shell is the interactive console for the planner.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/rummisolve/config"
	"github.com/domino14/rummisolve/explain"
	"github.com/domino14/rummisolve/move"
	"github.com/domino14/rummisolve/solver"
	"github.com/domino14/rummisolve/tiles"
)

const SolveLog = "/tmp/solvelog"

type ShellController struct {
	l *readline.Instance

	hand  *tiles.Rack
	table *tiles.Table

	strategy  solver.Strategy
	threads   int
	timeLimit time.Duration

	lastMoves    []move.Move
	solveLogFile *os.File
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mrummisolve>\033[0m ",
		HistoryFile:     "/tmp/readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	strategy, err := solver.StrategyFromString(cfg.Strategy)
	if err != nil {
		strategy = solver.MinimizeTiles
	}
	return &ShellController{
		l:         l,
		hand:      tiles.NewRack(),
		table:     tiles.NewTable(),
		strategy:  strategy,
		threads:   cfg.Threads,
		timeLimit: cfg.TimeBudget(),
	}
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.l.Stderr())
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func (sc *ShellController) displayState() string {
	var sb strings.Builder
	sb.WriteString("Hand: " + sc.hand.String() + "\n")
	sb.WriteString("Table:\n")
	for i, m := range sc.table.Melds() {
		sb.WriteString(fmt.Sprintf("  %d: %s\n", i, m))
	}
	if sc.table.Len() == 0 {
		sb.WriteString("  (empty)\n")
	}
	return sb.String()
}

func (sc *ShellController) setHand(line string) error {
	rack, err := tiles.RackFromString(line)
	if err != nil {
		return err
	}
	sc.hand = rack
	return nil
}

func (sc *ShellController) addMeld(line string) error {
	m, err := tiles.MeldFromString(line)
	if err != nil {
		return err
	}
	sc.table.Add(m)
	return nil
}

// deal replaces the hand with n tiles drawn from a fresh two-copy bag
// (plus two wilds), the standard 106-tile set.
func (sc *ShellController) deal(n int) error {
	var bag []tiles.Tile
	for copies := 0; copies < 2; copies++ {
		for color := uint8(0); color < tiles.NumColors; color++ {
			for number := uint8(tiles.MinNumber); number <= tiles.MaxNumber; number++ {
				bag = append(bag, tiles.New(color, number))
			}
		}
		bag = append(bag, tiles.Wild())
	}
	if n < 1 || n > len(bag) {
		return fmt.Errorf("deal size must be 1-%d", len(bag))
	}
	frand.Shuffle(len(bag), func(i, j int) {
		bag[i], bag[j] = bag[j], bag[i]
	})
	sc.hand = tiles.NewRack()
	for _, t := range bag[:n] {
		sc.hand.Add(t)
	}
	return nil
}

func (sc *ShellController) solve() error {
	s := new(solver.Solver)
	if err := s.Init(sc.table, sc.hand); err != nil {
		return err
	}
	s.SetQuality(sc.strategy.Quality())
	s.SetThreads(sc.threads)
	if sc.solveLogFile != nil {
		s.SetLogStream(sc.solveLogFile)
	}

	ctx, cancel := context.WithTimeout(context.Background(), sc.timeLimit)
	defer cancel()
	res, err := s.Solve(ctx)
	if err != nil {
		return err
	}
	sc.lastMoves = res.Moves

	if len(res.Moves) == 0 {
		sc.showMessage("No improving play found.")
		return nil
	}
	var sb strings.Builder
	for i, mv := range res.Moves {
		sb.WriteString(fmt.Sprintf("%d: %s\n", i+1, mv.ShortDescription()))
	}
	sb.WriteString(fmt.Sprintf("quality %d -> %d", res.InitialQuality, res.FinalQuality))
	if !res.Exhausted {
		sb.WriteString(fmt.Sprintf(" (cut short at depth %d)", res.DepthReached))
	}
	sc.showMessage(sb.String())
	return nil
}

func (sc *ShellController) explainLast() error {
	if len(sc.lastMoves) == 0 {
		return errors.New("please solve a position first")
	}
	human := explain.Narrate(sc.table, sc.hand, sc.lastMoves)
	if len(human) == 0 {
		sc.showMessage("Nothing to explain.")
		return nil
	}
	var sb strings.Builder
	for i, h := range human {
		sb.WriteString(fmt.Sprintf("%d: %s\n", i+1, h.ShortDescription()))
	}
	sc.showMessage(sb.String())
	return nil
}

func usage(w io.Writer) {
	showMessage(`Commands:
  hand <tiles>        set the hand, e.g. hand r1 r2 r3 w
  add <meld>          add a meld to the table, e.g. add r 1 2 3  or  add 5 r b k
  clear               clear the table
  deal <n>            deal a random hand of n tiles
  show                display hand and table
  solve               plan the best move for the current position
  solve log           log improving trials to `+SolveLog+`
  explain             narrate the last solution as table edits
  strategy <name>     minimize_tiles or minimize_points
  threads <n>         worker count (0 = all CPUs)
  timelimit <ms>      search time budget
  help                this message
  exit                leave the shell`, w)
}

func (sc *ShellController) commandSwitch(line string, sig chan os.Signal) error {
	switch {
	case strings.HasPrefix(line, "hand "):
		if err := sc.setHand(line[5:]); err != nil {
			sc.showError(err)
			break
		}
		sc.showMessage(sc.displayState())

	case strings.HasPrefix(line, "add "):
		if err := sc.addMeld(line[4:]); err != nil {
			sc.showError(err)
			break
		}
		sc.showMessage(sc.displayState())

	case line == "clear":
		sc.table = tiles.NewTable()
		sc.showMessage(sc.displayState())

	case strings.HasPrefix(line, "deal "):
		n, err := strconv.Atoi(strings.TrimSpace(line[5:]))
		if err != nil {
			sc.showError(err)
			break
		}
		if err := sc.deal(n); err != nil {
			sc.showError(err)
			break
		}
		sc.showMessage(sc.displayState())

	case line == "show":
		sc.showMessage(sc.displayState())

	case line == "solve":
		if err := sc.solve(); err != nil {
			sc.showError(err)
		}

	case line == "solve log":
		f, err := os.Create(SolveLog)
		if err != nil {
			sc.showError(err)
			break
		}
		sc.solveLogFile = f
		sc.showMessage("solve will log to " + SolveLog)

	case line == "explain":
		if err := sc.explainLast(); err != nil {
			sc.showError(err)
		}

	case strings.HasPrefix(line, "strategy "):
		strategy, err := solver.StrategyFromString(strings.TrimSpace(line[9:]))
		if err != nil {
			sc.showError(err)
			break
		}
		sc.strategy = strategy
		sc.showMessage("strategy set to " + strategy.String())

	case strings.HasPrefix(line, "threads "):
		n, err := strconv.Atoi(strings.TrimSpace(line[8:]))
		if err != nil {
			sc.showError(err)
			break
		}
		sc.threads = n
		sc.showMessage(fmt.Sprintf("threads set to %d", n))

	case strings.HasPrefix(line, "timelimit "):
		ms, err := strconv.Atoi(strings.TrimSpace(line[10:]))
		if err != nil || ms <= 0 {
			sc.showError(errors.New("timelimit must be a positive millisecond count"))
			break
		}
		sc.timeLimit = time.Duration(ms) * time.Millisecond
		sc.showMessage("time limit set to " + sc.timeLimit.String())

	case line == "bye" || line == "exit":
		if sc.solveLogFile != nil {
			sc.solveLogFile.Close()
		}
		sig <- syscall.SIGINT
		return errors.New("sending quit signal")

	case strings.HasPrefix(line, "help"):
		usage(sc.l.Stderr())

	default:
		if strings.TrimSpace(line) != "" {
			log.Debug().Msgf("you said: %v", strconv.Quote(line))
		}
	}
	return nil
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)

		if err := sc.commandSwitch(line, sig); err != nil {
			break
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

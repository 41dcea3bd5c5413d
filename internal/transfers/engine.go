package transfers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nawaneetkmr-cyber/fpl-tactix/internal/config"
	"github.com/nawaneetkmr-cyber/fpl-tactix/internal/milp"
	"github.com/nawaneetkmr-cyber/fpl-tactix/internal/squad"
	"github.com/nawaneetkmr-cyber/fpl-tactix/pkg/mathutil"
)

// Engine runs the weekly planning pipeline: model assembly, the exact
// solve under a time budget, and the fallback ladder when the solve does
// not finish cleanly. An Engine is safe for concurrent use; each call
// carries its own state.
type Engine struct {
	logger *zap.Logger
	solver milp.Solver
	cfg    config.OptimizerConfig
}

// NewEngine constructs an engine. A nil solver selects the built-in branch
// and bound; unset tunables take their defaults.
func NewEngine(logger *zap.Logger, solver milp.Solver, cfg config.OptimizerConfig) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.ApplyDefaults()
	if solver == nil {
		solver = milp.NewBranchBound(logger)
	}
	return &Engine{logger: logger, solver: solver, cfg: cfg}
}

// Config returns the tunables the engine was built with, defaults applied.
func (e *Engine) Config() config.OptimizerConfig {
	return e.cfg
}

// Optimize plans the coming gameweek for the given roster. It always
// returns a usable result for a valid input: when the exact solve times
// out or errors the result degrades through the incumbent, the greedy
// heuristic, and finally the unchanged squad, with Method recording which
// rung was reached.
func (e *Engine) Optimize(ctx context.Context, pool *squad.Pool, state *squad.State) (*Result, error) {
	requestID := uuid.NewString()
	log := e.logger.With(
		zap.String("op", "transfers.Engine.Optimize"),
		zap.String("requestID", requestID),
	)

	if err := state.Validate(pool, e.cfg.Rules); err != nil {
		return nil, fmt.Errorf("invalid squad state: %w", err)
	}

	model, idx, err := BuildModel(pool, state, e.cfg)
	if err != nil {
		return nil, fmt.Errorf("building transfer model: %w", err)
	}
	log.Debug("model assembled",
		zap.Int("players", pool.Len()),
		zap.Int("variables", model.NumVars()),
		zap.Int("constraints", model.NumConstraints()),
	)

	solveCtx, cancel := context.WithTimeout(ctx, e.cfg.SolverTimeLimit())
	defer cancel()

	started := time.Now()
	sol, err := e.solver.Solve(solveCtx, model)
	elapsed := time.Since(started)
	if err != nil {
		log.Error("exact solve failed, falling back to heuristic",
			zap.Error(err),
			zap.Duration("elapsed", elapsed),
		)
		return e.heuristicResult(log, pool, state, milp.StatusError.String()), nil
	}
	log.Info("solve finished",
		zap.String("status", sol.Status.String()),
		zap.Duration("elapsed", elapsed),
	)

	switch sol.Status {
	case milp.StatusOptimal:
		return e.extractOrFallback(log, sol, idx, pool, state, MethodExact)
	case milp.StatusTimeoutFeasible:
		return e.extractOrFallback(log, sol, idx, pool, state, MethodIncumbent)
	case milp.StatusInfeasible:
		// The current squad stays; an infeasible model means no legal
		// change exists under the given rules and budget.
		log.Warn("model infeasible, keeping current squad")
		return e.unchangedResult(pool, state, sol.Status.String()), nil
	default:
		return e.heuristicResult(log, pool, state, sol.Status.String()), nil
	}
}

// Suggest runs only the greedy swap scan, for callers that want quick
// candidates without an exact solve.
func (e *Engine) Suggest(pool *squad.Pool, state *squad.State) ([]Suggestion, error) {
	if err := state.Validate(pool, e.cfg.Rules); err != nil {
		return nil, fmt.Errorf("invalid squad state: %w", err)
	}
	return SuggestTransfers(pool, state, e.cfg), nil
}

func (e *Engine) extractOrFallback(log *zap.Logger, sol *milp.Solution, idx *Index, pool *squad.Pool, state *squad.State, method Method) (*Result, error) {
	result, err := ExtractResult(log, sol, idx, pool, state, e.cfg, method)
	if err != nil {
		log.Error("extraction failed, falling back to heuristic", zap.Error(err))
		return e.heuristicResult(log, pool, state, sol.Status.String()), nil
	}
	return result, nil
}

// heuristicResult applies the single best greedy swap, or keeps the squad
// when no profitable swap exists.
func (e *Engine) heuristicResult(log *zap.Logger, pool *squad.Pool, state *squad.State, solverStatus string) *Result {
	suggestions := SuggestTransfers(pool, state, e.cfg)
	if len(suggestions) == 0 {
		log.Info("no profitable swap found, keeping current squad")
		return e.unchangedResult(pool, state, solverStatus)
	}
	best := suggestions[0]
	log.Info("applying best greedy swap",
		zap.Int("out", best.Out.ID),
		zap.Int("in", best.In.ID),
		zap.Float64("gain", best.Gain),
	)

	ids := make([]int, 0, len(state.PlayerIDs))
	for _, id := range state.PlayerIDs {
		if id == best.Out.ID {
			ids = append(ids, best.In.ID)
		} else {
			ids = append(ids, id)
		}
	}
	players := resolveSquad(pool, ids)
	lineup, bench := pickLineup(players, e.cfg.Rules, state.Gameweek, e.cfg.Horizon, e.cfg.Gamma)
	captain, _ := pickCaptain(lineup, state.Gameweek, e.cfg.Horizon, e.cfg.Gamma)
	vice := pickVice(lineup, captain, state.Gameweek, e.cfg.Horizon, e.cfg.Gamma)
	hitCount := mathutil.MaxInt(0, 1-state.FreeTransfers)

	return assembleResult(lineup, bench, captain, vice,
		[]*squad.Player{best.Out}, []*squad.Player{best.In},
		hitCount, MethodHeuristic, solverStatus, pool, state, e.cfg)
}

// unchangedResult reports the current squad as-is, with baseline metrics.
func (e *Engine) unchangedResult(pool *squad.Pool, state *squad.State, solverStatus string) *Result {
	players := resolveSquad(pool, state.PlayerIDs)
	lineup, bench := pickLineup(players, e.cfg.Rules, state.Gameweek, e.cfg.Horizon, e.cfg.Gamma)
	captain, _ := pickCaptain(lineup, state.Gameweek, e.cfg.Horizon, e.cfg.Gamma)
	vice := pickVice(lineup, captain, state.Gameweek, e.cfg.Horizon, e.cfg.Gamma)

	return assembleResult(lineup, bench, captain, vice, nil, nil,
		0, MethodUnchanged, solverStatus, pool, state, e.cfg)
}

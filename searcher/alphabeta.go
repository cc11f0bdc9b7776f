package searcher

import (
	"context"
	"math"
	"othello/experiments/metrics"
	"othello/game"
	"time"

	"github.com/rs/zerolog/log"
)

type Option func(a *AlphaBeta)

// AlphaBeta is a depth-limited minimax search with alpha-beta pruning. It
// holds configuration only, so one value may serve concurrent searches.
type AlphaBeta struct {
	evaluator  game.Evaluator
	ordering   bool
	passMode   PassMode
	timeBudget time.Duration
	collect    bool
}

func WithEvaluator(evaluator game.Evaluator) Option {
	return func(a *AlphaBeta) {
		if evaluator != nil {
			a.evaluator = evaluator
		}
	}
}

func WithMoveOrdering(enabled bool) Option {
	return func(a *AlphaBeta) {
		a.ordering = enabled
	}
}

func WithPassMode(mode PassMode) Option {
	return func(a *AlphaBeta) {
		a.passMode = mode
	}
}

// WithTimeBudget bounds each search by wall-clock time on top of the caller's
// context.
func WithTimeBudget(budget time.Duration) Option {
	return func(a *AlphaBeta) {
		if budget > 0 {
			a.timeBudget = budget
		}
	}
}

func WithMetrics() Option {
	return func(a *AlphaBeta) {
		a.collect = true
	}
}

func NewAlphaBeta(options ...Option) *AlphaBeta {
	a := &AlphaBeta{ // Default values
		evaluator: game.PhaseAdaptiveEvaluator{Policy: game.DefaultPhasePolicy()},
		ordering:  true,
		passMode:  ForwardPass,
	}
	for _, option := range options {
		option(a)
	}
	return a
}

func (a *AlphaBeta) Evaluator() game.Evaluator {
	return a.evaluator
}

// Search maximises the evaluation for side. Found is false when side has no
// legal move at the root or depth is not positive. When the context expires
// the best root move completed so far is returned with Interrupted set.
func (a *AlphaBeta) Search(ctx context.Context, b game.Board, side game.Side, depth int) Result {
	if !side.Valid() {
		panic("search: invalid side " + side.String())
	}
	if a.timeBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeBudget)
		defer cancel()
	}

	collector := metrics.NewDummyCollector()
	if a.collect {
		collector = metrics.NewCollector()
	}
	collector.Start(depth, a.evaluator.Name())

	s := &search{AlphaBeta: a, ctx: ctx, side: side, metrics: collector}
	score, move, found := s.root(b, depth)
	if s.interrupted {
		collector.SetInterrupted()
	}

	result := Result{
		Move:        move,
		Found:       found,
		Score:       score,
		Interrupted: s.interrupted,
		Metrics:     collector.Complete(),
	}
	log.Debug().
		Str("side", side.String()).
		Int("depth", depth).
		Bool("found", found).
		Stringer("move", move).
		Float64("score", score).
		Int("nodes", result.Metrics.Nodes).
		Bool("interrupted", s.interrupted).
		Msg("search complete")
	return result
}

// search is the state of one Search call.
type search struct {
	*AlphaBeta
	ctx         context.Context
	side        game.Side
	metrics     metrics.Collector
	interrupted bool
}

func (s *search) stopped() bool {
	if !s.interrupted && s.ctx.Err() != nil {
		s.interrupted = true
	}
	return s.interrupted
}

func (s *search) leaf(b game.Board) float64 {
	s.metrics.AddLeaf()
	return s.evaluator.Evaluate(b, s.side)
}

func (s *search) root(b game.Board, depth int) (float64, game.Move, bool) {
	moves := b.LegalMoves(s.side)
	if depth <= 0 || len(moves) == 0 {
		return s.minimax(b, depth, true, math.Inf(-1), math.Inf(1)), game.Move{}, false
	}
	s.metrics.AddNode()
	s.order(moves, true)

	alpha, beta := math.Inf(-1), math.Inf(1)
	best := math.Inf(-1)
	var bestMove game.Move
	found := false
	for _, move := range moves {
		value := s.minimax(b.MustApply(move, s.side), depth-1, false, alpha, beta)
		if s.interrupted {
			break // value of a partially searched subtree
		}
		if !found || value > best {
			best, bestMove, found = value, move, true
		}
		alpha = math.Max(alpha, value)
	}

	if !found { // Interrupted inside the first subtree
		bestMove = moves[0]
		best = s.evaluator.Evaluate(b.MustApply(bestMove, s.side), s.side)
		found = true
	}
	return best, bestMove, found
}

func (s *search) minimax(b game.Board, depth int, maximizing bool, alpha, beta float64) float64 {
	s.metrics.AddNode()
	if depth <= 0 || s.stopped() {
		return s.leaf(b)
	}

	mover := s.side
	if !maximizing {
		mover = s.side.Opponent()
	}
	moves := b.LegalMoves(mover)
	if len(moves) == 0 {
		if s.passMode == EvaluatePass || !b.HasMoves(mover.Opponent()) {
			return s.leaf(b)
		}
		return s.minimax(b, depth, !maximizing, alpha, beta)
	}
	s.order(moves, maximizing)

	if maximizing {
		best := math.Inf(-1)
		for _, move := range moves {
			value := s.minimax(b.MustApply(move, mover), depth-1, false, alpha, beta)
			best = math.Max(best, value)
			alpha = math.Max(alpha, value)
			if beta <= alpha {
				s.metrics.AddCutoff()
				break
			}
		}
		return best
	}

	best := math.Inf(1)
	for _, move := range moves {
		value := s.minimax(b.MustApply(move, mover), depth-1, true, alpha, beta)
		best = math.Min(best, value)
		beta = math.Min(beta, value)
		if beta <= alpha {
			s.metrics.AddCutoff()
			break
		}
	}
	return best
}

func (s *search) order(moves []game.Move, maximizing bool) {
	if s.ordering {
		orderMoves(moves, maximizing)
	}
}

package agent

import (
	"context"
	"fmt"
	"othello/game"
	"othello/searcher"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// openingOccupancy is the largest disc count at which the opening squares are
// played without search.
const openingOccupancy = 4

// DefaultOpeningMoves are the squares next to the centre reachable on the
// first move.
func DefaultOpeningMoves() []game.Move {
	return []game.Move{{Row: 2, Col: 3}, {Row: 3, Col: 2}, {Row: 4, Col: 5}, {Row: 5, Col: 4}}
}

type Option func(a *AlphaBetaAgent)

// AlphaBetaAgent plays preferred squares at the start and searches to a
// phase-dependent depth afterwards.
type AlphaBetaAgent struct {
	searcher searcher.Searcher
	policy   game.PhasePolicy
	opening  []game.Move

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

func WithSearcher(s searcher.Searcher) Option {
	return func(a *AlphaBetaAgent) {
		a.searcher = s
	}
}

func WithPhasePolicy(policy game.PhasePolicy) Option {
	return func(a *AlphaBetaAgent) {
		a.policy = policy
	}
}

// WithOpeningMoves replaces the preferred opening squares. An empty list
// sends every decision through search.
func WithOpeningMoves(moves []game.Move) Option {
	return func(a *AlphaBetaAgent) {
		a.opening = append([]game.Move(nil), moves...)
	}
}

func WithSeed(seed uint64) Option {
	return func(a *AlphaBetaAgent) {
		a.rng = rand.New(rand.NewSource(seed))
	}
}

// New builds an agent. An invalid phase policy is a programming error and
// panics; configuration is validated before it gets here.
func New(options ...Option) *AlphaBetaAgent {
	a := &AlphaBetaAgent{ // Default values
		policy:  game.DefaultPhasePolicy(),
		opening: DefaultOpeningMoves(),
	}
	for _, option := range options {
		option(a)
	}
	if err := a.policy.Validate(); err != nil {
		panic(fmt.Sprintf("agent: %v", err))
	}
	if a.searcher == nil {
		evaluator := game.PhaseAdaptiveEvaluator{Policy: a.policy}
		a.searcher = searcher.NewAlphaBeta(searcher.WithEvaluator(evaluator))
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return a
}

func (a *AlphaBetaAgent) FindMove(ctx context.Context, b game.Board, side game.Side) (Decision, error) {
	if !side.Valid() {
		return Decision{Source: SourceNone}, fmt.Errorf("find move: %w: %s", game.ErrInvalidSide, side)
	}

	phase, depth := a.policy.PhaseAndDepth(b.Occupied())
	decision := Decision{Source: SourceNone, Phase: phase}

	moves := b.LegalMoves(side)
	if len(moves) == 0 {
		return decision, nil
	}

	if move, ok := a.openingMove(b, side); ok {
		decision.Move, decision.Found, decision.Source = move, true, SourceOpening
		return decision, nil
	}

	result := a.searcher.Search(ctx, b, side, depth)
	decision.Depth = depth
	decision.Score = result.Score
	decision.Metrics = result.Metrics
	if !result.Found {
		log.Warn().
			Str("side", side.String()).
			Int("depth", depth).
			Int("legal", len(moves)).
			Msg("search returned no move, playing first legal move")
		decision.Move, decision.Found, decision.Source = moves[0], true, SourceFallback
		return decision, nil
	}

	decision.Move, decision.Found, decision.Source = result.Move, true, SourceSearch
	return decision, nil
}

func (a *AlphaBetaAgent) openingMove(b game.Board, side game.Side) (game.Move, bool) {
	if b.Occupied() > openingOccupancy {
		return game.Move{}, false
	}
	var candidates []game.Move
	for _, m := range a.opening {
		if m.InBounds() && b.IsLegal(m.Row, m.Col, side) {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return game.Move{}, false
	}

	a.mu.Lock()
	i := a.rng.Intn(len(candidates))
	a.mu.Unlock()
	return candidates[i], true
}

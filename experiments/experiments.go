package experiments

import (
	"context"
	"fmt"
	"othello/agent"
	"othello/engine"
	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

const (
	NumGames   = 20 // Per match up
	TimeBudget = 2 * time.Second
)

// Experiment plays every match up a number of times. Colours alternate
// between games so that each agent plays both sides.
type Experiment struct {
	Name        string
	Configs     []metrics.AgentConfig
	MatchUps    [][2]metrics.AgentConfig
	Games       int
	Parallelism int
	Policy      game.PhasePolicy
}

var experiments = map[string]func(games int, policy game.PhasePolicy) Experiment{
	"evaluators": evaluatorExperiment,
	"pass-mode":  passModeExperiment,
	"ordering":   orderingExperiment,
}

// Named returns one of the predefined experiments.
func Named(name string, games int, policy game.PhasePolicy) (Experiment, error) {
	build, ok := experiments[name]
	if !ok {
		names := make([]string, 0, len(experiments))
		for n := range experiments {
			names = append(names, n)
		}
		slices.Sort(names)
		return Experiment{}, fmt.Errorf("unknown experiment %q, expected one of %v", name, names)
	}
	return build(games, policy), nil
}

// evaluatorExperiment pairs each evaluator against the phase-adaptive baseline.
func evaluatorExperiment(games int, policy game.PhasePolicy) Experiment {
	baseline := metrics.AgentConfig{ID: 0, Evaluator: game.PhaseAdaptiveEvaluatorName, Ordering: true, TimeBudget: TimeBudget}
	configs := []metrics.AgentConfig{
		{ID: 1, Evaluator: game.SimpleEvaluatorName, Ordering: true, TimeBudget: TimeBudget},
		{ID: 2, Evaluator: game.PositionalEvaluatorName, Ordering: true, TimeBudget: TimeBudget},
		{ID: 3, Evaluator: game.PhaseAdaptiveEvaluatorName, Ordering: true, TimeBudget: TimeBudget}, // Baseline equivalent
	}
	return against("evaluators", baseline, configs, games, policy)
}

// passModeExperiment measures forwarding forced passes against scoring them
// on the spot.
func passModeExperiment(games int, policy game.PhasePolicy) Experiment {
	baseline := metrics.AgentConfig{ID: 0, PassMode: searcher.EvaluatePass.String(), Ordering: true, TimeBudget: TimeBudget}
	configs := []metrics.AgentConfig{
		{ID: 1, PassMode: searcher.ForwardPass.String(), Ordering: true, TimeBudget: TimeBudget},
	}
	return against("pass-mode", baseline, configs, games, policy)
}

// orderingExperiment compares search effort with and without move ordering.
// Both sides play identically, only the node counts differ.
func orderingExperiment(games int, policy game.PhasePolicy) Experiment {
	configs := []metrics.AgentConfig{
		{ID: 1, Ordering: false},
		{ID: 2, Ordering: true},
	}
	matchUps := make([][2]metrics.AgentConfig, 0, len(configs))
	for _, config := range configs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{config, config})
	}
	return Experiment{Name: "ordering", Configs: configs, MatchUps: matchUps, Games: games, Policy: policy}
}

func against(name string, baseline metrics.AgentConfig, configs []metrics.AgentConfig, games int, policy game.PhasePolicy) Experiment {
	matchUps := make([][2]metrics.AgentConfig, 0, len(configs))
	for _, config := range configs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	return Experiment{
		Name:     name,
		Configs:  append(configs, baseline),
		MatchUps: matchUps,
		Games:    games,
		Policy:   policy,
	}
}

// NewAgent builds the agent an AgentConfig describes, with metrics enabled.
func NewAgent(config metrics.AgentConfig, policy game.PhasePolicy, seed uint64) (agent.Agent, error) {
	if config.Depths != ([4]int{}) {
		policy.Depths = config.Depths
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("agent %d: %w", config.ID, err)
	}
	evaluator, err := game.NewEvaluator(config.Evaluator, policy)
	if err != nil {
		return nil, fmt.Errorf("agent %d: %w", config.ID, err)
	}
	passMode, err := searcher.ParsePassMode(config.PassMode)
	if err != nil {
		return nil, fmt.Errorf("agent %d: %w", config.ID, err)
	}

	options := []searcher.Option{
		searcher.WithEvaluator(evaluator),
		searcher.WithPassMode(passMode),
		searcher.WithMoveOrdering(config.Ordering),
		searcher.WithMetrics(),
	}
	if config.TimeBudget > 0 {
		options = append(options, searcher.WithTimeBudget(config.TimeBudget))
	}
	return agent.New(
		agent.WithSearcher(searcher.NewAlphaBeta(options...)),
		agent.WithPhasePolicy(policy),
		agent.WithSeed(seed),
	), nil
}

type scheduledGame struct {
	id           int
	black, white metrics.AgentConfig
}

// schedule lays out every game, alternating colours within a match up.
func (e Experiment) schedule() []scheduledGame {
	var games []scheduledGame
	for _, matchUp := range e.MatchUps {
		for i := 0; i < e.Games; i++ {
			black, white := matchUp[0], matchUp[1]
			if i%2 == 1 {
				black, white = white, black
			}
			games = append(games, scheduledGame{id: len(games) + 1, black: black, white: white})
		}
	}
	return games
}

// Run plays the experiment's games concurrently and returns their records
// ordered by game.
func (e Experiment) Run(ctx context.Context) ([]metrics.GameRecord, []metrics.MoveRecord, error) {
	games := e.schedule()
	parallelism := e.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	log.Info().Msgf("starting %s experiment with %d games...", e.Name, len(games))

	gameRecords := make([]metrics.GameRecord, len(games))
	moveRecords := make([][]metrics.MoveRecord, len(games))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, sg := range games {
		g.Go(func() error {
			black, err := NewAgent(sg.black, e.Policy, uint64(sg.id)<<1)
			if err != nil {
				return err
			}
			white, err := NewAgent(sg.white, e.Policy, uint64(sg.id)<<1|1)
			if err != nil {
				return err
			}

			winner, gameMetric, moveMetrics, err := engine.LocalEngine(black, white).Run(ctx)
			if err != nil {
				return fmt.Errorf("game %d: %w", sg.id, err)
			}

			gameRecords[i] = metrics.GameRecord{
				ID:         sg.id,
				Black:      sg.black.ID,
				White:      sg.white.ID,
				GameMetric: gameMetric,
			}
			for _, mm := range moveMetrics {
				moveRecords[i] = append(moveRecords[i], metrics.MoveRecord{Game: sg.id, MoveMetric: mm})
			}

			log.Info().Msgf("completed game %d of %d between black=%d and white=%d with winner: %s",
				sg.id, len(games), sg.black.ID, sg.white.ID, winner)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var moves []metrics.MoveRecord
	for _, records := range moveRecords {
		moves = append(moves, records...)
	}
	log.Info().Msgf("completed %s experiment", e.Name)
	return gameRecords, moves, nil
}

// RunAndStore runs the experiment and writes its CSV files under root. It
// returns the directory holding them.
func (e Experiment) RunAndStore(ctx context.Context, root string) (string, error) {
	gameRecords, moveRecords, err := e.Run(ctx)
	if err != nil {
		return "", err
	}

	writer, err := metrics.NewWriter(root, e.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(e.Configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}

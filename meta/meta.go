// meta/meta.go
package meta

import (
	"errors"
	"fmt"
	"os"
	"othello/agent"
	"othello/game"
	"othello/player"
	"othello/searcher"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the process-wide configuration. It is read once at startup and
// handed to the components that need it.
type Config struct {
	Server     Server           `yaml:"server"`
	Search     Search           `yaml:"search"`
	Phases     game.PhasePolicy `yaml:"phases"`
	Opening    []game.Move      `yaml:"opening"` // An empty list disables the opening squares
	Polling    Polling          `yaml:"polling"`
	Experiment Experiment       `yaml:"experiment"`
}

type Server struct {
	URL     string        `yaml:"url"`
	Session string        `yaml:"session"`
	Player  string        `yaml:"player"`
	Timeout time.Duration `yaml:"timeout"`
	Listen  string        `yaml:"listen"`
}

type Search struct {
	Evaluator  string        `yaml:"evaluator"`
	PassMode   string        `yaml:"pass_mode"`
	Ordering   bool          `yaml:"ordering"`
	TimeBudget time.Duration `yaml:"time_budget"` // Zero means unbounded
}

type Polling struct {
	Turn  time.Duration `yaml:"turn"`
	Round time.Duration `yaml:"round"`
	Bench time.Duration `yaml:"bench"`
	Retry time.Duration `yaml:"retry"`
}

type Experiment struct {
	Name        string `yaml:"name"`
	Games       int    `yaml:"games"`
	Parallelism int    `yaml:"parallelism"`
	Output      string `yaml:"output"`
}

func Default() Config {
	intervals := player.DefaultIntervals()
	return Config{
		Server: Server{
			URL:     "http://localhost:8000",
			Session: "othello",
			Player:  "alphabeta",
			Timeout: 10 * time.Second,
			Listen:  ":8000",
		},
		Search: Search{
			Evaluator: game.PhaseAdaptiveEvaluatorName,
			PassMode:  searcher.ForwardPass.String(),
			Ordering:  true,
		},
		Phases:  game.DefaultPhasePolicy(),
		Opening: agent.DefaultOpeningMoves(),
		Polling: Polling{
			Turn:  intervals.Turn,
			Round: intervals.Round,
			Bench: intervals.Bench,
			Retry: intervals.Retry,
		},
		Experiment: Experiment{
			Name:   "evaluators",
			Games:  20,
			Output: "experiments",
		},
	}
}

// Load reads a YAML file over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		c := Default()
		return c, c.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	var errs []error
	if err := c.Phases.Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := game.NewEvaluator(c.Search.Evaluator, c.Phases); err != nil {
		errs = append(errs, err)
	}
	if _, err := searcher.ParsePassMode(c.Search.PassMode); err != nil {
		errs = append(errs, err)
	}
	if c.Search.TimeBudget < 0 {
		errs = append(errs, fmt.Errorf("time budget must not be negative, got %v", c.Search.TimeBudget))
	}
	for _, m := range c.Opening {
		if !m.InBounds() {
			errs = append(errs, fmt.Errorf("opening square %v: %w", m, game.ErrInvalidCoordinate))
		}
	}
	for name, d := range map[string]time.Duration{
		"turn": c.Polling.Turn, "round": c.Polling.Round, "bench": c.Polling.Bench, "retry": c.Polling.Retry,
		"server timeout": c.Server.Timeout,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s interval must be positive, got %v", name, d))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c Config) Searcher() (*searcher.AlphaBeta, error) {
	evaluator, err := game.NewEvaluator(c.Search.Evaluator, c.Phases)
	if err != nil {
		return nil, err
	}
	passMode, err := searcher.ParsePassMode(c.Search.PassMode)
	if err != nil {
		return nil, err
	}
	return searcher.NewAlphaBeta(
		searcher.WithEvaluator(evaluator),
		searcher.WithPassMode(passMode),
		searcher.WithMoveOrdering(c.Search.Ordering),
		searcher.WithTimeBudget(c.Search.TimeBudget),
	), nil
}

// Agent builds the configured agent. A zero seed draws one from the clock.
func (c Config) Agent(seed uint64) (*agent.AlphaBetaAgent, error) {
	s, err := c.Searcher()
	if err != nil {
		return nil, err
	}
	options := []agent.Option{
		agent.WithSearcher(s),
		agent.WithPhasePolicy(c.Phases),
		agent.WithOpeningMoves(c.Opening),
	}
	if seed != 0 {
		options = append(options, agent.WithSeed(seed))
	}
	return agent.New(options...), nil
}

func (c Config) Intervals() player.Intervals {
	return player.Intervals{
		Turn:  c.Polling.Turn,
		Round: c.Polling.Round,
		Bench: c.Polling.Bench,
		Retry: c.Polling.Retry,
	}
}

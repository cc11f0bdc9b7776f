package metrics

import (
	"othello/game"
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Evaluator   string
	Depth       int
	Duration    time.Duration
	Nodes       int
	Leaves      int
	Cutoffs     int
	Interrupted bool
}

type MoveMetric struct {
	Step   int
	Player game.Side
	Move   game.Move
	Pass   bool
	Source string // How the agent picked the move
	Score  float64
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Side
	Winner         game.Side // Empty on a draw
	BlackDiscs     int
	WhiteDiscs     int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	Passes         int
}

type Collector interface {
	Start(depth int, evaluator string)
	AddNode()
	AddLeaf()
	AddCutoff()
	SetInterrupted()
	Complete() SearchMetric
}

type collector struct {
	depth       int
	evaluator   string
	startTime   time.Time
	nodes       atomic.Int64
	leaves      atomic.Int64
	cutoffs     atomic.Int64
	interrupted atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depth int, evaluator string) {
	m.startTime = time.Now()
	m.depth = depth
	m.evaluator = evaluator
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) SetInterrupted() {
	m.interrupted.Store(true)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Evaluator:   m.evaluator,
		Depth:       m.depth,
		Duration:    time.Since(m.startTime),
		Nodes:       int(m.nodes.Load()),
		Leaves:      int(m.leaves.Load()),
		Cutoffs:     int(m.cutoffs.Load()),
		Interrupted: m.interrupted.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth int, evaluator string) {}
func (m *dummyCollector) AddNode()                          {}
func (m *dummyCollector) AddLeaf()                          {}
func (m *dummyCollector) AddCutoff()                        {}
func (m *dummyCollector) SetInterrupted()                   {}
func (m *dummyCollector) Complete() SearchMetric            { return SearchMetric{} }

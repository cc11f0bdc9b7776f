package experiments

import (
	"context"
	"encoding/csv"
	"os"
	"othello/experiments/metrics"
	"othello/game"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var shallow = [4]int{1, 1, 1, 2}

func smallExperiment() Experiment {
	a := metrics.AgentConfig{ID: 1, Evaluator: game.SimpleEvaluatorName, Ordering: true, Depths: shallow}
	b := metrics.AgentConfig{ID: 2, PassMode: "evaluate", Depths: shallow}
	return Experiment{
		Name:        "small",
		Configs:     []metrics.AgentConfig{a, b},
		MatchUps:    [][2]metrics.AgentConfig{{a, b}},
		Games:       3,
		Parallelism: 2,
		Policy:      game.DefaultPhasePolicy(),
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestRun(t *testing.T) {
	gameRecords, moveRecords, err := smallExperiment().Run(context.Background())
	require.NoError(t, err)
	require.Len(t, gameRecords, 3)

	moves := map[int]int{}
	for _, mr := range moveRecords {
		moves[mr.Game]++
	}
	for i, gr := range gameRecords {
		require.Equal(t, i+1, gr.ID)
		require.Equal(t, gr.TotalMoves+gr.Passes, moves[gr.ID])
		require.Equal(t, gr.BlackDiscs+gr.WhiteDiscs, gr.TotalMoves+4)
	}

	// Colours alternate within a match up.
	require.Equal(t, [2]int{1, 2}, [2]int{gameRecords[0].Black, gameRecords[0].White})
	require.Equal(t, [2]int{2, 1}, [2]int{gameRecords[1].Black, gameRecords[1].White})
	require.Equal(t, [2]int{1, 2}, [2]int{gameRecords[2].Black, gameRecords[2].White})
}

func TestRunAndStore(t *testing.T) {
	dir, err := smallExperiment().RunAndStore(context.Background(), t.TempDir())
	require.NoError(t, err)

	configs := readCSV(t, filepath.Join(dir, "agent_configs.csv"))
	require.Len(t, configs, 3)
	require.Equal(t, []string{"id", "evaluator", "pass_mode", "ordering", "time_budget", "depths"}, configs[0])
	require.Equal(t, "1 1 1 2", configs[1][5])

	games := readCSV(t, filepath.Join(dir, "game_records.csv"))
	require.Len(t, games, 4)
	require.Equal(t, "black", games[1][3])

	moves := readCSV(t, filepath.Join(dir, "move_records.csv"))
	require.Greater(t, len(moves), 3*9, "The shortest game has nine moves")
	require.Len(t, moves[0], 15)
}

func TestNewAgent(t *testing.T) {
	policy := game.DefaultPhasePolicy()

	_, err := NewAgent(metrics.AgentConfig{Evaluator: "nope"}, policy, 1)
	require.Error(t, err)

	_, err = NewAgent(metrics.AgentConfig{PassMode: "skip"}, policy, 1)
	require.Error(t, err)

	_, err = NewAgent(metrics.AgentConfig{Depths: [4]int{1, 0, 1, 1}}, policy, 1)
	require.Error(t, err)

	a, err := NewAgent(metrics.AgentConfig{Depths: shallow}, policy, 1)
	require.NoError(t, err)
	d, err := a.FindMove(context.Background(), game.NewBoard(), game.White)
	require.NoError(t, err)
	require.True(t, d.Found)
	require.Equal(t, 1, d.Depth)
	require.Positive(t, d.Metrics.Nodes, "Experiment agents collect metrics")
}

func TestNamed(t *testing.T) {
	for _, name := range []string{"evaluators", "pass-mode", "ordering"} {
		e, err := Named(name, 2, game.DefaultPhasePolicy())
		require.NoError(t, err)
		require.Equal(t, name, e.Name)
		require.NotEmpty(t, e.MatchUps)
		require.Len(t, e.schedule(), 2*len(e.MatchUps))
	}

	_, err := Named("nope", 2, game.DefaultPhasePolicy())
	require.Error(t, err)
}

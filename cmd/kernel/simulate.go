package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-kernel/internal/core"
	"github.com/vovakirdan/tui-kernel/internal/demos/apples"
	"github.com/vovakirdan/tui-kernel/internal/logging"
	"github.com/vovakirdan/tui-kernel/internal/registry"
)

var (
	flagTicks  int
	flagMoves  string
	flagWidth  int
	flagHeight int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <game>",
	Short: "Run a scripted game without a terminal",
	Long: `Run a game headless from a move script and print what happened.

Each character of --moves is one tick: U, D, L, R move, P toggles pause
and any other character idles. Once the script runs out the game idles
until --ticks is reached. Logs go to stderr.

The final snapshot hash only depends on the seed, the script, the screen
size and the game config, so two runs with the same inputs print the same
hash.

Examples:
  kernel simulate apples --moves RRRRDDDD --seed 42
  kernel simulate apples --ticks 200 --strategy distance --log-level debug`,
	Args: cobra.ExactArgs(1),
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 0, "Ticks to run (default: length of --moves)")
	simulateCmd.Flags().StringVar(&flagMoves, "moves", "", "Move script, one character per tick")
	simulateCmd.Flags().IntVar(&flagWidth, "width", 40, "Virtual screen width")
	simulateCmd.Flags().IntVar(&flagHeight, "height", 16, "Virtual screen height")
	simulateCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	simulateCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	simulateCmd.Flags().StringVar(&flagStrategy, "strategy", "", "Collision strategy override")
}

func runSimulate(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		os.Exit(1)
	}
	kind, err := parseStrategy(flagStrategy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(os.Stderr, flagLogLevel, "simulate")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if gameID == apples.ID {
		apples.SetConfigPath(flagConfig)
		apples.SetDifficultyPreset(flagDifficulty)
		apples.SetLogger(logger)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	applyStrategy(game, kind)

	seed := flagSeed
	if seed == 0 {
		seed = 1
	}
	game.Reset(core.RuntimeConfig{
		ScreenW:  flagWidth,
		ScreenH:  flagHeight,
		TickRate: flagFPS,
		Seed:     seed,
	})

	script := core.ParseActions(flagMoves)
	ticks := flagTicks
	if ticks <= 0 {
		ticks = len(script)
	}

	var state core.GameState
	for i := 0; i < ticks; i++ {
		in := core.NewInputFrame()
		if i < len(script) {
			in = script[i]
		}
		res := game.Step(in)
		state = res.State
		if res.Collisions > 0 {
			fmt.Printf("tick %4d  collisions %d  score %d\n", i+1, res.Collisions, state.Score)
		}
		if state.GameOver {
			break
		}
	}

	fmt.Println()
	fmt.Printf("Game:      %s\n", game.Title())
	fmt.Printf("Seed:      %d\n", seed)
	fmt.Printf("Score:     %d\n", state.Score)
	if st, ok := game.(registry.Stats); ok {
		stats := st.Stats()
		fmt.Printf("Ticks:     %d\n", stats.Ticks)
		fmt.Printf("Moves:     %d\n", stats.Moves)
		fmt.Printf("Contacts:  %d\n", stats.Collisions)
		fmt.Printf("Strategy:  %s\n", stats.Strategy)
		fmt.Printf("Snapshot:  %016x\n", stats.SnapshotHash)
	}
	if state.GameOver {
		fmt.Println("Result:    game over")
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-kernel/internal/core"
	"github.com/vovakirdan/tui-kernel/internal/demos/apples"
	"github.com/vovakirdan/tui-kernel/internal/platform/tui"
	"github.com/vovakirdan/tui-kernel/internal/registry"
	"github.com/vovakirdan/tui-kernel/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagStrategy   string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  WASD/Arrows  - Move
  P            - Pause
  R            - Restart (after game over)
  Ctrl+S       - Screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - More apples, no walls
  normal - Config defaults
  hard   - Fewer apples, exact collisions only
  fixed  - No score progression

Strategies:
  exact, aabb, distance, delegated

Examples:
  kernel play apples
  kernel play apples --difficulty easy
  kernel play apples --strategy distance
  kernel play apples --config ./my-apples.yaml --log-file ./kernel.log`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagStrategy, "strategy", "", "Collision strategy override")
}

// terminalConfig builds the runtime config from the terminal size and the
// global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'kernel list' to see available games.")
		os.Exit(1)
	}
	kind, err := parseStrategy(flagStrategy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := openLogger()
	defer closeLog()

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

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	runErr := tui.Run(game, store, terminalConfig(), logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

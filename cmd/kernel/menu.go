package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-kernel/internal/demos/apples"
	"github.com/vovakirdan/tui-kernel/internal/platform/tui"
	"github.com/vovakirdan/tui-kernel/internal/registry"
	"github.com/vovakirdan/tui-kernel/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the kernel with a game picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a game and left/right to pick the collision
strategy. After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right/h/l  - Change collision strategy
  Enter/Space     - Select game
  Tab             - Scoreboard
  Q               - Quit

Examples:
  kernel menu
  kernel menu --fps 20
  kernel menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	logger, closeLog := openLogger()
	defer closeLog()
	apples.SetLogger(logger)

	cfg := terminalConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		if menuResult.GameID == "" {
			break
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}
		applyStrategy(game, menuResult.Strategy)

		cfg.Seed = time.Now().UnixNano()
		if err := tui.Run(game, store, cfg, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}

	if store != nil {
		store.Close()
	}
}

// kernel runs the terminal game kernel and its demo games.
//
// Usage:
//
//	kernel list              - List available games
//	kernel play <game>       - Play a game
//	kernel menu              - Start menu to pick games interactively
//	kernel serve             - Start SSH server for remote play
//	kernel scores <game>     - Show high scores and recent runs
//	kernel simulate <game>   - Run a scripted game without a terminal
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.tui-kernel/scores.db)
//	--log-file <path>    - Write logs to a file while the TUI owns the terminal
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	_ "github.com/vovakirdan/tui-kernel/internal/demos/apples"
	"github.com/vovakirdan/tui-kernel/internal/logging"
	"github.com/vovakirdan/tui-kernel/internal/physics"
)

var (
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "kernel",
	Short: "TUI Kernel - entity/component games in your terminal",
	Long: `TUI Kernel runs small games built from entities, components and
pluggable collision strategies, directly in your terminal.

Available commands:
  list      - Show all available games
  play      - Play a specific game directly
  menu      - Interactive game picker menu
  serve     - Start SSH server for remote play
  scores    - View high scores and recent runs
  simulate  - Run a scripted game headless

Examples:
  kernel list
  kernel play apples --strategy distance
  kernel menu
  kernel serve --ssh :2222
  kernel simulate apples --moves RRRDDD`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tui-kernel/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file (interactive commands)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
}

// openLogger returns the logger for interactive commands. Without
// --log-file everything is dropped, since the TUI owns the terminal.
func openLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return logging.Discard(), func() {}
	}
	logger, f, err := logging.OpenFile(flagLogFile, flagLogLevel, "kernel")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return logging.Discard(), func() {}
	}
	return logger, func() { f.Close() }
}

func parseStrategy(s string) (physics.Kind, error) {
	if s == "" {
		return "", nil
	}
	for _, k := range physics.Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	names := make([]string, 0, len(physics.Kinds()))
	for _, k := range physics.Kinds() {
		names = append(names, string(k))
	}
	return "", fmt.Errorf("unknown strategy %q (want one of %s)", s, strings.Join(names, ", "))
}

// strategySetter is implemented by games that let the caller pick the
// collision strategy.
type strategySetter interface {
	SetStrategy(physics.Kind)
}

func applyStrategy(game any, kind physics.Kind) {
	if kind == "" {
		return
	}
	if s, ok := game.(strategySetter); ok {
		s.SetStrategy(kind)
	}
}

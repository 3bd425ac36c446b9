package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-kernel/internal/registry"
	"github.com/vovakirdan/tui-kernel/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long: `Shows a list of all games registered with the kernel, with how often
each was played when the scores database is available.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	played := playedStats()

	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "ID", "Title", "Stats")
	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "--", "-----", "-----")
	for _, g := range games {
		summary := storage.GameStats{}.Summary()
		if gs, ok := played[g.ID]; ok {
			summary = gs.Summary()
		}
		fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, g.ID, g.Title, summary)
	}

	fmt.Println()
	fmt.Println("Run 'kernel play <id>' to play a game.")
}

// playedStats reads per-game stats. The list works without a database, so
// any error yields an empty map.
func playedStats() map[string]*storage.GameStats {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil
	}
	defer store.Close()
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return nil
	}
	return stats
}

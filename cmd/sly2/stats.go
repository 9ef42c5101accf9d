package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/animalstyletaco/Sly2Decomp/internal/config"
	"github.com/animalstyletaco/Sly2Decomp/internal/storage"
)

var flagStatsLimit int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recorded session statistics",
	Long: `Shows the most recent engine runs: frames presented, exchange
accept/reject counts, and timing.

Examples:
  sly2 stats
  sly2 stats --limit 5`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagStatsLimit, "limit", 10, "Number of sessions to show")
}

// defaultConfigForQuery builds a config for read-only backend queries.
func defaultConfigForQuery() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	sessions, err := store.RecentSessions(flagStatsLimit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet. Run 'sly2 run' first.")
		return nil
	}

	fmt.Println(styled(headerStyle, "Recent sessions"))
	fmt.Println()
	fmt.Printf("  %-19s %-9s %9s %9s %9s %9s %9s\n",
		"when", "backend", "presented", "accepted", "rejected", "timeouts", "secs")
	for _, s := range sessions {
		fmt.Printf("  %-19s %-9s %9d %9d %9d %9d %9.1f\n",
			s.CreatedAt.Format("2006-01-02 15:04:05"),
			s.Backend,
			s.FramesPresented, s.FramesAccepted, s.FramesRejected,
			s.TakeTimeouts, s.DurationSecs,
		)
	}

	total, err := store.TotalFrames("")
	if err == nil {
		fmt.Println()
		fmt.Printf("  %s\n", styled(dimStyle, fmt.Sprintf("%d frames presented in total", total)))
	}
	return nil
}

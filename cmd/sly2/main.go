// sly2 is the reimplemented engine runtime: it hosts the simulated game
// loop, the frame exchange, and the native presentation window.
//
// Usage:
//
//	sly2 run                 - Run the engine
//	sly2 displays            - List attached screens and video modes
//	sly2 stats               - Show recorded session statistics
//
// Global flags:
//
//	--config <path> - Path to graphics config YAML
//	--db <path>     - Session database path (default: ~/.sly2/sessions.db)
//	--verbose       - Enable debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import backends to register them
	_ "github.com/animalstyletaco/Sly2Decomp/internal/render/headless"
	_ "github.com/animalstyletaco/Sly2Decomp/internal/x11"
)

var (
	// Global flags
	flagConfig  string
	flagDBPath  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sly2",
	Short: "Sly 2 engine runtime",
	Long: `sly2 runs the reimplemented engine: a fixed-rate simulation thread
feeding frame command chains to a native presentation window.

Available commands:
  run       - Run the engine
  displays  - List attached screens and their video modes
  stats     - Show recorded session statistics

Examples:
  sly2 run
  sly2 run --backend headless --frames 600
  sly2 run --mode fullscreen --screen 1
  sly2 displays
  sly2 stats`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to graphics config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.sly2/sessions.db", "Path to session database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(displaysCmd)
	rootCmd.AddCommand(statsCmd)
}

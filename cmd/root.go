package cmd

import (
	"fmt"
	"os"

	"github.com/killallgit/waveform-comments/pkg/config"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "waveform-comments",
	Short: "Waveform Comments API server and tools",
	Long: `Waveform Comments - time-anchored comments for audio tracks

Listeners attach comments to a point in a track; each comment is drawn as a
marker region on the track's waveform.

Features:
  • Comment and marker API backed by SQLite
  • Bearer tokens for comment authors
  • Headless annotation sessions driven from the command line`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
}

// loadConfig loads the configuration for commands that need it.
// version and help never call it.
func loadConfig() (*config.Config, error) {
	if err := config.Init(); err != nil {
		return nil, fmt.Errorf("error initializing config: %w", err)
	}
	return config.GetConfig()
}

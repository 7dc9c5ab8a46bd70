// Root command for the taskboard CLI.
package main

import (
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagBackend   string
	flagDebug     bool
	flagJSON      bool
)

var rootCmd = &cobra.Command{
	Use:   "taskboard",
	Short: "Taskboard is an in-memory work-item tracker",
	Long: `Taskboard tracks work items across a four-column board
(new, active, blocked, completed) with assignable team members.
State lives in process memory only and lasts for one session.`,
	// Do not print usage on errors returned by subcommands.
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "board backend: memory or sqlite (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "write debug logs under the config dir")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(boardCmd)
}

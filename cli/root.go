// Package cli defines the greengarden command tree.
package cli

import (
	"fmt"
	"os"

	"greengarden/config"

	"github.com/spf13/cobra"
)

var version = "dev" // set via ldflags at build time

var rootCmd = &cobra.Command{
	Use:   "greengarden",
	Short: "Conversational ordering and table booking for Green Garden",
	Long: `greengarden runs the restaurant assistant: a chat API that takes food
orders and table reservations, backed by MongoDB and Redis.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadConfig()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(adminTokenCmd)
	rootCmd.AddCommand(hashPasswordCmd)
}

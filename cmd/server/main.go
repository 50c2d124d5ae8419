// Package main is the entry point for the stat block API
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/statblock-api/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "statblock-api",
	Short: "Stat block API server",
	Long: `statblock-api stores adversary and environment stat blocks and serves them
over gRPC and HTTP as records, formatted text and normalized exports.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(client.ClientCmd)
}

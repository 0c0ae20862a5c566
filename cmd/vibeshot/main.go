package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/vibeshot/core/cmd/vibeshot/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vibeshot",
		Short: "VibeShot photo gallery",
		Long:  `VibeShot is a local-first social photo gallery: publish compressed images with captions, like, comment, follow, and browse a filterable, searchable feed. Everything persists on this machine.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewAuthCommands()...)
	rootCmd.AddCommand(commands.NewPostCommands()...)
	rootCmd.AddCommand(commands.NewFeedCommands()...)
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}

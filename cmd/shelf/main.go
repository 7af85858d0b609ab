// Package main is the entry point for the shelf CLI.
package main

import (
	"fmt"
	"os"

	"github.com/jacksmith/shelf/internal/cli"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shelf",
	Short: "shelf - a personal bookshelf",
	Long: `shelf keeps track of the books you are reading and the ones you have finished.

Books live in a .shelf/ directory created by "shelf init". Each book has a
title, an author, a year and a read-status. "shelf serve" exposes the same
shelf as a JSON API.`,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("shelf version {{.Version}}\n")
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jacksmith/shelf/internal/cli"
	"github.com/jacksmith/shelf/internal/model"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for shelf.

To load completions:

Bash:
  $ source <(shelf completion bash)

Zsh:
  $ shelf completion zsh > "${fpath[1]}/_shelf"

Fish:
  $ shelf completion fish | source
`,
}

var completionBashCmd = &cobra.Command{
	Use:   "bash",
	Short: "Generate bash completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenBashCompletion(os.Stdout)
	},
}

var completionZshCmd = &cobra.Command{
	Use:   "zsh",
	Short: "Generate zsh completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenZshCompletion(os.Stdout)
	},
}

var completionFishCmd = &cobra.Command{
	Use:   "fish",
	Short: "Generate fish completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenFishCompletion(os.Stdout, true)
	},
}

func init() {
	completionCmd.AddCommand(completionBashCmd)
	completionCmd.AddCommand(completionZshCmd)
	completionCmd.AddCommand(completionFishCmd)
	rootCmd.AddCommand(completionCmd)
}

// completeBookIDs completes book IDs, described by status and title.
func completeBookIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	sh, err := openShelf()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer sh.Close()

	var completions []string
	for _, b := range sh.books.Books() {
		id := model.FormatID(b.ID)
		if strings.HasPrefix(id, toComplete) {
			completions = append(completions, fmt.Sprintf("%s\t%s: %s", id, b.Status(), cli.Truncate(b.Title, 40)))
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

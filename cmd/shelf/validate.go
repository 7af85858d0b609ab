package main

import (
	"fmt"

	"github.com/jacksmith/shelf/internal/cli"
	"github.com/jacksmith/shelf/internal/ops"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:     "validate",
	Aliases: []string{"check"},
	Short:   "Check data integrity",
	Long: `Check the stored books for integrity issues.

Checks for:
- Duplicate IDs
- Invalid (non-positive) IDs
- Missing titles

Use --fix to give books with duplicate or invalid IDs a fresh ID.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

var validateFix bool

func init() {
	validateCmd.Flags().BoolVar(&validateFix, "fix", false, "auto-repair fixable issues")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	sh, err := openShelf()
	if err != nil {
		return err
	}
	defer sh.Close()

	issues := sh.books.Check()
	if len(issues) == 0 {
		fmt.Println(cli.Green("No issues found."))
		return nil
	}

	if !validateFix {
		fmt.Printf("Found %d issue(s):\n\n", len(issues))
		printIssues(issues)
		return fmt.Errorf("%d issue(s) found (run with --fix to repair IDs)", len(issues))
	}

	fmt.Printf("Found %d issue(s). Attempting to fix...\n\n", len(issues))

	fixes, err := sh.books.Repair()
	if err != nil {
		return err
	}
	if len(fixes) > 0 {
		fmt.Println("Fixes applied:")
		for _, f := range fixes {
			fmt.Printf("  %d: %s\n", f.BookID, f.Description)
		}
		fmt.Println()
	}

	remaining := sh.books.Check()
	if len(remaining) == 0 {
		fmt.Println(cli.Green("All fixable issues resolved."))
		return nil
	}

	fmt.Printf("Remaining issues (%d) that cannot be auto-fixed:\n\n", len(remaining))
	printIssues(remaining)
	return fmt.Errorf("%d issue(s) remain", len(remaining))
}

func printIssues(issues []ops.Issue) {
	for _, i := range issues {
		fmt.Printf("%d %s: %s\n", i.BookID, formatIssueType(i.Type), i.Message)
	}
}

func formatIssueType(t ops.IssueType) string {
	switch t {
	case ops.IssueDuplicateID, ops.IssueInvalidID:
		return cli.Red("[" + string(t) + "]")
	default:
		return cli.Yellow("[" + string(t) + "]")
	}
}

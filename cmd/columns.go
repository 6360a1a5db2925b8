package cmd

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"
	"quizdb/quiz"
)

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "List the normalized column headers of a quiz sheet",
	Long: `Load a quiz sheet and print its column headers after normalization.
Canonical headers are marked with "*".`,
	Example: `
  quizdb columns -i questions.csv
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := loadInput()
		if err != nil {
			return err
		}
		return printColumns(cmd.OutOrStdout(), input.result.Table)
	},
}

func printColumns(w io.Writer, table quiz.Table) error {
	canonical := quiz.CanonicalHeaders()
	for i, header := range table.Headers {
		marker := " "
		if slices.Contains(canonical, header) {
			marker = "*"
		}
		if _, err := fmt.Fprintf(w, "%s %2d %s\n", marker, i+1, header); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(columnsCmd)

	addInputFlags(columnsCmd)
}

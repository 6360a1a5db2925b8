package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"quizdb/quiz"
)

var searchCompact bool

var searchCmd = &cobra.Command{
	Use:   "search [terms...]",
	Short: "Search a quiz sheet and print the matching questions",
	Long: `Load a quiz sheet, keep the rows whose question, choices, answer and category
contain every search term (case-insensitive), and print them as text blocks.

Terms are separated by whitespace, including the full-width space. Without
terms every row matches.`,
	Example: `
  # Questions mentioning both terms
  quizdb search -i questions.csv ネットワーク TCP

  # One line per hit
  quizdb search -i questions.csv --compact TCP

  # Shift_JIS encoded source
  quizdb search -i legacy.csv --encoding shift_jis 暗号
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := loadInput()
		if err != nil {
			return err
		}
		return printSearch(cmd.OutOrStdout(), input.resolver, input.result.Table, quiz.ParseTerms(queryFromArgs(args)), searchCompact)
	},
}

func printSearch(w io.Writer, resolver quiz.Resolver, table quiz.Table, terms []string, compact bool) error {
	hits := resolver.Filter(table, terms)
	if _, err := fmt.Fprintf(w, "Hits: %d / %d\n", hits.Len(), table.Len()); err != nil {
		return err
	}
	for i := 0; i < hits.Len(); i++ {
		row := hits.Row(i)
		var err error
		if compact {
			_, err = fmt.Fprintf(w, "%d\t%s\n", i+1, resolver.RowText(row))
		} else {
			_, err = fmt.Fprintf(w, "[%d]\n%s\n", i+1, resolver.BuildTextBlock(row))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(searchCmd)

	addInputFlags(searchCmd)
	searchCmd.Flags().BoolVar(&searchCompact, "compact", false, "Print one line of searchable text per hit")
}

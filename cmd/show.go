package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"quizdb/quiz"
)

var (
	showRecord int
	showField  string
)

var showCmd = &cobra.Command{
	Use:   "show [terms...]",
	Short: "Show a single question from the search hits",
	Long: `Load a quiz sheet, apply the optional search terms, and print the record with
the given 1-based number among the hits.`,
	Example: `
  # Show the first question of the sheet
  quizdb show -i questions.csv

  # Show the third hit for "TCP"
  quizdb show -i questions.csv --record 3 TCP

  # Print only the answer of the first hit, e.g. for scripting
  quizdb show -i questions.csv --field answer TCP
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := loadInput()
		if err != nil {
			return err
		}
		terms := quiz.ParseTerms(queryFromArgs(args))
		if showField != "" {
			return printRecordField(cmd.OutOrStdout(), input.resolver, input.result.Table, terms, showRecord, showField)
		}
		return printRecord(cmd.OutOrStdout(), input.resolver, input.result.Table, terms, showRecord)
	},
}

// selectHit returns the hit with the given 1-based number and the hit count.
func selectHit(resolver quiz.Resolver, table quiz.Table, terms []string, number int) (quiz.Row, int, error) {
	hits := resolver.Filter(table, terms)
	if hits.Len() == 0 {
		return quiz.Row{}, 0, fmt.Errorf("no records match %q", strings.Join(terms, " "))
	}
	if number < 1 || number > hits.Len() {
		return quiz.Row{}, hits.Len(), fmt.Errorf("record %d out of range (1-%d)", number, hits.Len())
	}
	return hits.Row(number - 1), hits.Len(), nil
}

func printRecord(w io.Writer, resolver quiz.Resolver, table quiz.Table, terms []string, number int) error {
	row, hits, err := selectHit(resolver, table, terms, number)
	if err != nil {
		return err
	}

	view := resolver.View(row)
	lines := []string{
		fmt.Sprintf("Record %d / %d", number, hits),
		"問題文: " + view.QuestionOrPlaceholder(),
	}
	for _, choice := range view.Choices {
		lines = append(lines, fmt.Sprintf("%s: %s", choice.Header, choice.Value))
	}
	lines = append(lines, "正解: "+view.Answer, "分類: "+view.Category)

	_, err = fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

// printRecordField prints the resolved value of one canonical field, such as
// "answer" or "choice_3", of the selected hit.
func printRecordField(w io.Writer, resolver quiz.Resolver, table quiz.Table, terms []string, number int, fieldID string) error {
	field, ok := quiz.FieldByID(fieldID)
	if !ok {
		return fmt.Errorf("unknown field %q (valid: %s)", fieldID, strings.Join(fieldIDs(), ", "))
	}
	row, _, err := selectHit(resolver, table, terms, number)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, resolver.ResolveField(row, field))
	return err
}

func fieldIDs() []string {
	fields := quiz.Fields()
	ids := make([]string, len(fields))
	for i, field := range fields {
		ids[i] = field.ID
	}
	return ids
}

func init() {
	rootCmd.AddCommand(showCmd)

	addInputFlags(showCmd)
	showCmd.Flags().IntVarP(&showRecord, "record", "n", 1, "1-based record number among the hits")
	showCmd.Flags().StringVar(&showField, "field", "", "Print only one field: "+strings.Join(fieldIDs(), "|"))
}

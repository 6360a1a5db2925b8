package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"quizdb/output"
	"quizdb/quiz"
)

var (
	exportFormat    string
	exportOutputDir string
	exportOutput    string
)

var exportCmd = &cobra.Command{
	Use:   "export [terms...]",
	Short: "Export the search hits as text, CSV, or Excel",
	Long: `Load a quiz sheet, apply the optional search terms, and write the hits.

Formats:
- txt: one text block per question
- csv: UTF-8 with BOM, canonical columns always present
- excel: .xlsx with the same columns as csv

The file is named "<query>_<MMDD>.<ext>" ("results" for an empty query) inside
--output-dir, unless --output gives an explicit path.`,
	Example: `
  # Export all rows as CSV into the configured export.dir
  quizdb export -i questions.csv

  # Export hits for "TCP" as text into ./out
  quizdb export -i questions.csv --format txt --output-dir ./out TCP

  # Force an explicit file path
  quizdb export -i questions.csv --format excel --output ./hits.xlsx TCP
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := loadInput()
		if err != nil {
			return err
		}

		format := exportFormat
		if strings.TrimSpace(format) == "" {
			format = input.cfg.Export.Format
		}
		writer, err := output.WriterForFormat(format, input.resolver)
		if err != nil {
			return err
		}

		dir := exportOutputDir
		if strings.TrimSpace(dir) == "" {
			dir = input.cfg.Export.Dir
		}
		query := queryFromArgs(args)
		path := exportTarget(writer, exportOutput, dir, query, time.Now())

		hits := input.resolver.Filter(input.result.Table, quiz.ParseTerms(query))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
		if err := output.WriteFile(writer, path, hits); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Export completed. Rows: %d, Format: %s, File: %s\n", hits.Len(), writer.Extension(), path)
		return nil
	},
}

// exportTarget returns explicit when set, otherwise the generated file name
// inside dir.
func exportTarget(writer output.Writer, explicit, dir, query string, now time.Time) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	return filepath.Join(dir, output.FileName(writer, query, now))
}

func init() {
	rootCmd.AddCommand(exportCmd)

	addInputFlags(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: "+strings.Join(output.SupportedFormats(), "|")+" (default from config export.format)")
	exportCmd.Flags().StringVar(&exportOutputDir, "output-dir", "", "Directory for the generated file (default from config export.dir)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Explicit output file path")
}

package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"quizdb/quiz"
)

// CSVWriter writes UTF-8 with a byte-order mark so spreadsheet apps pick the
// right encoding. Every canonical column is present in the header.
type CSVWriter struct{}

func (w *CSVWriter) Extension() string {
	return "csv"
}

func (w *CSVWriter) ContentType() string {
	return "text/csv; charset=utf-8"
}

func (w *CSVWriter) Write(dst io.Writer, table quiz.Table) error {
	table = quiz.EnsureOutputColumns(table)

	encoded := transform.NewWriter(dst, unicode.UTF8BOM.NewEncoder())
	writer := csv.NewWriter(encoded)

	if err := writer.Write(table.Headers); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}
	for i := range table.Rows {
		if err := writer.Write(table.Row(i).Cells()); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}
	if err := encoded.Close(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}

package importer

import (
	"fmt"
	"io"
	"strings"

	"quizdb/quiz"
)

type Reader interface {
	Read(src io.Reader) (quiz.Table, error)
}

// Options tune how source bytes are decoded and split.
type Options struct {
	Format    string
	Encoding  string
	Delimiter rune
}

func SupportedFormats() []string {
	return []string{"csv", "excel"}
}

func ReaderForFormat(format string, options Options) (Reader, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVReader{Encoding: options.Encoding, Delimiter: options.Delimiter}, nil
	case "excel", "xlsx", "xlsm":
		return &ExcelReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}
}

func normalizeFormat(value string) string {
	return strings.TrimPrefix(strings.TrimSpace(strings.ToLower(value)), ".")
}

// tableFromRows turns raw grid rows into a Table. The first row is the header
// row; cells beyond the header width are dropped, short rows are padded and
// rows without any cell are skipped. CRLF inside a cell becomes LF, which is
// what encoding/csv yields for a quoted CRLF, so CSV and Excel sources agree.
func tableFromRows(headers []string, rows [][]string) quiz.Table {
	table := quiz.Table{
		Headers: append([]string(nil), headers...),
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		cells := make([]string, len(headers))
		copy(cells, row)
		for i, cell := range cells {
			cells[i] = strings.ReplaceAll(cell, "\r\n", "\n")
		}
		table.Rows = append(table.Rows, cells)
	}
	return table
}

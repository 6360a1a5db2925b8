package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"quizdb/quiz"
)

type Writer interface {
	// Extension is the file extension without the leading dot.
	Extension() string
	ContentType() string
	Write(dst io.Writer, table quiz.Table) error
}

func SupportedFormats() []string {
	return []string{"txt", "csv", "excel"}
}

func WriterForFormat(format string, resolver quiz.Resolver) (Writer, error) {
	switch normalizeFormat(format) {
	case "txt", "text":
		return &TextWriter{Resolver: resolver}, nil
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteFile writes table to path using writer.
func WriteFile(writer Writer, path string, table quiz.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s output %s: %w", writer.Extension(), path, err)
	}
	if err := writer.Write(file, table); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s output %s: %w", writer.Extension(), path, err)
	}
	return nil
}

// BaseName is "<query>_<MMDD>", or "results_<MMDD>" for an empty query.
// Path separators in the query are replaced so the name stays one file.
func BaseName(query string, now time.Time) string {
	base := strings.TrimSpace(query)
	if base == "" {
		base = "results"
	}
	base = strings.NewReplacer("/", "_", "\\", "_").Replace(base)
	return base + "_" + now.Format("0102")
}

// FileName is BaseName plus the writer's extension.
func FileName(writer Writer, query string, now time.Time) string {
	return BaseName(query, now) + "." + writer.Extension()
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}

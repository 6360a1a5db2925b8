package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"quizdb/quiz"
)

// ErrNoInput is returned when neither an upload nor a path was supplied.
var ErrNoInput = errors.New("no input file: upload a CSV or supply a path")

// Source is one quiz sheet to load. Data takes precedence over Path; Name is
// used for format inference when Data is set.
type Source struct {
	Name string
	Path string
	Data io.Reader
}

type Result struct {
	SourceName string
	Format     string
	RowsRead   int
	Table      quiz.Table
}

// Load reads src and returns its normalized table. Any failure returns no table.
func Load(src Source, options Options) (*Result, error) {
	if src.Data == nil && strings.TrimSpace(src.Path) == "" {
		return nil, ErrNoInput
	}
	name := firstNonEmpty(src.Name, src.Path, "upload")

	format, err := inferFormat(name, options.Format)
	if err != nil {
		return nil, err
	}
	reader, err := ReaderForFormat(format, options)
	if err != nil {
		return nil, err
	}

	data := src.Data
	if data == nil {
		file, err := os.Open(src.Path)
		if err != nil {
			return nil, fmt.Errorf("open input file %s: %w", src.Path, err)
		}
		defer file.Close()
		data = file
	}

	table, err := reader.Read(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	return &Result{
		SourceName: name,
		Format:     format,
		RowsRead:   table.Len(),
		Table:      quiz.Normalize(table),
	}, nil
}

// LoadFile is Load for a path on disk.
func LoadFile(path string, options Options) (*Result, error) {
	return Load(Source{Path: path}, options)
}

func inferFormat(name string, format string) (string, error) {
	if strings.TrimSpace(format) != "" {
		return format, nil
	}

	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	switch extension {
	case "csv", "txt", "":
		return "csv", nil
	case "xlsx", "xlsm":
		return "excel", nil
	default:
		return "", fmt.Errorf("unsupported file extension for %s", name)
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

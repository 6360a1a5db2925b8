package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"quizdb/quiz"
)

const (
	EncodingUTF8     = "utf-8"
	EncodingShiftJIS = "shift_jis"
)

// CSVReader reads delimited text. UTF-8 input may carry a byte-order mark;
// invalid UTF-8 is rejected rather than silently replaced.
type CSVReader struct {
	Encoding  string
	Delimiter rune
}

func (r *CSVReader) Read(src io.Reader) (quiz.Table, error) {
	decoder, err := decoderFor(r.Encoding)
	if err != nil {
		return quiz.Table{}, err
	}

	data, err := io.ReadAll(transform.NewReader(src, decoder))
	if err != nil {
		return quiz.Table{}, fmt.Errorf("decode csv as %s: %w", encodingName(r.Encoding), err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	if r.Delimiter != 0 {
		reader.Comma = r.Delimiter
	}

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return quiz.Table{}, fmt.Errorf("csv has no header row")
	}
	if err != nil {
		return quiz.Table{}, fmt.Errorf("read csv header: %w", err)
	}

	rows := make([][]string, 0, 128)
	rowNumber := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return quiz.Table{}, fmt.Errorf("read csv row %d: %w", rowNumber+1, err)
		}
		rows = append(rows, row)
		rowNumber++
	}

	return tableFromRows(headers, rows), nil
}

func decoderFor(name string) (transform.Transformer, error) {
	switch encodingName(name) {
	case EncodingUTF8:
		// Strip a leading BOM (or follow a UTF-16 BOM), then insist on valid UTF-8.
		return transform.Chain(unicode.BOMOverride(transform.Nop), encoding.UTF8Validator), nil
	case EncodingShiftJIS:
		return japanese.ShiftJIS.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("unsupported input encoding: %s", name)
	}
}

func encodingName(name string) string {
	switch strings.ReplaceAll(strings.TrimSpace(strings.ToLower(name)), "-", "_") {
	case "", "utf8", "utf_8", "utf_8_sig":
		return EncodingUTF8
	case "shift_jis", "sjis", "cp932", "windows_31j":
		return EncodingShiftJIS
	default:
		return name
	}
}

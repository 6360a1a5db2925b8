package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"quizdb/importer"
	"quizdb/quiz"
)

func sourceTable() quiz.Table {
	return quiz.Normalize(quiz.Table{
		Headers: []string{"\ufeff設問", "選択肢Ａ", "選択肢Ｂ", "答え", "備考", "分類"},
		Rows: [][]string{
			{"1+1は?", "2", "3", "1", "memo, with comma", ""},
			{"  空白  ", "", "\"quoted\"", "", "", "算数"},
			{"改行\nあり", "x"},
		},
	})
}

func TestCSVWriter_RoundTripPreservesResolvedValues(t *testing.T) {
	t.Parallel()

	table := quiz.Filter(sourceTable(), nil)
	path := filepath.Join(t.TempDir(), "export.csv")
	if err := WriteFile(&CSVWriter{}, path, table); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(raw, []byte("\xef\xbb\xbf")) {
		t.Fatalf("expected utf-8 bom prefix, got % x", raw[:3])
	}

	reloaded, err := importer.LoadFile(path, importer.Options{})
	if err != nil {
		t.Fatalf("reload csv: %v", err)
	}
	if reloaded.Table.Len() != table.Len() {
		t.Fatalf("row count changed: %d -> %d", table.Len(), reloaded.Table.Len())
	}
	for _, header := range quiz.CanonicalHeaders() {
		if !reloaded.Table.HasHeader(header) {
			t.Fatalf("missing canonical header %s in %q", header, reloaded.Table.Headers)
		}
	}

	for i := 0; i < table.Len(); i++ {
		for _, field := range quiz.Fields() {
			before := quiz.ResolveField(table.Row(i), field)
			after := quiz.ResolveField(reloaded.Table.Row(i), field)
			if before != after {
				t.Fatalf("row %d %s changed: %q -> %q", i, field.ID, before, after)
			}
		}
	}
}

func TestCSVWriter_RoundTripOfLoadedMultilineCell(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := filepath.Join(dir, "source.xlsx")
	if err := WriteFile(&ExcelWriter{}, source, quiz.Table{
		Headers: []string{"設問", "正解"},
		Rows:    [][]string{{"行1\r\n行2", "1"}},
	}); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}

	loaded, err := importer.LoadFile(source, importer.Options{})
	if err != nil {
		t.Fatalf("load xlsx: %v", err)
	}
	exported := filepath.Join(dir, "export.csv")
	if err := WriteFile(&CSVWriter{}, exported, loaded.Table); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	reloaded, err := importer.LoadFile(exported, importer.Options{})
	if err != nil {
		t.Fatalf("reload csv: %v", err)
	}

	before := quiz.ResolveField(loaded.Table.Row(0), quiz.FieldQuestion)
	after := quiz.ResolveField(reloaded.Table.Row(0), quiz.FieldQuestion)
	if before != "行1\n行2" || after != before {
		t.Fatalf("question changed across export: loaded %q, reloaded %q", before, after)
	}
}

func TestTextWriter_ConcatenatesBlocks(t *testing.T) {
	t.Parallel()

	table := sourceTable()
	var buf bytes.Buffer
	writer := &TextWriter{Resolver: quiz.DefaultResolver}
	if err := writer.Write(&buf, table); err != nil {
		t.Fatalf("write text: %v", err)
	}

	var want strings.Builder
	for i := 0; i < table.Len(); i++ {
		want.WriteString(quiz.BuildTextBlock(table.Row(i)) + "\n")
	}
	if buf.String() != want.String() {
		t.Fatalf("unexpected text export:\n%s", buf.String())
	}
	if !strings.HasPrefix(buf.String(), "問題文: 1+1は?\n選択肢1: 2\n選択肢2: 3\n正解: 1\n分類: \n") {
		t.Fatalf("unexpected first block:\n%s", buf.String())
	}
}

func TestExcelWriter_RoundTrip(t *testing.T) {
	t.Parallel()

	table := sourceTable()
	path := filepath.Join(t.TempDir(), "export.xlsx")
	if err := WriteFile(&ExcelWriter{}, path, table); err != nil {
		t.Fatalf("write excel: %v", err)
	}

	reloaded, err := importer.LoadFile(path, importer.Options{})
	if err != nil {
		t.Fatalf("reload excel: %v", err)
	}
	for i := 0; i < table.Len(); i++ {
		if got, want := quiz.RowText(reloaded.Table.Row(i)), quiz.RowText(table.Row(i)); got != want {
			t.Fatalf("row %d changed: %q -> %q", i, want, got)
		}
	}
}

func TestFileName(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 7, 10, 0, 0, 0, time.Local)
	tests := []struct {
		format string
		query  string
		want   string
	}{
		{format: "txt", query: "", want: "results_0307.txt"},
		{format: "csv", query: "  猫 犬 ", want: "猫 犬_0307.csv"},
		{format: "excel", query: "a/b", want: "a_b_0307.xlsx"},
	}

	for _, tc := range tests {
		writer, err := WriterForFormat(tc.format, quiz.DefaultResolver)
		if err != nil {
			t.Fatalf("writer for %s: %v", tc.format, err)
		}
		if got := FileName(writer, tc.query, now); got != tc.want {
			t.Fatalf("FileName(%q, %q) = %q, want %q", tc.format, tc.query, got, tc.want)
		}
	}

	if _, err := WriterForFormat("pdf", quiz.DefaultResolver); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

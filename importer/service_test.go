package importer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"quizdb/quiz"
)

func TestLoad_NoInput(t *testing.T) {
	t.Parallel()

	_, err := Load(Source{}, Options{})
	if !errors.Is(err, ErrNoInput) {
		t.Fatalf("expected ErrNoInput, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	result, err := LoadFile(filepath.Join(t.TempDir(), "missing.csv"), Options{})
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if result != nil {
		t.Fatalf("expected no partial result, got %+v", result)
	}
}

func TestLoad_NormalizesHeaders(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "quiz.csv")
	content := "\ufeff 設問 ,選択肢Ａ,正解,備考\n1+1は?,2,2,\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := LoadFile(path, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Format != "csv" || result.RowsRead != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	row := result.Table.Row(0)
	if got := quiz.ResolveField(row, quiz.FieldQuestion); got != "1+1は?" {
		t.Fatalf("question = %q", got)
	}
	if got := quiz.ResolveField(row, quiz.FieldChoice1); got != "2" {
		t.Fatalf("choice_1 = %q", got)
	}
	if !result.Table.HasHeader("備考") {
		t.Fatalf("unrecognized header dropped: %q", result.Table.Headers)
	}
}

func TestLoad_UploadUsesNameForFormat(t *testing.T) {
	t.Parallel()

	_, err := Load(Source{Name: "quiz.pdf", Data: strings.NewReader("x")}, Options{})
	if err == nil || !strings.Contains(err.Error(), "unsupported file extension") {
		t.Fatalf("expected extension error, got %v", err)
	}

	result, err := Load(Source{Name: "quiz.bin", Data: strings.NewReader("問題文\nq\n")}, Options{Format: "csv"})
	if err != nil {
		t.Fatalf("explicit format should win: %v", err)
	}
	if result.SourceName != "quiz.bin" {
		t.Fatalf("unexpected source name %q", result.SourceName)
	}
}

func TestLoad_Excel(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "quiz.xlsx")
	file := excelize.NewFile()
	sheet := file.GetSheetName(0)
	rows := [][]string{
		{"問題", "A", "B", "答え", "科目"},
		{"首都は?", "東京", "大阪", "1", "社会"},
	}
	for r, row := range rows {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				t.Fatalf("set cell %s: %v", cell, err)
			}
		}
	}
	if err := file.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	_ = file.Close()

	result, err := LoadFile(path, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Format != "excel" {
		t.Fatalf("expected excel format, got %q", result.Format)
	}

	view := quiz.DefaultResolver.View(result.Table.Row(0))
	if view.Question != "首都は?" || view.Answer != "1" || view.Category != "社会" || len(view.Choices) != 2 {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func TestLoad_CellLineBreaksBecomeLF(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "quiz.csv")
	if err := os.WriteFile(csvPath, []byte("設問,正解\r\n\"行1\r\n行2\",1\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	xlsxPath := filepath.Join(dir, "quiz.xlsx")
	file := excelize.NewFile()
	sheet := file.GetSheetName(0)
	for cell, value := range map[string]string{"A1": "設問", "B1": "正解", "A2": "行1\r\n行2", "B2": "1"} {
		if err := file.SetCellValue(sheet, cell, value); err != nil {
			t.Fatalf("set cell %s: %v", cell, err)
		}
	}
	if err := file.SaveAs(xlsxPath); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	_ = file.Close()

	for _, path := range []string{csvPath, xlsxPath} {
		result, err := LoadFile(path, Options{})
		if err != nil {
			t.Fatalf("load %s: %v", filepath.Base(path), err)
		}
		if got := quiz.ResolveField(result.Table.Row(0), quiz.FieldQuestion); got != "行1\n行2" {
			t.Fatalf("%s question = %q, want LF line break", filepath.Base(path), got)
		}
	}
}

func TestReaderForFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format  string
		wantErr bool
	}{
		{format: "csv"},
		{format: " CSV "},
		{format: "xlsx"},
		{format: ".xlsm"},
		{format: "excel"},
		{format: "json", wantErr: true},
	}

	for _, tc := range tests {
		_, err := ReaderForFormat(tc.format, Options{})
		if tc.wantErr != (err != nil) {
			t.Fatalf("ReaderForFormat(%q) error = %v, wantErr %v", tc.format, err, tc.wantErr)
		}
	}
}

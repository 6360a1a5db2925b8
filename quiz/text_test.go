package quiz

import (
	"reflect"
	"strings"
	"testing"
)

func sampleTable() Table {
	return Normalize(Table{
		Headers: []string{"設問", "選択肢Ａ", "選択肢Ｂ", "選択肢Ｃ", "解答", "分類"},
		Rows: [][]string{
			{"猫と犬はどちらが好き?", "猫", "犬", "", "1", "動物"},
			{"犬の鳴き声は?", "ワン", "ニャー", "", "1", "動物"},
			{"Go の作者は?", "Rob Pike", "Guido", "Larry", "1", "Programming"},
		},
	})
}

func TestRowText_JoinsNonEmptyResolvedFields(t *testing.T) {
	t.Parallel()

	got := RowText(sampleTable().Row(0))
	want := "猫と犬はどちらが好き? 猫 犬 1 動物"
	if got != want {
		t.Fatalf("RowText = %q, want %q", got, want)
	}
}

func TestBuildTextBlock(t *testing.T) {
	t.Parallel()

	got := BuildTextBlock(sampleTable().Row(2))
	want := strings.Join([]string{
		"問題文: Go の作者は?",
		"選択肢1: Rob Pike",
		"選択肢2: Guido",
		"選択肢3: Larry",
		"正解: 1",
		"分類: Programming",
		strings.Repeat("-", 40),
	}, "\n")
	if got != want {
		t.Fatalf("unexpected block:\n%s\nwant:\n%s", got, want)
	}
}

func TestBuildTextBlock_MissingQuestionPlaceholder(t *testing.T) {
	t.Parallel()

	got := BuildTextBlock(MapRecord{"選択肢2": "b"})
	lines := strings.Split(got, "\n")
	want := []string{"問題文: （問題文なし）", "選択肢2: b", "正解: ", "分類: ", strings.Repeat("-", 40)}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("unexpected lines: %q", lines)
	}
}

func TestView_UsesSameValuesAsRowText(t *testing.T) {
	t.Parallel()

	table := sampleTable()
	for i := 0; i < table.Len(); i++ {
		view := DefaultResolver.View(table.Row(i))
		parts := []string{view.Question}
		for _, choice := range view.Choices {
			parts = append(parts, choice.Value)
		}
		parts = append(parts, view.Answer, view.Category)
		if got := strings.Join(parts, " "); got != RowText(table.Row(i)) {
			t.Fatalf("row %d: view %q differs from row text %q", i, got, RowText(table.Row(i)))
		}
	}
}

func TestEnsureOutputColumns(t *testing.T) {
	t.Parallel()

	table := Table{
		Headers: []string{"選択肢2", "備考", "問題文"},
		Rows:    [][]string{{"b", "memo", "q"}, {"c"}},
	}

	got := EnsureOutputColumns(table)
	wantHeaders := []string{"選択肢2", "備考", "問題文", "選択肢1", "選択肢3", "選択肢4", "選択肢5", "正解", "科目分類"}
	if !reflect.DeepEqual(got.Headers, wantHeaders) {
		t.Fatalf("unexpected headers: %q", got.Headers)
	}
	for i, row := range got.Rows {
		if len(row) != len(wantHeaders) {
			t.Fatalf("row %d has %d cells, want %d", i, len(row), len(wantHeaders))
		}
	}
	if got.Rows[0][0] != "b" || got.Rows[1][0] != "c" {
		t.Fatalf("existing values changed: %q", got.Rows)
	}
	if len(table.Headers) != 3 {
		t.Fatalf("input table mutated: %q", table.Headers)
	}

	again := EnsureOutputColumns(got)
	if !reflect.DeepEqual(again.Headers, got.Headers) {
		t.Fatalf("second call changed headers: %q", again.Headers)
	}
}

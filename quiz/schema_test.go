package quiz

import (
	"reflect"
	"testing"
)

func TestCleanHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "問題文", want: "問題文"},
		{name: "bom prefix", input: "\ufeff問題文", want: "問題文"},
		{name: "ideographic space", input: "　問題文", want: "問題文"},
		{name: "inner run removed", input: "選択肢 \t　1", want: "選択肢1"},
		{name: "line breaks", input: "正解\r\n", want: "正解"},
		{name: "only whitespace", input: " 　\t", want: ""},
		{name: "keeps other characters", input: "Ａ", want: "Ａ"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := CleanHeader(tc.input); got != tc.want {
				t.Fatalf("CleanHeader(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalize_RenamesFirstMatchingAlias(t *testing.T) {
	t.Parallel()

	table := Table{
		Headers: []string{"\ufeff設問", "選択肢Ａ", "選択肢b", "C", "ｄ", "選択肢Ｅ", "解答", "カテゴリ", "備考"},
		Rows:    [][]string{{"q", "1", "2", "3", "4", "5", "a", "c", "memo"}},
	}

	got := Normalize(table)
	want := []string{"問題文", "選択肢1", "選択肢2", "選択肢3", "選択肢4", "選択肢5", "正解", "科目分類", "備考"}
	if !reflect.DeepEqual(got.Headers, want) {
		t.Fatalf("unexpected headers:\n got %q\nwant %q", got.Headers, want)
	}
	if !reflect.DeepEqual(got.Rows, table.Rows) {
		t.Fatalf("values changed: %q", got.Rows)
	}
}

func TestNormalize_OnlyFirstDeclaredAliasIsRenamed(t *testing.T) {
	t.Parallel()

	table := Table{
		Headers: []string{"本文", "問題", "設問"},
		Rows:    [][]string{{"x", "y", "z"}},
	}

	got := Normalize(table)
	want := []string{"本文", "問題", "問題文"}
	if !reflect.DeepEqual(got.Headers, want) {
		t.Fatalf("unexpected headers: got %q, want %q", got.Headers, want)
	}
}

func TestNormalize_CanonicalWinsOverAlias(t *testing.T) {
	t.Parallel()

	table := Table{
		Headers: []string{"設問", "問題文"},
		Rows:    [][]string{{"from alias", "from canonical"}},
	}

	got := Normalize(table)
	count := 0
	for _, header := range got.Headers {
		if header == "問題文" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one 問題文 column, got %d in %q", count, got.Headers)
	}
	if value, _ := got.Row(0).Lookup("問題文"); value != "from canonical" {
		t.Fatalf("expected canonical value, got %q", value)
	}
	if !got.HasHeader("設問") {
		t.Fatalf("expected alias column to be left untouched, got %q", got.Headers)
	}
}

func TestNormalize_IsIdempotent(t *testing.T) {
	t.Parallel()

	tables := []Table{
		{},
		{Headers: []string{"A", "B", "a"}, Rows: [][]string{{"1", "2", "3"}}},
		{Headers: []string{" 設問 ", "問題", "answer", "ans"}, Rows: [][]string{{"q", "p", "x", "y"}}},
		{Headers: []string{"問題文", "\ufeff問題文"}, Rows: [][]string{{"a"}}},
		{Headers: []string{"unknown", "列"}, Rows: [][]string{{"", ""}, {"1"}}},
	}

	for i, table := range tables {
		once := Normalize(table)
		twice := Normalize(once)
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("table %d: normalize not idempotent:\n once %#v\ntwice %#v", i, once, twice)
		}
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	table := Table{
		Headers: []string{"\ufeff設問", "A"},
		Rows:    [][]string{{"q", "1"}},
	}

	_ = Normalize(table)
	if table.Headers[0] != "\ufeff設問" || table.Headers[1] != "A" {
		t.Fatalf("input headers mutated: %q", table.Headers)
	}
}

func TestNormalize_DuplicateHeadersAndEmptyTable(t *testing.T) {
	t.Parallel()

	got := Normalize(Table{})
	if len(got.Headers) != 0 || got.Len() != 0 {
		t.Fatalf("expected empty table, got %#v", got)
	}

	dup := Normalize(Table{
		Headers: []string{"設問", "設問"},
		Rows:    [][]string{{"first", "second"}},
	})
	if !reflect.DeepEqual(dup.Headers, []string{"問題文", "問題文"}) {
		t.Fatalf("unexpected duplicate handling: %q", dup.Headers)
	}
	if value, _ := dup.Row(0).Lookup("問題文"); value != "first" {
		t.Fatalf("expected first duplicate column to win lookup, got %q", value)
	}
}

func TestFieldByID(t *testing.T) {
	t.Parallel()

	field, ok := FieldByID("Choice_3")
	if !ok || field.Header != "選択肢3" {
		t.Fatalf("unexpected field: %+v ok=%v", field, ok)
	}
	if _, ok := FieldByID("nope"); ok {
		t.Fatalf("expected unknown field id to fail")
	}
}

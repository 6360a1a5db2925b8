package quiz

import (
	"strconv"
	"strings"
	"unicode"
)

const byteOrderMark = '\uFEFF'

// Field is one canonical quiz attribute.
type Field struct {
	ID     string
	Header string
	// Aliases are renamed to Header by Normalize, first match wins.
	Aliases []string
	// Candidates are read in order by ResolveField.
	Candidates []string
}

var (
	FieldQuestion = Field{
		ID:         "question",
		Header:     "問題文",
		Aliases:    []string{"設問", "問題", "本文"},
		Candidates: []string{"問題文", "設問", "問題", "本文"},
	}
	FieldChoice1 = choiceField(1, "Ａ", "a", "A", "ａ")
	FieldChoice2 = choiceField(2, "Ｂ", "b", "B", "ｂ")
	FieldChoice3 = choiceField(3, "Ｃ", "c", "C", "ｃ")
	FieldChoice4 = choiceField(4, "Ｄ", "d", "D", "ｄ")
	FieldChoice5 = choiceField(5, "Ｅ", "e", "E", "ｅ")
	FieldAnswer  = Field{
		ID:         "answer",
		Header:     "正解",
		Aliases:    []string{"解答", "答え", "ans", "answer"},
		Candidates: []string{"正解", "解答", "答え"},
	}
	FieldCategory = Field{
		ID:         "category",
		Header:     "科目分類",
		Aliases:    []string{"分類", "科目", "カテゴリ", "カテゴリー"},
		Candidates: []string{"科目分類", "分類", "科目"},
	}
)

// Fields lists the canonical schema in declared order.
func Fields() []Field {
	return []Field{
		FieldQuestion,
		FieldChoice1,
		FieldChoice2,
		FieldChoice3,
		FieldChoice4,
		FieldChoice5,
		FieldAnswer,
		FieldCategory,
	}
}

// ChoiceFields returns the five choice slots in order.
func ChoiceFields() []Field {
	return []Field{FieldChoice1, FieldChoice2, FieldChoice3, FieldChoice4, FieldChoice5}
}

// CanonicalHeaders returns the canonical column names in declared order.
func CanonicalHeaders() []string {
	fields := Fields()
	headers := make([]string, len(fields))
	for i, field := range fields {
		headers[i] = field.Header
	}
	return headers
}

// FieldByID looks up a canonical field by its ID (e.g. "choice_3").
func FieldByID(id string) (Field, bool) {
	for _, field := range Fields() {
		if field.ID == strings.TrimSpace(strings.ToLower(id)) {
			return field, true
		}
	}
	return Field{}, false
}

func choiceField(slot int, fullWidth, lower, upper, fullWidthLower string) Field {
	n := strconv.Itoa(slot)
	return Field{
		ID:         "choice_" + n,
		Header:     "選択肢" + n,
		Aliases:    []string{"選択肢" + fullWidth, "選択肢" + lower, upper, fullWidthLower},
		Candidates: []string{"選択肢" + n},
	}
}

// CleanHeader drops byte-order marks and every ASCII space, tab, CR, LF and
// ideographic space (U+3000). Runs collapse to nothing.
func CleanHeader(header string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case byteOrderMark, '\u3000', ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, header)
}

// cleanKey is the looser cleaning used by the question fallback: BOM plus any
// Unicode whitespace.
func cleanKey(key string) string {
	return strings.Map(func(r rune) rune {
		if r == byteOrderMark || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, key)
}

// Normalize returns a copy of t with cleaned headers and known aliases renamed
// to their canonical header. A field whose canonical header already exists is
// left alone, including any alias columns for it. Cell values are never touched.
func Normalize(t Table) Table {
	out := t.Clone()
	existing := make(map[string]struct{}, len(out.Headers))
	for i, header := range out.Headers {
		out.Headers[i] = CleanHeader(header)
		existing[out.Headers[i]] = struct{}{}
	}

	for _, field := range Fields() {
		if _, ok := existing[field.Header]; ok {
			continue
		}
		for _, alias := range field.Aliases {
			if _, ok := existing[alias]; !ok {
				continue
			}
			for i, header := range out.Headers {
				if header == alias {
					out.Headers[i] = field.Header
				}
			}
			delete(existing, alias)
			existing[field.Header] = struct{}{}
			break
		}
	}

	return out
}

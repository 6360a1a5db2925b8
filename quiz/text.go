package quiz

import "strings"

const (
	missingQuestion = "（問題文なし）"
	blockSeparator  = "----------------------------------------"
)

// Choice is a populated answer slot.
type Choice struct {
	Slot   int
	Header string
	Value  string
}

// View is the resolved, display-ready form of one record.
type View struct {
	Question string
	Choices  []Choice
	Answer   string
	Category string
}

// QuestionOrPlaceholder returns the question text or the "no question" marker.
func (v View) QuestionOrPlaceholder() string {
	if v.Question == "" {
		return missingQuestion
	}
	return v.Question
}

// View resolves every canonical field of rec. Empty choices are omitted.
func (r Resolver) View(rec Record) View {
	view := View{
		Question: r.ResolveField(rec, FieldQuestion),
		Answer:   r.ResolveField(rec, FieldAnswer),
		Category: r.ResolveField(rec, FieldCategory),
	}
	for i, field := range ChoiceFields() {
		if value := r.ResolveField(rec, field); value != "" {
			view.Choices = append(view.Choices, Choice{Slot: i + 1, Header: field.Header, Value: value})
		}
	}
	return view
}

// RowText is the composite string searched by Filter: question, choices,
// answer and category, space-joined, skipping empty values.
func (r Resolver) RowText(rec Record) string {
	parts := make([]string, 0, len(Fields()))
	for _, field := range Fields() {
		if value := r.ResolveField(rec, field); value != "" {
			parts = append(parts, value)
		}
	}
	return strings.Join(parts, " ")
}

// BuildTextBlock renders one record for the text export.
func (r Resolver) BuildTextBlock(rec Record) string {
	view := r.View(rec)
	lines := []string{"問題文: " + view.QuestionOrPlaceholder()}
	for _, choice := range view.Choices {
		lines = append(lines, choice.Header+": "+choice.Value)
	}
	lines = append(lines,
		"正解: "+view.Answer,
		"分類: "+view.Category,
		blockSeparator,
	)
	return strings.Join(lines, "\n")
}

// RowText is DefaultResolver.RowText.
func RowText(rec Record) string {
	return DefaultResolver.RowText(rec)
}

// BuildTextBlock is DefaultResolver.BuildTextBlock.
func BuildTextBlock(rec Record) string {
	return DefaultResolver.BuildTextBlock(rec)
}

// EnsureOutputColumns returns a copy of t with every missing canonical header
// appended as an empty column, so exported files share a stable header.
func EnsureOutputColumns(t Table) Table {
	out := t.Clone()
	for _, header := range CanonicalHeaders() {
		if out.HasHeader(header) {
			continue
		}
		out.Headers = append(out.Headers, header)
	}
	for i, row := range out.Rows {
		if len(row) < len(out.Headers) {
			padded := make([]string, len(out.Headers))
			copy(padded, row)
			out.Rows[i] = padded
		}
	}
	return out
}

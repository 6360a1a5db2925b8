package web

import (
	"strconv"
	"strings"

	"quizdb/quiz"
	"quizdb/session"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 500
)

type recordView struct {
	Number   int
	Question string
	Choices  []quiz.Choice
	Answer   string
	Category string
}

type pageView struct {
	Title      string
	Error      string
	PathLoad   bool
	Loaded     bool
	SourceName string
	LoadedAt   string
	Query      string
	Total      int
	Hits       int
	Record     *recordView
	Prev       int
	Next       int
	Columns    []string
}

type apiChoice struct {
	Slot  int    `json:"slot"`
	Value string `json:"value"`
}

type apiRecord struct {
	Number   int         `json:"number"`
	Question string      `json:"question"`
	Choices  []apiChoice `json:"choices"`
	Answer   string      `json:"answer"`
	Category string      `json:"category"`
	Text     string      `json:"text"`
}

type recordsResponse struct {
	Source  string      `json:"source"`
	Query   string      `json:"query"`
	Total   int         `json:"total"`
	Hits    int         `json:"hits"`
	Offset  int         `json:"offset"`
	Records []apiRecord `json:"records"`
}

type columnsResponse struct {
	Source  string   `json:"source"`
	Columns []string `json:"columns"`
}

// buildPageView filters the snapshot by query and picks the 1-based record
// number from recParam, clamped to the hits. A nil snapshot renders the load
// form only.
func buildPageView(resolver quiz.Resolver, snapshot *session.Snapshot, query, recParam string) pageView {
	view := pageView{Title: "quizdb", Query: strings.TrimSpace(query)}
	if snapshot == nil {
		return view
	}

	view.Loaded = true
	view.SourceName = snapshot.SourceName
	view.LoadedAt = snapshot.LoadedAt.Format("2006-01-02 15:04:05")
	view.Total = snapshot.Table.Len()
	view.Columns = append([]string(nil), snapshot.Table.Headers...)

	filtered := resolver.Filter(snapshot.Table, quiz.ParseTerms(query))
	view.Hits = filtered.Len()
	if view.Hits == 0 {
		return view
	}

	number := clampRecordNumber(recParam, view.Hits)
	resolved := resolver.View(filtered.Row(number - 1))
	view.Record = &recordView{
		Number:   number,
		Question: resolved.QuestionOrPlaceholder(),
		Choices:  resolved.Choices,
		Answer:   resolved.Answer,
		Category: resolved.Category,
	}
	if number > 1 {
		view.Prev = number - 1
	}
	if number < view.Hits {
		view.Next = number + 1
	}
	return view
}

func buildRecordsResponse(resolver quiz.Resolver, snapshot session.Snapshot, query string, offset, limit int) recordsResponse {
	filtered := resolver.Filter(snapshot.Table, quiz.ParseTerms(query))
	response := recordsResponse{
		Source:  snapshot.SourceName,
		Query:   strings.TrimSpace(query),
		Total:   snapshot.Table.Len(),
		Hits:    filtered.Len(),
		Offset:  offset,
		Records: []apiRecord{},
	}

	for i := offset; i < filtered.Len() && i < offset+limit; i++ {
		row := filtered.Row(i)
		resolved := resolver.View(row)
		record := apiRecord{
			Number:   i + 1,
			Question: resolved.Question,
			Choices:  make([]apiChoice, 0, len(resolved.Choices)),
			Answer:   resolved.Answer,
			Category: resolved.Category,
			Text:     resolver.BuildTextBlock(row),
		}
		for _, choice := range resolved.Choices {
			record.Choices = append(record.Choices, apiChoice{Slot: choice.Slot, Value: choice.Value})
		}
		response.Records = append(response.Records, record)
	}
	return response
}

// clampRecordNumber parses a 1-based record number and keeps it within [1, n].
func clampRecordNumber(raw string, n int) int {
	number, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || number < 1 {
		return 1
	}
	if number > n {
		return n
	}
	return number
}

func parsePaging(offsetRaw, limitRaw string) (int, int) {
	offset, err := strconv.Atoi(strings.TrimSpace(offsetRaw))
	if err != nil || offset < 0 {
		offset = 0
	}
	limit, err := strconv.Atoi(strings.TrimSpace(limitRaw))
	if err != nil || limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return offset, limit
}

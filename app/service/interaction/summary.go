package interaction

import (
	"cmp"
	"faqbot/app/service/resolver"
	"slices"

	"github.com/elliotchance/pie/v2"
)

// AllDates is the date filter value that keeps every record.
const AllDates = "All"

type CategoryCount struct {
	Category resolver.Category `json:"category"`
	Count    int               `json:"count"`
}

// Summary is what the analytics page shows for the whole log.
type Summary struct {
	Total       int `json:"total"`
	Answered    int `json:"answered"`
	Greetings   int `json:"greetings"`
	NotAnswered int `json:"not_answered"`
	// Counts lists the categories present in the log, most frequent first.
	Counts []CategoryCount `json:"counts"`
	// Dates lists distinct record dates, newest first.
	Dates []string `json:"dates"`
}

func Summarize(records []Record) Summary {
	perCategory := make(map[resolver.Category]int)
	for _, rec := range records {
		perCategory[rec.MatchType]++
	}

	summary := Summary{
		Total:       len(records),
		Greetings:   perCategory[resolver.CategoryGreeting],
		NotAnswered: perCategory[resolver.CategoryFallback],
		Counts:      make([]CategoryCount, 0, len(perCategory)),
	}

	for _, c := range resolver.Categories {
		if c.Answered() {
			summary.Answered += perCategory[c]
		}
		if n := perCategory[c]; n > 0 {
			summary.Counts = append(summary.Counts, CategoryCount{Category: c, Count: n})
		}
	}

	slices.SortStableFunc(summary.Counts, func(a, b CategoryCount) int {
		return cmp.Compare(b.Count, a.Count)
	})

	dates := pie.Map(records, func(rec Record) string { return rec.Date })
	summary.Dates = pie.Reverse(pie.Sort(pie.Unique(dates)))
	if summary.Dates == nil {
		summary.Dates = []string{}
	}

	return summary
}

// FilterByDate keeps records of one day. Empty or AllDates keeps everything.
func FilterByDate(records []Record, date string) []Record {
	if date == "" || date == AllDates {
		return records
	}

	return pie.Filter(records, func(rec Record) bool {
		return rec.Date == date
	})
}

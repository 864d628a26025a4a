package interaction

import (
	"faqbot/app/service/resolver"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

var header = []string{"date", "time", "question", "match_type"}

// Record is one logged chat turn. Question is the raw text the user typed,
// with CRLF line breaks stored as LF since the CSV reader folds them anyway.
type Record struct {
	Date      string            `json:"date"`
	Time      string            `json:"time"`
	Question  string            `json:"question"`
	MatchType resolver.Category `json:"match_type"`
}

func NewRecord(now time.Time, question string, category resolver.Category) Record {
	return Record{
		Date:      now.Format(DateLayout),
		Time:      now.Format(TimeLayout),
		Question:  strings.ReplaceAll(question, "\r\n", "\n"),
		MatchType: category,
	}
}

func (r Record) row() []string {
	return []string{r.Date, r.Time, r.Question, string(r.MatchType)}
}

// Log is durable append-only storage for interaction records.
// Implementations assume a single writer.
type Log interface {
	Append(rec Record) error
	LoadAll() ([]Record, error)
	Clear() error
}

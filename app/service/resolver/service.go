package resolver

import (
	"faqbot/app/config"
	"faqbot/app/service/knowledge"
	"faqbot/app/util/textnorm"
	"log/slog"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
)

const minPartialTokens = 2

// Result is the outcome of one cascade run.
type Result struct {
	Answer   string
	Category Category
	// Normalized is the input after normalization.
	Normalized string
	// Question is the knowledge base key that produced the answer, empty for greetings and fallback.
	Question string
	// Score is the similarity ratio of a fuzzy match.
	Score float64
}

type Options struct {
	DisableFuzzy bool
	FuzzyCutoff  float64
}

// Service resolves user questions against a knowledge base. It holds no mutable state.
type Service struct {
	kb   *knowledge.Base
	opts Options
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return NewResolver(do.MustInvoke[*knowledge.Base](di), Options{
		DisableFuzzy: cfg.Matcher.DisableFuzzy,
		FuzzyCutoff:  cfg.Matcher.FuzzyCutoff,
	}), nil
}

func NewResolver(kb *knowledge.Base, opts Options) *Service {
	return &Service{
		kb:   kb,
		opts: opts,
	}
}

// Resolve runs the cascade greeting > exact > partial > fuzzy > fallback. It never fails.
func (s *Service) Resolve(raw string) Result {
	result := s.resolve(textnorm.Normalize(raw))

	slog.Debug("Resolved question",
		"normalized", result.Normalized,
		"category", result.Category,
		"question", result.Question)

	return result
}

func (s *Service) resolve(normalized string) Result {
	result := Result{Normalized: normalized}

	if s.kb.IsGreeting(normalized) {
		result.Answer = s.kb.GreetingResponse()
		result.Category = CategoryGreeting
		return result
	}

	if answer, ok := s.kb.Lookup(normalized); ok {
		result.Answer = answer
		result.Category = CategoryExact
		result.Question = normalized
		return result
	}

	if entry, ok := s.partialMatch(normalized); ok {
		result.Answer = entry.Answer
		result.Category = CategoryPartial
		result.Question = entry.Question
		return result
	}

	if !s.opts.DisableFuzzy {
		if question, score, ok := closestMatch(normalized, s.kb.Keys(), s.opts.FuzzyCutoff); ok {
			answer, _ := s.kb.Lookup(question)
			result.Answer = answer
			result.Category = CategoryFuzzy
			result.Question = question
			result.Score = score
			return result
		}
	}

	result.Answer = s.kb.FallbackResponse()
	result.Category = CategoryFallback
	return result
}

// partialMatch returns the first entry, in knowledge base order, whose key contains
// every input token. Inputs shorter than two tokens never match.
func (s *Service) partialMatch(normalized string) (knowledge.Entry, bool) {
	tokens := textnorm.Tokens(normalized)
	if len(tokens) < minPartialTokens {
		return knowledge.Entry{}, false
	}

	entries := s.kb.Entries()
	i := pie.FindFirstUsing(entries, func(e knowledge.Entry) bool {
		keyTokens := textnorm.Tokens(e.Question)
		return pie.All(tokens, func(token string) bool {
			return pie.Contains(keyTokens, token)
		})
	})
	if i < 0 {
		return knowledge.Entry{}, false
	}

	return entries[i], true
}

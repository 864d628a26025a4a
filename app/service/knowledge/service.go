package knowledge

import (
	"faqbot/app/config"
	"faqbot/app/util/textnorm"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/samber/do"
	"gopkg.in/yaml.v3"
)

// Base is the immutable question/answer mapping the resolver matches against.
// Entries keep their construction order, which decides ties between partial matches.
type Base struct {
	entries   []Entry
	index     map[string]int
	greetings map[string]struct{}

	greetingResponse string
	fallbackResponse string
}

func New(di *do.Injector) (*Base, error) {
	cfg := do.MustInvoke[*config.Config](di)

	if cfg.Knowledge.Path == "" {
		slog.Info("Using built-in knowledge base", "entries", len(defaultEntries))
		return Default(), nil
	}

	base, err := Load(cfg.Knowledge.Path)
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded knowledge base",
		"path", cfg.Knowledge.Path,
		"entries", len(base.entries),
		"greetings", len(base.greetings))

	return base, nil
}

// Default returns the built-in store FAQ.
func Default() *Base {
	base, err := NewBase(defaultEntries, defaultGreetings, defaultGreetingResponse, defaultFallbackResponse)
	if err != nil {
		panic(fmt.Sprintf("built-in knowledge base is invalid: %v", err))
	}

	return base
}

// Load reads a YAML knowledge base. Missing responses and greetings fall back to the built-in ones.
func Load(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge base: %w", err)
	}

	var file fileFormat
	if err = yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge base: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err = validate.Struct(file); err != nil {
		return nil, fmt.Errorf("failed to validate knowledge base: %w", err)
	}

	if file.GreetingResponse == "" {
		file.GreetingResponse = defaultGreetingResponse
	}
	if file.FallbackResponse == "" {
		file.FallbackResponse = defaultFallbackResponse
	}
	if file.Greetings == nil {
		file.Greetings = defaultGreetings
	}

	return NewBase(file.Entries, file.Greetings, file.GreetingResponse, file.FallbackResponse)
}

// NewBase validates that every key and greeting is already normalized and that keys are unique.
func NewBase(entries []Entry, greetings []string, greetingResponse, fallbackResponse string) (*Base, error) {
	b := &Base{
		entries:          make([]Entry, 0, len(entries)),
		index:            make(map[string]int, len(entries)),
		greetings:        make(map[string]struct{}, len(greetings)),
		greetingResponse: greetingResponse,
		fallbackResponse: fallbackResponse,
	}

	for _, e := range entries {
		if e.Question == "" {
			return nil, fmt.Errorf("empty question for answer %q", e.Answer)
		}
		if norm := textnorm.Normalize(e.Question); norm != e.Question {
			return nil, fmt.Errorf("question %q is not normalized (want %q)", e.Question, norm)
		}
		if _, ok := b.index[e.Question]; ok {
			return nil, fmt.Errorf("duplicate question %q", e.Question)
		}

		b.index[e.Question] = len(b.entries)
		b.entries = append(b.entries, e)
	}

	for _, g := range greetings {
		if norm := textnorm.Normalize(g); norm != g || g == "" {
			return nil, fmt.Errorf("greeting %q is not normalized", g)
		}
		b.greetings[g] = struct{}{}
	}

	return b, nil
}

// Entries returns a copy of the entries in construction order.
func (b *Base) Entries() []Entry {
	result := make([]Entry, len(b.entries))
	copy(result, b.entries)
	return result
}

func (b *Base) Keys() []string {
	result := make([]string, len(b.entries))
	for i, e := range b.entries {
		result[i] = e.Question
	}
	return result
}

func (b *Base) Len() int {
	return len(b.entries)
}

func (b *Base) Lookup(question string) (string, bool) {
	i, ok := b.index[question]
	if !ok {
		return "", false
	}
	return b.entries[i].Answer, true
}

func (b *Base) IsGreeting(text string) bool {
	_, ok := b.greetings[text]
	return ok
}

func (b *Base) GreetingResponse() string {
	return b.greetingResponse
}

func (b *Base) FallbackResponse() string {
	return b.fallbackResponse
}

// SampleQuestions renders the keys the way the chat page lists them: "How do i track my order?".
func (b *Base) SampleQuestions() []string {
	result := make([]string, len(b.entries))
	for i, e := range b.entries {
		result[i] = capitalize(e.Question) + "?"
	}
	return result
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

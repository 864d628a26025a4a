package resolver

import "fmt"

// Category tells how an answer was produced.
type Category string

const (
	CategoryGreeting Category = "greeting"
	CategoryExact    Category = "exact"
	CategoryPartial  Category = "partial"
	CategoryFuzzy    Category = "fuzzy"
	CategoryFallback Category = "fallback"
)

var Categories = []Category{
	CategoryExact,
	CategoryPartial,
	CategoryFuzzy,
	CategoryGreeting,
	CategoryFallback,
}

func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown match category %q", s)
}

// Answered reports whether the reply came from the knowledge base.
func (c Category) Answered() bool {
	return c == CategoryExact || c == CategoryPartial || c == CategoryFuzzy
}

func (c Category) Badge() string {
	switch c {
	case CategoryExact:
		return "🟢 Exact Match"
	case CategoryPartial:
		return "🔵 Partial Match"
	case CategoryFuzzy:
		return "🟡 Fuzzy Match"
	case CategoryGreeting:
		return "👋 Greeting"
	case CategoryFallback:
		return "🔴 No Match Found"
	default:
		return ""
	}
}

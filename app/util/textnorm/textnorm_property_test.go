package textnorm

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func genInput(t *rapid.T) string {
	alphabet := []rune("abcXYZ019 \t\n!?.,'-_()[]{}éÉßÄ¿¡")
	return rapid.StringOf(rapid.SampledFrom(alphabet)).Draw(t, "input")
}

func TestNormalizeIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := genInput(t)
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent: %q -> %q -> %q", in, once, twice)
		}
	})
}

func TestNormalizeOutputShape(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		out := Normalize(genInput(t))

		if strings.ContainsAny(out, asciiPunctuation) {
			t.Fatalf("punctuation left in %q", out)
		}
		if strings.TrimSpace(out) != out {
			t.Fatalf("untrimmed output %q", out)
		}
		if strings.ToLower(out) != out {
			t.Fatalf("output not lowercase %q", out)
		}
	})
}

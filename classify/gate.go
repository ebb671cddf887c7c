package classify

import (
	"regexp"
	"slices"
	"strings"
)

// DefaultTerms are the whole-word terms that make a prompt in scope.
var DefaultTerms = []string{"python", "cpp", "java", "go", "flask", "tensorflow", "dockerfile"}

// DefaultPhrase is the substring that makes a prompt in scope on its own.
const DefaultPhrase = "docker image"

// Gate decides whether a prompt is in scope for classification.
// A prompt passes if it contains the phrase (case-insensitive substring) or
// any term as a whole word (case-insensitive).
type Gate struct {
	phrase  string
	terms   []string
	pattern *regexp.Regexp
}

// DefaultGate returns the gate for DefaultTerms and DefaultPhrase.
func DefaultGate() *Gate {
	g, _ := NewGate(DefaultPhrase, DefaultTerms...)
	return g
}

// NewGate builds a gate from a phrase and whole-word terms.
// Either may be empty, but not both. Terms are matched literally.
func NewGate(phrase string, terms ...string) (*Gate, error) {
	var quoted []string
	var kept []string
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		kept = append(kept, t)
		quoted = append(quoted, regexp.QuoteMeta(t))
	}
	if phrase == "" && len(kept) == 0 {
		return nil, ErrEmptyGate
	}

	g := &Gate{
		phrase: strings.ToLower(phrase),
		terms:  kept,
	}
	if len(quoted) > 0 {
		pattern, err := regexp.Compile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
		if err != nil {
			return nil, err
		}
		g.pattern = pattern
	}
	return g, nil
}

// Allows reports whether text is in scope.
func (g *Gate) Allows(text string) bool {
	if g.phrase != "" && strings.Contains(strings.ToLower(text), g.phrase) {
		return true
	}
	return g.pattern != nil && g.pattern.MatchString(text)
}

// Terms returns a copy of the whole-word terms.
func (g *Gate) Terms() []string {
	return slices.Clone(g.terms)
}

// Phrase returns the lowercased substring phrase.
func (g *Gate) Phrase() string {
	return g.phrase
}

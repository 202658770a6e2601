package pattern

import (
	"sort"
	"strconv"
	"strings"
)

// DefaultSeparators bound unconstrained parameters of plain string patterns.
const DefaultSeparators = "/.?"

// Strexp bundles a path specification with the settings a router supplies:
// per-parameter requirement patterns, separator characters and anchoring.
type Strexp struct {
	Path         string
	Requirements map[string]string
	Separators   []string
	Anchor       bool
}

type StrexpOption func(*Strexp)

// Unanchored makes the compiled pattern match a prefix of the candidate.
func Unanchored() StrexpOption {
	return func(s *Strexp) {
		s.Anchor = false
	}
}

// NewStrexp returns an anchored expression unless Unanchored is given.
func NewStrexp(path string, requirements map[string]string, separators []string, opts ...StrexpOption) Strexp {
	s := Strexp{
		Path:         path,
		Requirements: requirements,
		Separators:   separators,
		Anchor:       true,
	}
	for i := range opts {
		opts[i](&s)
	}
	return s
}

func (s Strexp) separators() string {
	return strings.Join(s.Separators, "")
}

// key identifies expressions that compile to the same Pattern.
func (s Strexp) key() string {
	names := make([]string, 0, len(s.Requirements))
	for name := range s.Requirements {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(strconv.Quote(s.Path))
	for _, name := range names {
		b.WriteString(" " + strconv.Quote(name) + "=" + strconv.Quote(s.Requirements[name]))
	}
	b.WriteString(" sep=" + strconv.Quote(s.separators()))
	b.WriteString(" anchor=" + strconv.FormatBool(s.Anchor))
	return b.String()
}

func defaultStrexp(path string) Strexp {
	return NewStrexp(path, nil, strings.Split(DefaultSeparators, ""))
}

package pattern

import (
	"github.com/krew-solutions/ascetic-path-go/asceticpath/option"
	p "github.com/krew-solutions/ascetic-path-go/asceticpath/pattern/domain"
)

func newMatchData(names []string, offsets []int, input string, loc []int) *MatchData {
	return &MatchData{
		names:   names,
		offsets: offsets,
		input:   input,
		loc:     loc,
	}
}

// MatchData gives positional access to the parameters of one successful
// match. Positions are 1-based and follow Pattern.Names; they are translated
// to group indexes through the offset table, so requirement patterns with
// their own groups do not shift later parameters.
type MatchData struct {
	names   []string
	offsets []int
	input   string
	loc     []int
}

func (m *MatchData) Names() []string {
	return append([]string(nil), m.names...)
}

// Len is the length of the offset table, one more than the number of
// positions Captures reports.
func (m *MatchData) Len() int {
	return len(m.offsets)
}

// At returns the text captured for logical position k, or Nothing when k is
// out of range or the parameter sits in an optional group that did not
// match.
func (m *MatchData) At(k int) option.Option[string] {
	idx, ok := p.PhysicalIndex(m.offsets, k)
	if !ok || 2*idx+1 >= len(m.loc) {
		return option.Nothing[string]()
	}
	start, end := m.loc[2*idx], m.loc[2*idx+1]
	if start < 0 {
		return option.Nothing[string]()
	}
	return option.Some(m.input[start:end])
}

// Get is At without the presence flag.
func (m *MatchData) Get(k int) string {
	return m.At(k).UnwrapOrZero()
}

// Captures returns the values at positions 1 through Len()-1; parameters
// that did not participate yield "".
func (m *MatchData) Captures() []string {
	captures := make([]string, 0, m.Len()-1)
	for k := 1; k < m.Len(); k++ {
		captures = append(captures, m.Get(k))
	}
	return captures
}

// Params maps parameter names to their captured text, omitting parameters
// that did not participate.
func (m *MatchData) Params() map[string]string {
	params := make(map[string]string, len(m.names))
	for i, name := range m.names {
		if value := m.At(i + 1); value.IsSome() {
			params[name] = value.Unwrap()
		}
	}
	return params
}

// PostMatch is the part of the input after the matched text; always empty
// for anchored patterns.
func (m *MatchData) PostMatch() string {
	return m.input[m.loc[1]:]
}

func (m *MatchData) String() string {
	return m.input[m.loc[0]:m.loc[1]]
}

package pattern

import "github.com/pkg/errors"

// CaptureCounter reports how many capturing groups a requirement pattern
// contains on its own, not counting the group that wraps the parameter.
type CaptureCounter interface {
	CountCaptures(requirement string) (int, error)
}

func NewOffsetsVisitor(requirements map[string]string, counter CaptureCounter) *OffsetsVisitor {
	v := &OffsetsVisitor{
		requirements: requirements,
		counter:      counter,
		offsets:      []int{0},
	}
	v.BaseVisitor = NewBaseVisitor(v)
	return v
}

// OffsetsVisitor builds the cumulative table of extra capturing groups that
// requirement patterns inject ahead of each parameter. Only SYMBOL leaves
// contribute entries; STAR leaves are not visited.
type OffsetsVisitor struct {
	BaseVisitor
	requirements map[string]string
	counter      CaptureCounter
	offsets      []int
}

func (v *OffsetsVisitor) VisitSymbol(n SymbolNode) error {
	total := v.offsets[len(v.offsets)-1]
	if requirement, ok := Requirement(v.requirements, n.Name()); ok {
		count, err := v.counter.CountCaptures(requirement)
		if err != nil {
			return errors.Wrapf(err, "pattern: counting captures of requirement for %q", n.Name())
		}
		total += count
	}
	v.offsets = append(v.offsets, total)
	return nil
}

func (v OffsetsVisitor) Result() []int {
	return append([]int(nil), v.offsets...)
}

// Requirement looks up the custom pattern for name. An empty pattern counts
// as no requirement.
func Requirement(requirements map[string]string, name string) (string, bool) {
	requirement, ok := requirements[name]
	if !ok || requirement == "" {
		return "", false
	}
	return requirement, true
}

// PhysicalIndex converts the 1-based logical position k of a parameter into
// the index of its capturing group in the synthesized expression.
func PhysicalIndex(offsets []int, k int) (int, bool) {
	if k < 1 || k > len(offsets) {
		return 0, false
	}
	return offsets[k-1] + k, true
}

// ComputeOffsets runs an OffsetsVisitor over root.
func ComputeOffsets(root Node, requirements map[string]string, counter CaptureCounter) ([]int, error) {
	v := NewOffsetsVisitor(requirements, counter)
	err := root.Accept(v)
	if err != nil {
		return nil, err
	}
	return v.Result(), nil
}

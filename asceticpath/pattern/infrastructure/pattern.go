package pattern

import (
	"regexp"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	p "github.com/krew-solutions/ascetic-path-go/asceticpath/pattern/domain"
	"github.com/krew-solutions/ascetic-path-go/asceticpath/pattern/domain/definition"
)

type options struct {
	parser  p.Parser
	counter p.CaptureCounter
}

type Option func(*options)

// WithParser replaces the default route parser.
func WithParser(parser p.Parser) Option {
	return func(o *options) {
		o.parser = parser
	}
}

// WithCaptureCounter replaces NativeCaptureCounter.
func WithCaptureCounter(counter p.CaptureCounter) Option {
	return func(o *options) {
		o.counter = counter
	}
}

func newOptions(opts []Option) options {
	o := options{
		parser:  definition.NewParser(),
		counter: NativeCaptureCounter{},
	}
	for i := range opts {
		opts[i](&o)
	}
	return o
}

// New compiles a Pattern from a plain specification string or a Strexp.
//
// A string is anchored, has no requirements and uses DefaultSeparators.
// Any other argument type fails with ErrUnsupportedExpression.
func New(strexp any, opts ...Option) (*Pattern, error) {
	var exp Strexp
	switch s := strexp.(type) {
	case string:
		exp = defaultStrexp(s)
	case Strexp:
		exp = s
	case *Strexp:
		if s == nil {
			return nil, errors.Wrap(ErrUnsupportedExpression, "nil *Strexp")
		}
		exp = *s
	default:
		return nil, errors.Wrapf(ErrUnsupportedExpression, "%T", strexp)
	}

	o := newOptions(opts)
	root, err := o.parser.Parse(exp.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "pattern: parsing %q", exp.Path)
	}
	return compile(root, exp.Requirements, exp.separators(), exp.Anchor, o)
}

// Compile builds a Pattern from a tree produced by an external parser.
func Compile(root p.Node, requirements map[string]string, separators string, anchored bool, opts ...Option) (*Pattern, error) {
	return compile(root, requirements, separators, anchored, newOptions(opts))
}

func compile(root p.Node, requirements map[string]string, separators string, anchored bool, o options) (*Pattern, error) {
	pt := &Pattern{
		spec:         root,
		pathSpec:     pathTree(root),
		requirements: copyRequirements(requirements),
		separators:   separators,
		anchored:     anchored,
	}

	err := validateRequirements(root, pt.requirements)
	if err != nil {
		return nil, err
	}

	pt.names, err = p.ExtractNames(root)
	if err != nil {
		return nil, err
	}

	pt.offsets, err = p.ComputeOffsets(root, pt.requirements, o.counter)
	if err != nil {
		return nil, err
	}

	pt.source, err = Synthesize(root, separators, pt.requirements, Anchored(anchored))
	if err != nil {
		return nil, err
	}
	pt.re, err = regexp.Compile(pt.source)
	if err != nil {
		return nil, errors.Wrapf(err, "pattern: compiling %q", pt.source)
	}
	return pt, nil
}

// validateRequirements compiles the requirement of every parameter in the
// tree and reports all failures at once. Requirements for names the tree
// does not mention are ignored.
func validateRequirements(root p.Node, requirements map[string]string) error {
	var result error
	seen := make(map[string]struct{})
	p.Walk(root, func(n p.Node) bool {
		symbol, ok := n.(p.SymbolNode)
		if !ok {
			return true
		}
		name := symbol.Name()
		if _, ok := seen[name]; ok {
			return true
		}
		seen[name] = struct{}{}
		requirement, ok := p.Requirement(requirements, name)
		if !ok {
			return true
		}
		if _, err := regexp.Compile(requirement); err != nil {
			result = multierror.Append(result, &RequirementError{
				Name:        name,
				Requirement: requirement,
				Err:         err,
			})
		}
		return true
	})
	return result
}

func copyRequirements(requirements map[string]string) map[string]string {
	result := make(map[string]string, len(requirements))
	for k, v := range requirements {
		result[k] = v
	}
	return result
}

// Pattern is a compiled path specification. It is immutable and safe for
// concurrent use.
type Pattern struct {
	spec         p.Node
	pathSpec     p.Node
	requirements map[string]string
	separators   string
	anchored     bool

	names   *p.NamesVisitor
	offsets []int
	source  string
	re      *regexp.Regexp
}

func (pt *Pattern) Spec() p.Node {
	return pt.spec
}

func (pt *Pattern) Requirements() map[string]string {
	return copyRequirements(pt.requirements)
}

func (pt *Pattern) Separators() string {
	return pt.separators
}

func (pt *Pattern) Anchored() bool {
	return pt.anchored
}

// Names lists every parameter in document order.
func (pt *Pattern) Names() []string {
	return pt.names.Names()
}

func (pt *Pattern) RequiredNames() []string {
	return pt.names.RequiredNames()
}

func (pt *Pattern) OptionalNames() []string {
	return pt.names.OptionalNames()
}

// Offsets returns the cumulative count of extra capturing groups injected
// by requirement patterns, one entry more than there are SYMBOL leaves.
func (pt *Pattern) Offsets() []int {
	return append([]int(nil), pt.offsets...)
}

func (pt *Pattern) Source() string {
	return pt.source
}

func (pt *Pattern) Regexp() *regexp.Regexp {
	return pt.re
}

// Match runs the synthesized expression against candidate. A miss is
// reported by ok == false, never as an error.
func (pt *Pattern) Match(candidate string) (md *MatchData, ok bool) {
	loc := pt.re.FindStringSubmatchIndex(candidate)
	if loc == nil {
		return nil, false
	}
	return newMatchData(pt.Names(), pt.offsets, candidate, loc), true
}

func (pt *Pattern) MatchString(candidate string) bool {
	return pt.re.MatchString(candidate)
}

// MatchTokens matches the tree structurally against stream.
func (pt *Pattern) MatchTokens(stream p.TokenStream) (map[string]string, error) {
	return p.MatchTokens(pt.spec, stream)
}

// MatchPath tokenizes candidate with the default scanner and matches it
// structurally. Unlike MatchTokens, literals are compared with their
// unquoted text, since the scanner yields raw path text.
func (pt *Pattern) MatchPath(candidate string) (map[string]string, error) {
	return p.MatchTokens(pt.pathSpec, definition.NewScanner(candidate))
}

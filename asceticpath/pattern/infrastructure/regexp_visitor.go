package pattern

import (
	"regexp/syntax"
	"strings"
	"unicode/utf8"

	p "github.com/krew-solutions/ascetic-path-go/asceticpath/pattern/domain"
)

// Synthesize compiles the tree rooted at root into regular-expression text.
func Synthesize(root p.Node, separators string, requirements map[string]string, opts ...RegexpVisitorOption) (string, error) {
	v := NewRegexpVisitor(separators, requirements, opts...)
	err := root.Accept(v)
	if err != nil {
		return "", err
	}
	return v.Result()
}

type RegexpVisitorOption func(*RegexpVisitor)

// Anchored selects between a full match (the default) and a prefix match.
// Prefix matches leave the remainder of the path to nested patterns.
func Anchored(anchored bool) RegexpVisitorOption {
	return func(v *RegexpVisitor) {
		v.anchored = anchored
	}
}

func NewRegexpVisitor(separators string, requirements map[string]string, opts ...RegexpVisitorOption) *RegexpVisitor {
	v := &RegexpVisitor{
		requirements: requirements,
		separatorRe:  separatorPattern(separators),
		anchored:     true,
	}
	v.BaseVisitor = p.NewBaseVisitor(v)
	for i := range opts {
		opts[i](v)
	}
	return v
}

type RegexpVisitor struct {
	p.BaseVisitor
	source       string
	requirements map[string]string
	separatorRe  string
	anchored     bool
}

func (v *RegexpVisitor) VisitPath(n p.PathNode) error {
	v.source += `\A`
	err := v.BaseVisitor.VisitPath(n)
	if err != nil {
		return err
	}
	if v.anchored {
		v.source += `\z`
	}
	return nil
}

func (v *RegexpVisitor) VisitSlash(n p.SlashNode) error {
	v.source += "/"
	return v.BaseVisitor.VisitSlash(n)
}

func (v *RegexpVisitor) VisitDot(n p.DotNode) error {
	v.source += `\.`
	return v.BaseVisitor.VisitDot(n)
}

func (v *RegexpVisitor) VisitLiteral(n p.LiteralNode) error {
	v.source += n.Text()
	return nil
}

func (v *RegexpVisitor) VisitSymbol(n p.SymbolNode) error {
	requirement, ok := p.Requirement(v.requirements, n.Name())
	if !ok {
		v.source += v.separatorRe
		return nil
	}
	// The trailing "?" has always been emitted; removing it changes what
	// unanchored patterns capture. RE2 rejects it after a lazy quantifier.
	if endsLazy(requirement) {
		v.source += "(" + requirement + ")"
		return nil
	}
	v.source += "(" + requirement + "?)"
	return nil
}

func (v *RegexpVisitor) VisitGroup(n p.GroupNode) error {
	v.source += "(?:"
	err := v.BaseVisitor.VisitGroup(n)
	if err != nil {
		return err
	}
	v.source += ")?"
	return nil
}

func (v *RegexpVisitor) VisitStar(_ p.StarNode) error {
	v.source += "(.+)"
	return nil
}

func (v RegexpVisitor) Result() (string, error) {
	return v.source, nil
}

// separatorPattern captures one or more characters that are not separators.
func separatorPattern(separators string) string {
	if separators == "" {
		return "(.+)"
	}
	class := ""
	for _, r := range separators {
		if r < utf8.RuneSelf && !isAlnum(r) {
			class += `\`
		}
		class += string(r)
	}
	return "([^" + class + "]+)"
}

func isAlnum(r rune) bool {
	return '0' <= r && r <= '9' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

// endsLazy reports whether the last element of requirement is a non-greedy
// repetition, e.g. `\d+?` or `a|x{2}?`.
func endsLazy(requirement string) bool {
	if !strings.HasSuffix(requirement, "?") {
		return false
	}
	re, err := syntax.Parse(requirement, syntax.Perl)
	if err != nil {
		return false
	}
	for (re.Op == syntax.OpConcat || re.Op == syntax.OpAlternate) && len(re.Sub) > 0 {
		re = re.Sub[len(re.Sub)-1]
	}
	switch re.Op {
	case syntax.OpStar, syntax.OpPlus, syntax.OpQuest, syntax.OpRepeat:
		return re.Flags&syntax.NonGreedy != 0
	}
	return false
}

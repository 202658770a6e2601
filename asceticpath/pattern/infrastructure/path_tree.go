package pattern

import (
	"strings"

	p "github.com/krew-solutions/ascetic-path-go/asceticpath/pattern/domain"
)

// pathTree copies root with LITERAL text unquoted, so the structural matcher
// can compare it with tokens scanned from a raw candidate path. Literals hold
// regexp text quoted by the parser; scanned tokens never do.
func pathTree(root p.Node) p.Node {
	switch n := root.(type) {
	case p.PathNode:
		return p.Path(pathChildren(n)...)
	case p.SlashNode:
		return p.Slash(pathChildren(n)...)
	case p.DotNode:
		return p.Dot(pathChildren(n)...)
	case p.GroupNode:
		return p.Group(pathChildren(n)...)
	case p.LiteralNode:
		return p.Literal(unquoteMeta(n.Text()))
	}
	return root
}

func pathChildren(n p.Composite) []p.Node {
	children := n.Children()
	result := make([]p.Node, len(children))
	for i, child := range children {
		result[i] = pathTree(child)
	}
	return result
}

// unquoteMeta reverses regexp.QuoteMeta.
func unquoteMeta(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

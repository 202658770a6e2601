package pattern

// NewBaseVisitor returns default handlers that route recursion back through
// outer, so a visitor embedding BaseVisitor sees every nested node in its own
// overridden handlers.
//
//	type countVisitor struct {
//		BaseVisitor
//		n int
//	}
//
//	v := &countVisitor{}
//	v.BaseVisitor = NewBaseVisitor(v)
func NewBaseVisitor(outer Visitor) BaseVisitor {
	return BaseVisitor{outer: outer}
}

// BaseVisitor visits the children of composite nodes in order and ignores
// terminals. The zero value recurses through itself.
type BaseVisitor struct {
	outer Visitor
}

func (v BaseVisitor) self() Visitor {
	if v.outer == nil {
		return v
	}
	return v.outer
}

func (v BaseVisitor) VisitChildren(n Composite) error {
	self := v.self()
	for _, child := range n.Children() {
		err := child.Accept(self)
		if err != nil {
			return err
		}
	}
	return nil
}

func (v BaseVisitor) VisitPath(n PathNode) error {
	return v.VisitChildren(n)
}

func (v BaseVisitor) VisitSlash(n SlashNode) error {
	return v.VisitChildren(n)
}

func (v BaseVisitor) VisitDot(n DotNode) error {
	return v.VisitChildren(n)
}

func (v BaseVisitor) VisitGroup(n GroupNode) error {
	return v.VisitChildren(n)
}

func (v BaseVisitor) VisitLiteral(_ LiteralNode) error {
	return nil
}

func (v BaseVisitor) VisitSymbol(_ SymbolNode) error {
	return nil
}

func (v BaseVisitor) VisitStar(_ StarNode) error {
	return nil
}

// Walk calls fn for node and all of its descendants in pre-order, the same
// order every visitor in this package uses. Returning false from fn skips the
// node's children.
func Walk(node Node, fn func(Node) bool) {
	if !fn(node) {
		return
	}
	if c, ok := node.(Composite); ok {
		for _, child := range c.Children() {
			Walk(child, fn)
		}
	}
}

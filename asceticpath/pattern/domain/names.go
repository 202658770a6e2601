package pattern

func NewNamesVisitor() *NamesVisitor {
	v := &NamesVisitor{
		seenOptional: make(map[string]struct{}),
	}
	v.BaseVisitor = NewBaseVisitor(v)
	return v
}

// NamesVisitor lists parameter names in document order and splits them into
// required and optional ones. A name is optional when its SYMBOL or STAR
// leaf has a GROUP ancestor.
type NamesVisitor struct {
	BaseVisitor
	groupDepth   int
	names        []string
	optional     []string
	seenOptional map[string]struct{}
}

func (v *NamesVisitor) VisitGroup(n GroupNode) error {
	v.groupDepth++
	err := v.BaseVisitor.VisitGroup(n)
	v.groupDepth--
	return err
}

func (v *NamesVisitor) VisitSymbol(n SymbolNode) error {
	v.add(n.Name())
	return nil
}

func (v *NamesVisitor) VisitStar(n StarNode) error {
	v.add(n.Name())
	return nil
}

func (v *NamesVisitor) add(name string) {
	v.names = append(v.names, name)
	if v.groupDepth == 0 {
		return
	}
	if _, ok := v.seenOptional[name]; ok {
		return
	}
	v.seenOptional[name] = struct{}{}
	v.optional = append(v.optional, name)
}

func (v NamesVisitor) Names() []string {
	return append([]string(nil), v.names...)
}

func (v NamesVisitor) OptionalNames() []string {
	return append([]string(nil), v.optional...)
}

// RequiredNames is Names without any name that also occurs inside a group.
func (v NamesVisitor) RequiredNames() []string {
	var required []string
	for _, name := range v.names {
		if _, ok := v.seenOptional[name]; !ok {
			required = append(required, name)
		}
	}
	return required
}

// ExtractNames runs a NamesVisitor over root.
func ExtractNames(root Node) (*NamesVisitor, error) {
	v := NewNamesVisitor()
	err := root.Accept(v)
	if err != nil {
		return nil, err
	}
	return v, nil
}

package identity

// Expr is a host-supplied filter expression. Connectors translate the subset
// they can serve natively; everything else degrades to a full scan.
type Expr interface {
	isExpr()
}

// EqualsExpr matches objects whose attribute equals the given value.
type EqualsExpr struct {
	Attribute Attribute
}

// NotExpr negates an expression.
type NotExpr struct {
	Expr Expr
}

// AndExpr matches when both operands match.
type AndExpr struct {
	Left, Right Expr
}

// OrExpr matches when either operand matches.
type OrExpr struct {
	Left, Right Expr
}

// ContainsExpr matches objects whose attribute contains the given substring.
type ContainsExpr struct {
	Attribute Attribute
}

func (EqualsExpr) isExpr()   {}
func (NotExpr) isExpr()      {}
func (AndExpr) isExpr()      {}
func (OrExpr) isExpr()       {}
func (ContainsExpr) isExpr() {}

// Filter is the translated provider query: a lookup either by the identifier
// or by the name attribute. A nil *Filter means "list everything".
type Filter struct {
	ByUID bool   // true: identifier lookup, false: name lookup
	Value string // the identifier or name to match
}

// ByUIDFilter creates an identifier lookup.
func ByUIDFilter(uid string) *Filter {
	return &Filter{ByUID: true, Value: uid}
}

// ByNameFilter creates a name lookup. Name matching is case-insensitive.
func ByNameFilter(name string) *Filter {
	return &Filter{ByUID: false, Value: name}
}

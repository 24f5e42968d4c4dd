package connector

import (
	"github.com/isometry/connector-datadog/internal/identity"
)

// TranslateFilter converts a host filter expression into the provider query
// the client can serve. Only an equality test on the identifier attribute or
// on the name attribute translates; everything else, including a nil
// expression, yields nil and the caller falls back to a full enumeration.
func TranslateFilter(info identity.ObjectClassInfo, expr identity.Expr) *identity.Filter {
	eq, ok := expr.(identity.EqualsExpr)
	if !ok {
		return nil
	}

	value, ok := eq.Attribute.FirstString()
	if !ok {
		return nil
	}

	if id, found := info.IdentifierAttribute(); found && eq.Attribute.Name == id.Name {
		return identity.ByUIDFilter(value)
	}
	if name, found := info.NameAttributeInfo(); found && eq.Attribute.Name == name.Name {
		return identity.ByNameFilter(value)
	}
	return nil
}

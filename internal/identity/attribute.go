package identity

import "time"

// Attribute is a named value set. Single-valued attributes carry one value,
// multi-valued attributes any number. An attribute with Incomplete set marks a
// value the producer deliberately did not fetch; consumers must not treat the
// empty value list as authoritative in that case.
type Attribute struct {
	Name       string
	Values     []any
	Incomplete bool
}

// NewAttribute creates an attribute from the given values.
func NewAttribute(name string, values ...any) Attribute {
	return Attribute{Name: name, Values: values}
}

// NewIncompleteAttribute creates an attribute whose value is marked as not
// fetched. It carries no values.
func NewIncompleteAttribute(name string) Attribute {
	return Attribute{Name: name, Incomplete: true, Values: []any{}}
}

// Is reports whether the attribute has the given name.
func (a Attribute) Is(name string) bool {
	return a.Name == name
}

// FirstString returns the first value as a string. The second return is false
// when the attribute has no values or the first value is not a string.
func (a Attribute) FirstString() (string, bool) {
	if len(a.Values) == 0 {
		return "", false
	}
	s, ok := a.Values[0].(string)
	return s, ok
}

// FirstBool returns the first value as a bool.
func (a Attribute) FirstBool() (bool, bool) {
	if len(a.Values) == 0 {
		return false, false
	}
	b, ok := a.Values[0].(bool)
	return b, ok
}

// FirstTime returns the first value as a time.Time.
func (a Attribute) FirstTime() (time.Time, bool) {
	if len(a.Values) == 0 {
		return time.Time{}, false
	}
	t, ok := a.Values[0].(time.Time)
	return t, ok
}

// StringValues returns all values that are strings, in order.
func (a Attribute) StringValues() []string {
	out := make([]string, 0, len(a.Values))
	for _, v := range a.Values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// FindAttribute returns the named attribute from a set and whether it is
// present.
func FindAttribute(attrs []Attribute, name string) (Attribute, bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

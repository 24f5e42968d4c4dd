package identity

// Delta describes a change to a single attribute inside an update operation.
// A delta is either a replace (Replace non-nil, even when empty) or a
// membership change (Add/Remove values for multi-valued attributes); the two
// forms are mutually exclusive. A replace with no values deletes the value.
type Delta struct {
	Name    string
	Replace []any
	Add     []any
	Remove  []any
}

// NewReplaceDelta creates a replace delta. With no values it expresses value
// deletion.
func NewReplaceDelta(name string, values ...any) Delta {
	if values == nil {
		values = []any{}
	}
	return Delta{Name: name, Replace: values}
}

// NewAddDelta creates a delta adding values to a multi-valued attribute.
func NewAddDelta(name string, values ...any) Delta {
	return Delta{Name: name, Add: values}
}

// NewRemoveDelta creates a delta removing values from a multi-valued attribute.
func NewRemoveDelta(name string, values ...any) Delta {
	return Delta{Name: name, Remove: values}
}

// Is reports whether the delta targets the given attribute name.
func (d Delta) Is(name string) bool {
	return d.Name == name
}

// IsReplace reports whether the delta is a replace, including a replace with
// no values.
func (d Delta) IsReplace() bool {
	return d.Replace != nil
}

// ReplaceString returns the replacement value as a string. The second return
// is false when the delta replaces with no value or a non-string value.
func (d Delta) ReplaceString() (string, bool) {
	if len(d.Replace) == 0 {
		return "", false
	}
	s, ok := d.Replace[0].(string)
	return s, ok
}

// ReplaceBool returns the replacement value as a bool.
func (d Delta) ReplaceBool() (bool, bool) {
	if len(d.Replace) == 0 {
		return false, false
	}
	b, ok := d.Replace[0].(bool)
	return b, ok
}

// FindDelta returns the delta targeting the given attribute name from a set
// and whether it is present.
func FindDelta(deltas []Delta, name string) (Delta, bool) {
	for _, d := range deltas {
		if d.Name == name {
			return d, true
		}
	}
	return Delta{}, false
}

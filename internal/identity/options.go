package identity

// Search option names advertised through the schema.
const (
	OptionAttributesToGet         = "ATTRS_TO_GET"
	OptionReturnDefaultAttributes = "RETURN_DEFAULT_ATTRIBUTES"
)

// OperationOptions carries the caller-supplied options of a search.
type OperationOptions struct {
	// AttributesToGet is the explicit allow-list of attributes to include in
	// results. Nil means not provided.
	AttributesToGet []string

	// ReturnDefaultAttributes requests all attributes the schema marks as
	// returned by default.
	ReturnDefaultAttributes bool

	// AllowPartialAttributeValues permits expensive-to-fetch attributes to be
	// reported as incomplete instead of fully resolved.
	AllowPartialAttributeValues bool
}

// FullAttributesToGet resolves the effective allow-list against an object
// class table: nil when neither option is provided (producers then fall back
// to per-attribute defaults), otherwise the union of the returned-by-default
// names and the explicit list.
func (o OperationOptions) FullAttributesToGet(info ObjectClassInfo) map[string]bool {
	var set map[string]bool

	if o.ReturnDefaultAttributes {
		set = make(map[string]bool)
		for _, name := range info.ReturnedByDefault() {
			set[name] = true
		}
	}
	if o.AttributesToGet != nil {
		if set == nil {
			set = make(map[string]bool)
		}
		for _, name := range o.AttributesToGet {
			set[name] = true
		}
	}

	return set
}

// ShouldReturn reports whether an attribute belongs in the result for the
// given allow-list. A nil allow-list admits everything.
func ShouldReturn(attributesToGet map[string]bool, name string) bool {
	if attributesToGet == nil {
		return true
	}
	return attributesToGet[name]
}

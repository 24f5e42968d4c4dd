package identity

// ObjectClass identifies the kind of object an operation works on.
type ObjectClass string

const (
	ObjectClassUser ObjectClass = "user"
	ObjectClassRole ObjectClass = "role"
)

// String returns the string representation of the object class.
func (c ObjectClass) String() string {
	return string(c)
}

// UID is the server-assigned identifier of an object. It is minted on create,
// never changes, and addresses the object on update, delete and get.
type UID struct {
	Value string // Opaque provider identifier
	Name  string // Name of the object when the UID was minted (optional hint)
}

// NewUID creates a UID with an optional name hint.
func NewUID(value, name string) UID {
	return UID{Value: value, Name: name}
}

func (u UID) String() string {
	return u.Value
}

// Object is a single search result: the distinguished identifier and name plus
// the projected attributes.
type Object struct {
	Class      ObjectClass
	UID        UID
	Name       string
	Attributes []Attribute
}

// Attribute returns the named attribute and whether it is present.
func (o Object) Attribute(name string) (Attribute, bool) {
	for _, a := range o.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// ResultsHandler consumes objects produced by a search. Returning false stops
// the enumeration; remaining pages are not fetched.
type ResultsHandler func(obj Object) bool

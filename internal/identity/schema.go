package identity

// AttributeType describes the value type of a schema attribute.
type AttributeType string

const (
	TypeString AttributeType = "string"
	TypeBool   AttributeType = "bool"
	TypeInt64  AttributeType = "int64"
	TypeTime   AttributeType = "time"
)

// String returns the string representation of the attribute type.
func (t AttributeType) String() string {
	return string(t)
}

// AttributeInfo declares a single attribute of an object class: its type and
// the capability flags the connector enforces before calling the provider.
type AttributeInfo struct {
	Name              string
	Type              AttributeType
	Required          bool // Must be present on create
	Creatable         bool // May be supplied on create
	Updateable        bool // May be targeted by an update delta
	Readable          bool // May appear in search results
	MultiValued       bool // Carries a value list instead of a single value
	ReturnedByDefault bool // Included when no explicit allow-list is given
	CaseInsensitive   bool // Values compare case-insensitively
	Identifier        bool // Server-assigned unique identifier attribute
	NameAttribute     bool // User-facing unique name attribute
}

// ObjectClassInfo is the full attribute table of one object class.
type ObjectClassInfo struct {
	Class      ObjectClass
	Attributes []AttributeInfo
}

// Find returns the named attribute declaration and whether it exists.
func (o ObjectClassInfo) Find(name string) (AttributeInfo, bool) {
	for _, a := range o.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return AttributeInfo{}, false
}

// ReturnedByDefault returns the names of all attributes included in results
// when the caller supplies no explicit allow-list.
func (o ObjectClassInfo) ReturnedByDefault() []string {
	var names []string
	for _, a := range o.Attributes {
		if a.ReturnedByDefault {
			names = append(names, a.Name)
		}
	}
	return names
}

// IdentifierAttribute returns the declaration of the identifier attribute.
func (o ObjectClassInfo) IdentifierAttribute() (AttributeInfo, bool) {
	for _, a := range o.Attributes {
		if a.Identifier {
			return a, true
		}
	}
	return AttributeInfo{}, false
}

// NameAttributeInfo returns the declaration of the name attribute.
func (o ObjectClassInfo) NameAttributeInfo() (AttributeInfo, bool) {
	for _, a := range o.Attributes {
		if a.NameAttribute {
			return a, true
		}
	}
	return AttributeInfo{}, false
}

// Schema is the complete connector schema: the object classes it serves and
// the search options it recognizes.
type Schema struct {
	ObjectClasses []ObjectClassInfo
	SearchOptions []string
}

// ObjectClass returns the table for the given class and whether it is served.
func (s Schema) ObjectClass(class ObjectClass) (ObjectClassInfo, bool) {
	for _, o := range s.ObjectClasses {
		if o.Class == class {
			return o, true
		}
	}
	return ObjectClassInfo{}, false
}

// Package identity defines the provider-independent object model shared by
// the connector packages: object classes, attributes and attribute deltas,
// operation options, schema tables, filter expressions, the error taxonomy
// and the logging interface.
//
// The package carries no HTTP or provider knowledge. The datadog package
// translates between these types and the provider wire format; the connector
// package dispatches host operations over them.
//
// # Attributes and deltas
//
// An Attribute is a named value set supplied on create and returned from
// searches. A Delta is a single attribute-level change inside an update: a
// replace (possibly empty, expressing value deletion) or an add/remove pair
// for multi-valued attributes.
//
// # Schema tables
//
// Each object class declares its attributes as a static AttributeInfo table:
// type, required/creatable/updateable/readable flags, multi-valuedness,
// returned-by-default and case sensitivity, plus which attribute is the
// server-assigned identifier and which the unique name. Input validation and
// result projection are driven by these tables rather than per-attribute
// conditionals.
//
// # Errors
//
// All failures surface as *Error values classified into a small category
// taxonomy (invalid_value, already_exists, unknown_uid, connection, io,
// protocol). CategorizeStatus maps provider HTTP status codes into it, and
// the Is* helpers let callers dispatch without unwrapping.
package identity

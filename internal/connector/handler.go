package connector

import (
	"context"
	"fmt"

	"github.com/isometry/connector-datadog/internal/identity"
)

// objectHandler serves one object class. The connector routes every operation
// through this interface instead of switching on the class.
type objectHandler interface {
	schema() identity.ObjectClassInfo
	create(ctx context.Context, attrs []identity.Attribute) (*identity.UID, error)
	updateDelta(ctx context.Context, uid identity.UID, deltas []identity.Delta) error
	delete(ctx context.Context, uid identity.UID) error
	search(ctx context.Context, filter *identity.Filter, handler identity.ResultsHandler, opts identity.OperationOptions) error
}

// validateCreateAttrs rejects attributes the class table does not allow on
// create, before any provider call is made.
func validateCreateAttrs(operation string, info identity.ObjectClassInfo, attrs []identity.Attribute) error {
	for _, attr := range attrs {
		decl, ok := info.Find(attr.Name)
		if !ok {
			return identity.NewInvalidValueError(operation, fmt.Sprintf("unknown attribute: %s", attr.Name))
		}
		if !decl.Creatable {
			return identity.NewInvalidValueError(operation, fmt.Sprintf("attribute cannot be set on create: %s", attr.Name))
		}
	}
	return nil
}

// validateDeltas rejects deltas targeting attributes the class table does not
// allow to change.
func validateDeltas(operation string, info identity.ObjectClassInfo, deltas []identity.Delta) error {
	for _, delta := range deltas {
		decl, ok := info.Find(delta.Name)
		if !ok {
			return identity.NewInvalidValueError(operation, fmt.Sprintf("unknown attribute: %s", delta.Name))
		}
		if !decl.Updateable {
			return identity.NewInvalidValueError(operation, fmt.Sprintf("attribute cannot be updated: %s", delta.Name))
		}
	}
	return nil
}

package connector

import (
	"context"

	"github.com/isometry/connector-datadog/internal/datadog"
	"github.com/isometry/connector-datadog/internal/identity"
)

// userHandler serves the user object class on top of the Datadog client.
type userHandler struct {
	client datadog.Client
}

func (h *userHandler) schema() identity.ObjectClassInfo {
	return userSchema()
}

func (h *userHandler) create(ctx context.Context, attrs []identity.Attribute) (*identity.UID, error) {
	if err := validateCreateAttrs("create user", h.schema(), attrs); err != nil {
		return nil, err
	}
	return h.client.CreateUser(ctx, attrs)
}

func (h *userHandler) updateDelta(ctx context.Context, uid identity.UID, deltas []identity.Delta) error {
	if err := validateDeltas("update user", h.schema(), deltas); err != nil {
		return err
	}
	return h.client.UpdateUser(ctx, uid, deltas)
}

func (h *userHandler) delete(ctx context.Context, uid identity.UID) error {
	return h.client.DeleteUser(ctx, uid)
}

func (h *userHandler) search(ctx context.Context, filter *identity.Filter, handler identity.ResultsHandler, opts identity.OperationOptions) error {
	searchOpts := datadog.SearchOptions{
		AttributesToGet: opts.FullAttributesToGet(h.schema()),
		AllowPartial:    opts.AllowPartialAttributeValues,
	}

	switch {
	case filter == nil:
		return h.client.GetUsers(ctx, handler, searchOpts)
	case filter.ByUID:
		return h.client.GetUserByUID(ctx, identity.NewUID(filter.Value, ""), handler, searchOpts)
	default:
		return h.client.GetUserByName(ctx, filter.Value, handler, searchOpts)
	}
}

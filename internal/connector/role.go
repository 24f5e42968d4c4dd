package connector

import (
	"context"

	"github.com/isometry/connector-datadog/internal/datadog"
	"github.com/isometry/connector-datadog/internal/identity"
)

// roleHandler serves the role object class.
type roleHandler struct {
	client datadog.Client
}

func (h *roleHandler) schema() identity.ObjectClassInfo {
	return roleSchema()
}

func (h *roleHandler) create(ctx context.Context, attrs []identity.Attribute) (*identity.UID, error) {
	if err := validateCreateAttrs("create role", h.schema(), attrs); err != nil {
		return nil, err
	}
	return h.client.CreateRole(ctx, attrs)
}

func (h *roleHandler) updateDelta(ctx context.Context, uid identity.UID, deltas []identity.Delta) error {
	if err := validateDeltas("update role", h.schema(), deltas); err != nil {
		return err
	}
	return h.client.UpdateRole(ctx, uid, deltas)
}

func (h *roleHandler) delete(ctx context.Context, uid identity.UID) error {
	return h.client.DeleteRole(ctx, uid)
}

func (h *roleHandler) search(ctx context.Context, filter *identity.Filter, handler identity.ResultsHandler, opts identity.OperationOptions) error {
	searchOpts := datadog.SearchOptions{
		AttributesToGet: opts.FullAttributesToGet(h.schema()),
		AllowPartial:    opts.AllowPartialAttributeValues,
	}

	switch {
	case filter == nil:
		return h.client.GetRoles(ctx, handler, searchOpts)
	case filter.ByUID:
		return h.client.GetRoleByUID(ctx, identity.NewUID(filter.Value, ""), handler, searchOpts)
	default:
		return h.client.GetRoleByName(ctx, filter.Value, handler, searchOpts)
	}
}

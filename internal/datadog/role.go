package datadog

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/isometry/connector-datadog/internal/identity"
)

// roleMapPageSize is the page size used when loading the role maps. Custom
// roles are an opt-in feature; a single page covers realistic installations.
const roleMapPageSize = 100

// CreateRole creates a role and returns its UID.
func (c *client) CreateRole(ctx context.Context, attrs []identity.Attribute) (*identity.UID, error) {
	const operation = "create role"

	nameAttr, ok := identity.FindAttribute(attrs, AttrName)
	if !ok {
		return nil, identity.NewInvalidValueError(operation, "role name is required to create a role")
	}
	name, ok := nameAttr.FirstString()
	if !ok || name == "" {
		return nil, identity.NewInvalidValueError(operation, "role name is required to create a role")
	}

	body := rolePayload{Data: roleData{
		Type:       typeRoles,
		Attributes: &roleAttributes{Name: name},
	}}

	var created roleData

	err := identity.LogOperation(c.log, operation, map[string]any{
		"name": name,
	}, func() error {
		var result rolePayload
		resp, err := c.newRequest(ctx, &result).SetBody(body).Post(pathRoles)
		if err != nil {
			return identity.WrapError(operation, err)
		}
		if err := c.checkResponse(operation, resp, http.StatusCreated); err != nil {
			return err
		}
		created = result.Data
		return nil
	})
	if err != nil {
		return nil, err
	}

	createdName := ""
	if created.Attributes != nil {
		createdName = created.Attributes.Name
	}
	uid := identity.NewUID(created.ID, createdName)
	return &uid, nil
}

// UpdateRole renames a role. The name is the only updateable role attribute,
// so a replace delta on it is required.
func (c *client) UpdateRole(ctx context.Context, uid identity.UID, deltas []identity.Delta) error {
	const operation = "update role"

	if err := validateUID(operation, uid); err != nil {
		return err
	}

	delta, ok := identity.FindDelta(deltas, AttrName)
	if !ok {
		return identity.NewInvalidValueError(operation, "role name is required to update a role")
	}
	name, ok := delta.ReplaceString()
	if !ok {
		return identity.NewInvalidValueError(operation, "role name is required to update a role")
	}

	body := rolePayload{Data: roleData{
		Type:       typeRoles,
		ID:         uid.Value,
		Attributes: &roleAttributes{Name: name},
	}}

	return identity.LogOperation(c.log, operation, map[string]any{
		"role_id": uid.Value,
		"name":    name,
	}, func() error {
		resp, err := c.newRequest(ctx, nil).
			SetPathParam("roleId", uid.Value).
			SetBody(body).
			Patch(pathRole)
		if err != nil {
			return identity.WrapError(operation, err)
		}
		if resp.IsError() {
			return c.apiError(operation, resp)
		}
		return nil
	})
}

// DeleteRole removes a role.
func (c *client) DeleteRole(ctx context.Context, uid identity.UID) error {
	const operation = "delete role"

	if err := validateUID(operation, uid); err != nil {
		return err
	}

	return identity.LogOperation(c.log, operation, map[string]any{
		"role_id": uid.Value,
	}, func() error {
		resp, err := c.newRequest(ctx, nil).
			SetPathParam("roleId", uid.Value).
			Delete(pathRole)
		if err != nil {
			return identity.WrapError(operation, err)
		}
		return c.checkResponse(operation, resp, http.StatusNoContent)
	})
}

// GetRoles enumerates all roles page by page, sorted by name.
func (c *client) GetRoles(ctx context.Context, handler identity.ResultsHandler, opts SearchOptions) error {
	const operation = "get roles"

	return identity.LogOperation(c.log, operation, map[string]any{
		"page_size": c.config.PageSize,
	}, func() error {
		for page := 0; ; page++ {
			if page >= c.config.MaxPages {
				return pageLimitError(operation, page)
			}

			roles, err := c.listRoles(ctx, operation, page, c.config.PageSize, "name")
			if err != nil {
				return err
			}
			if len(roles) == 0 {
				return nil
			}

			for _, r := range roles {
				if !handler(roleObject(r, opts)) {
					return nil
				}
			}
		}
	})
}

// GetRoleByUID fetches a single role by id.
func (c *client) GetRoleByUID(ctx context.Context, uid identity.UID, handler identity.ResultsHandler, opts SearchOptions) error {
	const operation = "get role"

	if err := validateUID(operation, uid); err != nil {
		return err
	}

	return identity.LogOperation(c.log, operation, map[string]any{
		"role_id": uid.Value,
	}, func() error {
		var result rolePayload
		resp, err := c.newRequest(ctx, &result).
			SetPathParam("roleId", uid.Value).
			Get(pathRole)
		if err != nil {
			return identity.WrapError(operation, err)
		}
		if err := c.checkResponse(operation, resp, http.StatusOK); err != nil {
			return err
		}

		handler(roleObject(result.Data, opts))
		return nil
	})
}

// GetRoleByName finds a role by name with a case-insensitive listing scan;
// the first match wins and no match is not an error.
func (c *client) GetRoleByName(ctx context.Context, name string, handler identity.ResultsHandler, opts SearchOptions) error {
	const operation = "get role by name"

	return identity.LogOperation(c.log, operation, map[string]any{
		"name": name,
	}, func() error {
		for page := 0; ; page++ {
			if page >= c.config.MaxPages {
				return pageLimitError(operation, page)
			}

			roles, err := c.listRoles(ctx, operation, page, c.config.PageSize, "name")
			if err != nil {
				return err
			}
			if len(roles) == 0 {
				return nil
			}

			for _, r := range roles {
				if r.Attributes != nil && strings.EqualFold(r.Attributes.Name, name) {
					handler(roleObject(r, opts))
					return nil
				}
			}
		}
	})
}

// listRoles fetches one page of the role listing. An empty sort leaves the
// provider ordering in place.
func (c *client) listRoles(ctx context.Context, operation string, page, size int, sort string) ([]roleData, error) {
	var result rolesPayload
	req := c.newRequest(ctx, &result).
		SetQueryParam("page[size]", strconv.Itoa(size)).
		SetQueryParam("page[number]", strconv.Itoa(page))
	if sort != "" {
		req.SetQueryParam("sort", sort)
	}

	resp, err := req.Get(pathRoles)
	if err != nil {
		return nil, identity.WrapError(operation, err)
	}
	if err := c.checkResponse(operation, resp, http.StatusOK); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// roleNameToID loads the reverse role map: lower-cased role name to id. The
// map is rebuilt on every call; roles may change between operations.
func (c *client) roleNameToID(ctx context.Context) (map[string]string, error) {
	roles, err := c.listRoles(ctx, "get roles", 0, roleMapPageSize, "")
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(roles))
	for _, r := range roles {
		if r.Attributes == nil {
			continue
		}
		out[strings.ToLower(r.Attributes.Name)] = r.ID
	}
	return out, nil
}

// roleIDToName loads the role map: id to role name.
func (c *client) roleIDToName(ctx context.Context) (map[string]string, error) {
	roles, err := c.listRoles(ctx, "get roles", 0, roleMapPageSize, "")
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(roles))
	for _, r := range roles {
		if r.Attributes == nil {
			continue
		}
		out[r.ID] = r.Attributes.Name
	}
	return out, nil
}

// roleObject projects a role resource onto a connector object. The id and
// name are always present; the metadata attributes honor the allow-list.
// Roles carry no association attributes.
func roleObject(r roleData, opts SearchOptions) identity.Object {
	attrs := r.Attributes
	if attrs == nil {
		attrs = &roleAttributes{}
	}

	obj := identity.Object{
		Class: identity.ObjectClassRole,
		UID:   identity.NewUID(r.ID, attrs.Name),
		Name:  attrs.Name,
	}

	get := opts.AttributesToGet

	if identity.ShouldReturn(get, AttrCreatedAt) {
		if attrs.CreatedAt != nil {
			obj.Attributes = append(obj.Attributes, identity.NewAttribute(AttrCreatedAt, *attrs.CreatedAt))
		} else {
			obj.Attributes = append(obj.Attributes, identity.NewAttribute(AttrCreatedAt))
		}
	}
	if identity.ShouldReturn(get, AttrModifiedAt) {
		if attrs.ModifiedAt != nil {
			obj.Attributes = append(obj.Attributes, identity.NewAttribute(AttrModifiedAt, *attrs.ModifiedAt))
		} else {
			obj.Attributes = append(obj.Attributes, identity.NewAttribute(AttrModifiedAt))
		}
	}
	if identity.ShouldReturn(get, AttrUserCount) {
		obj.Attributes = append(obj.Attributes, identity.NewAttribute(AttrUserCount, attrs.UserCount))
	}

	return obj
}

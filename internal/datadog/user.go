package datadog

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/isometry/connector-datadog/internal/identity"
)

// validateUID rejects identifiers that are not provider UUIDs before they are
// interpolated into a request path.
func validateUID(operation string, uid identity.UID) error {
	if uid.Value == "" {
		return identity.NewInvalidValueError(operation, "uid is required")
	}
	if _, err := uuid.Parse(uid.Value); err != nil {
		return identity.NewInvalidValueError(operation, fmt.Sprintf("malformed uid: %s", uid.Value))
	}
	return nil
}

// CreateUser provisions a user and returns its UID. The handle attribute
// populates the create payload's email field; the provider derives the handle
// from it. A disabled or invited state requested at create time is applied
// with follow-up calls after the create succeeds.
func (c *client) CreateUser(ctx context.Context, attrs []identity.Attribute) (*identity.UID, error) {
	const operation = "create user"

	var (
		payload   userAttributes
		doDisable bool
		doInvite  bool
		roleNames []string
		roleIDs   []string
	)

	for _, attr := range attrs {
		switch attr.Name {
		case AttrHandle:
			payload.Email, _ = attr.FirstString()

		case AttrEnabled:
			if enabled, ok := attr.FirstBool(); ok {
				doDisable = !enabled
			}

		case AttrName:
			if name, ok := attr.FirstString(); ok {
				payload.Name = &name
			}

		case AttrTitle:
			payload.Title, _ = attr.FirstString()

		case AttrInvitation:
			if invite, ok := attr.FirstBool(); ok && invite {
				doInvite = true
			}

		case AttrRoleNames:
			roleNames = attr.StringValues()

		case AttrRoles:
			roleIDs = attr.StringValues()
		}
	}

	if payload.Email == "" {
		return nil, identity.NewInvalidValueError(operation, "handle is required to create a user")
	}

	relationships := &userRelationships{Roles: &relationshipList{Data: []relationshipData{}}}

	if len(roleNames) > 0 {
		reverse, err := c.roleNameToID(ctx)
		if err != nil {
			return nil, err
		}
		resolved, err := resolveRoleNames(operation, reverse, roleNames)
		if err != nil {
			return nil, err
		}
		for _, id := range resolved {
			relationships.Roles.Data = append(relationships.Roles.Data, relationshipData{ID: id, Type: typeRoles})
		}
	}
	for _, id := range roleIDs {
		relationships.Roles.Data = append(relationships.Roles.Data, relationshipData{ID: id, Type: typeRoles})
	}

	body := userPayload{Data: userData{
		Type:          typeUsers,
		Attributes:    &payload,
		Relationships: relationships,
	}}

	var created userData

	err := identity.LogOperation(c.log, operation, map[string]any{
		"handle": payload.Email,
	}, func() error {
		var result userPayload
		resp, err := c.newRequest(ctx, &result).SetBody(body).Post(pathUsers)
		if err != nil {
			return identity.WrapError(operation, err)
		}
		if err := c.checkResponse(operation, resp, http.StatusCreated); err != nil {
			return err
		}
		created = result.Data

		if doDisable {
			return c.disable(ctx, operation, created.ID)
		}
		if doInvite {
			return c.invite(ctx, operation, created.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	handle := ""
	if created.Attributes != nil {
		handle = created.Attributes.Handle
	}
	uid := identity.NewUID(created.ID, handle)
	return &uid, nil
}

// resolveRoleNames maps role names to ids through the reverse role map,
// case-insensitively. An unknown name aborts the whole operation.
func resolveRoleNames(operation string, reverse map[string]string, names []string) ([]string, error) {
	ids := make([]string, 0, len(names))
	for _, name := range names {
		id, ok := reverse[strings.ToLower(name)]
		if !ok {
			return nil, identity.NewInvalidValueError(operation, fmt.Sprintf("invalid datadog role name: %s", name))
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// UpdateUser applies attribute deltas to an existing user. Attribute changes
// go out as a single partial update; role membership changes and a requested
// invitation follow as separate calls.
func (c *client) UpdateUser(ctx context.Context, uid identity.UID, deltas []identity.Delta) error {
	const operation = "update user"

	if err := validateUID(operation, uid); err != nil {
		return err
	}

	return identity.LogOperation(c.log, operation, map[string]any{
		"user_id": uid.Value,
		"deltas":  len(deltas),
	}, func() error {
		var (
			payload     userAttributes
			doUpdate    bool
			doInvite    bool
			assignIDs   []string
			unassignIDs []string
		)

		for _, delta := range deltas {
			switch delta.Name {
			case AttrHandle:
				return identity.NewInvalidValueError(operation, "handle cannot be updated")

			case AttrEnabled:
				enabled, ok := delta.ReplaceBool()
				if !ok {
					return identity.NewInvalidValueError(operation, "enabled requires a boolean value")
				}
				disabled := !enabled
				payload.Disabled = &disabled
				doUpdate = true

			case AttrEmail:
				email, ok := delta.ReplaceString()
				if !ok {
					return identity.NewInvalidValueError(operation, "email cannot be deleted")
				}
				payload.Email = email
				doUpdate = true

			case AttrName:
				// A replace with no value deletes by writing the empty string.
				name, _ := delta.ReplaceString()
				payload.Name = &name
				doUpdate = true

			case AttrInvitation:
				doInvite, _ = delta.ReplaceBool()

			case AttrRoleNames:
				reverse, err := c.roleNameToID(ctx)
				if err != nil {
					return err
				}
				add, err := resolveRoleNames(operation, reverse, stringValues(delta.Add))
				if err != nil {
					return err
				}
				remove, err := resolveRoleNames(operation, reverse, stringValues(delta.Remove))
				if err != nil {
					return err
				}
				assignIDs = append(assignIDs, add...)
				unassignIDs = append(unassignIDs, remove...)

			case AttrRoles:
				assignIDs = append(assignIDs, stringValues(delta.Add)...)
				unassignIDs = append(unassignIDs, stringValues(delta.Remove)...)
			}
		}

		if doUpdate {
			body := userPayload{Data: userData{
				Type:       typeUsers,
				ID:         uid.Value,
				Attributes: &payload,
			}}

			resp, err := c.newRequest(ctx, nil).
				SetPathParam("userId", uid.Value).
				SetBody(body).
				Patch(pathUser)
			if err != nil {
				return identity.WrapError(operation, err)
			}
			if resp.IsError() {
				return c.apiError(operation, resp)
			}
		}

		if err := c.AssignRoles(ctx, uid.Value, assignIDs); err != nil {
			return err
		}
		if err := c.UnassignRoles(ctx, uid.Value, unassignIDs); err != nil {
			return err
		}

		if doInvite {
			pending, err := c.isPendingUser(ctx, uid.Value)
			if err != nil {
				return err
			}
			if pending {
				return c.invite(ctx, operation, uid.Value)
			}
		}

		return nil
	})
}

// stringValues renders delta values as strings.
func stringValues(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

// DeleteUser disables a user. The provider has no hard delete; the record
// remains visible with disabled set.
func (c *client) DeleteUser(ctx context.Context, uid identity.UID) error {
	const operation = "delete user"

	if err := validateUID(operation, uid); err != nil {
		return err
	}

	return identity.LogOperation(c.log, operation, map[string]any{
		"user_id": uid.Value,
	}, func() error {
		resp, err := c.newRequest(ctx, nil).
			SetPathParam("userId", uid.Value).
			Delete(pathUser)
		if err != nil {
			return identity.WrapError(operation, err)
		}
		return c.checkResponse(operation, resp, http.StatusNoContent)
	})
}

// InviteUser sends an invitation mail to a user.
func (c *client) InviteUser(ctx context.Context, uid identity.UID) error {
	const operation = "invite user"

	if err := validateUID(operation, uid); err != nil {
		return err
	}

	return identity.LogOperation(c.log, operation, map[string]any{
		"user_id": uid.Value,
	}, func() error {
		return c.invite(ctx, operation, uid.Value)
	})
}

// disable marks a user disabled with a partial update.
func (c *client) disable(ctx context.Context, operation, userID string) error {
	disabled := true
	body := userPayload{Data: userData{
		Type:       typeUsers,
		ID:         userID,
		Attributes: &userAttributes{Disabled: &disabled},
	}}

	resp, err := c.newRequest(ctx, nil).
		SetPathParam("userId", userID).
		SetBody(body).
		Patch(pathUser)
	if err != nil {
		return identity.WrapError(operation, err)
	}
	if resp.IsError() {
		return c.apiError(operation, resp)
	}
	return nil
}

// invite posts a single-user invitation.
func (c *client) invite(ctx context.Context, operation, userID string) error {
	body := invitationsPayload{Data: []invitationData{{
		Type: typeUserInvitations,
		Relationships: &invitationRelationships{
			User: relationshipSingle{Data: relationshipData{ID: userID, Type: typeUsers}},
		},
	}}}

	resp, err := c.newRequest(ctx, nil).SetBody(body).Post(pathInvitations)
	if err != nil {
		return identity.WrapError(operation, err)
	}
	if resp.IsError() {
		return c.apiError(operation, resp)
	}
	return nil
}

// isPendingUser reports whether a user's lifecycle status is Pending.
func (c *client) isPendingUser(ctx context.Context, userID string) (bool, error) {
	const operation = "get user"

	var result userPayload
	resp, err := c.newRequest(ctx, &result).
		SetPathParam("userId", userID).
		Get(pathUser)
	if err != nil {
		return false, identity.WrapError(operation, err)
	}
	if err := c.checkResponse(operation, resp, http.StatusOK); err != nil {
		return false, err
	}

	return result.Data.Attributes != nil && result.Data.Attributes.Status == StatusPending, nil
}

// GetUsers enumerates all users page by page, sorted by email, and feeds them
// through the results handler. Enumeration stops early when the handler
// returns false.
func (c *client) GetUsers(ctx context.Context, handler identity.ResultsHandler, opts SearchOptions) error {
	const operation = "get users"

	return identity.LogOperation(c.log, operation, map[string]any{
		"page_size": c.config.PageSize,
	}, func() error {
		roleMap, err := c.roleMapForProjection(ctx, opts)
		if err != nil {
			return err
		}

		for page := 0; ; page++ {
			if page >= c.config.MaxPages {
				return pageLimitError(operation, page)
			}

			users, err := c.listUsers(ctx, operation, page)
			if err != nil {
				return err
			}
			if len(users) == 0 {
				return nil
			}

			for _, u := range users {
				if !handler(userObject(u, opts, roleMap)) {
					return nil
				}
			}
		}
	})
}

// GetUserByUID fetches a single user by id.
func (c *client) GetUserByUID(ctx context.Context, uid identity.UID, handler identity.ResultsHandler, opts SearchOptions) error {
	const operation = "get user"

	if err := validateUID(operation, uid); err != nil {
		return err
	}

	return identity.LogOperation(c.log, operation, map[string]any{
		"user_id": uid.Value,
	}, func() error {
		roleMap, err := c.roleMapForProjection(ctx, opts)
		if err != nil {
			return err
		}

		var result userPayload
		resp, err := c.newRequest(ctx, &result).
			SetPathParam("userId", uid.Value).
			Get(pathUser)
		if err != nil {
			return identity.WrapError(operation, err)
		}
		if err := c.checkResponse(operation, resp, http.StatusOK); err != nil {
			return err
		}

		handler(userObject(result.Data, opts, roleMap))
		return nil
	})
}

// GetUserByName finds a user by handle. The provider cannot filter by handle
// server-side, so this scans the listing and matches case-insensitively; the
// first match wins. No match is not an error.
func (c *client) GetUserByName(ctx context.Context, name string, handler identity.ResultsHandler, opts SearchOptions) error {
	const operation = "get user by name"

	return identity.LogOperation(c.log, operation, map[string]any{
		"handle": name,
	}, func() error {
		roleMap, err := c.roleMapForProjection(ctx, opts)
		if err != nil {
			return err
		}

		for page := 0; ; page++ {
			if page >= c.config.MaxPages {
				return pageLimitError(operation, page)
			}

			users, err := c.listUsers(ctx, operation, page)
			if err != nil {
				return err
			}
			if len(users) == 0 {
				return nil
			}

			for _, u := range users {
				if u.Attributes != nil && strings.EqualFold(u.Attributes.Handle, name) {
					handler(userObject(u, opts, roleMap))
					return nil
				}
			}
		}
	})
}

// listUsers fetches one page of the user listing.
func (c *client) listUsers(ctx context.Context, operation string, page int) ([]userData, error) {
	var result usersPayload
	resp, err := c.newRequest(ctx, &result).
		SetQueryParam("page[size]", strconv.Itoa(c.config.PageSize)).
		SetQueryParam("page[number]", strconv.Itoa(page)).
		SetQueryParam("sort", "email").
		Get(pathUsers)
	if err != nil {
		return nil, identity.WrapError(operation, err)
	}
	if err := c.checkResponse(operation, resp, http.StatusOK); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// pageLimitError reports a scan that did not terminate within the configured
// page bound.
func pageLimitError(operation string, pages int) *identity.Error {
	return identity.NewError(operation, identity.ErrorCategoryProtocol,
		fmt.Sprintf("listing did not terminate after %d pages", pages))
}

// roleMapForProjection fetches the id to name role map once per search when
// the projection will need it: roleNames explicitly requested and partial
// values not allowed.
func (c *client) roleMapForProjection(ctx context.Context, opts SearchOptions) (map[string]string, error) {
	if opts.AllowPartial || !opts.AttributesToGet[AttrRoleNames] {
		return nil, nil
	}
	return c.roleIDToName(ctx)
}

// userObject projects a user resource onto a connector object. The id and
// handle are always present; everything else honors the attribute allow-list.
// Associations are never resolved by default: they are emitted incomplete in
// partial mode, suppressed without an allow-list, and resolved only on
// explicit request.
func userObject(u userData, opts SearchOptions, roleMap map[string]string) identity.Object {
	attrs := u.Attributes
	if attrs == nil {
		attrs = &userAttributes{}
	}

	obj := identity.Object{
		Class: identity.ObjectClassUser,
		UID:   identity.NewUID(u.ID, attrs.Handle),
		Name:  attrs.Handle,
	}

	get := opts.AttributesToGet

	if identity.ShouldReturn(get, AttrEmail) {
		obj.Attributes = append(obj.Attributes, identity.NewAttribute(AttrEmail, attrs.Email))
	}
	if identity.ShouldReturn(get, AttrName) {
		if attrs.Name != nil {
			obj.Attributes = append(obj.Attributes, identity.NewAttribute(AttrName, *attrs.Name))
		} else {
			obj.Attributes = append(obj.Attributes, identity.NewAttribute(AttrName))
		}
	}
	if identity.ShouldReturn(get, AttrTitle) {
		obj.Attributes = append(obj.Attributes, identity.NewAttribute(AttrTitle, attrs.Title))
	}
	if identity.ShouldReturn(get, AttrIcon) {
		obj.Attributes = append(obj.Attributes, identity.NewAttribute(AttrIcon, attrs.Icon))
	}
	if identity.ShouldReturn(get, AttrEnabled) {
		enabled := attrs.Disabled == nil || !*attrs.Disabled
		obj.Attributes = append(obj.Attributes, identity.NewAttribute(AttrEnabled, enabled))
	}
	if identity.ShouldReturn(get, AttrCreatedAt) {
		if attrs.CreatedAt != nil {
			obj.Attributes = append(obj.Attributes, identity.NewAttribute(AttrCreatedAt, *attrs.CreatedAt))
		} else {
			obj.Attributes = append(obj.Attributes, identity.NewAttribute(AttrCreatedAt))
		}
	}
	if identity.ShouldReturn(get, AttrVerified) {
		obj.Attributes = append(obj.Attributes, identity.NewAttribute(AttrVerified, attrs.Verified))
	}
	if identity.ShouldReturn(get, AttrStatus) {
		obj.Attributes = append(obj.Attributes, identity.NewAttribute(AttrStatus, attrs.Status))
	}

	switch {
	case opts.AllowPartial:
		obj.Attributes = append(obj.Attributes,
			identity.NewIncompleteAttribute(AttrRoleNames),
			identity.NewIncompleteAttribute(AttrRoles))

	case get == nil:
		// Associations are expensive; without an explicit request they are
		// not returned at all.

	default:
		if get[AttrRoleNames] {
			names := []any{}
			if u.Relationships != nil && u.Relationships.Roles != nil {
				for _, r := range u.Relationships.Roles.Data {
					if name, ok := roleMap[r.ID]; ok {
						names = append(names, name)
					}
				}
			}
			obj.Attributes = append(obj.Attributes, identity.Attribute{Name: AttrRoleNames, Values: names})
		}
		if get[AttrRoles] {
			ids := []any{}
			if u.Relationships != nil && u.Relationships.Roles != nil {
				for _, r := range u.Relationships.Roles.Data {
					ids = append(ids, r.ID)
				}
			}
			obj.Attributes = append(obj.Attributes, identity.Attribute{Name: AttrRoles, Values: ids})
		}
	}

	return obj
}

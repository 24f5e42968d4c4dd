package datadog

import (
	"context"

	"github.com/isometry/connector-datadog/internal/identity"
)

// AssignRoles adds a user to each of the given roles. The membership endpoint
// takes a single user per call, so the ids are processed one by one.
func (c *client) AssignRoles(ctx context.Context, userID string, roleIDs []string) error {
	const operation = "assign role"

	for _, roleID := range roleIDs {
		c.log.Debug("Assigning datadog role", map[string]any{
			"user_id": userID,
			"role_id": roleID,
		})

		body := membershipPayload{Data: relationshipData{ID: userID, Type: typeUsers}}

		resp, err := c.newRequest(ctx, nil).
			SetPathParam("roleId", roleID).
			SetBody(body).
			Post(pathRoleUsers)
		if err != nil {
			return identity.WrapError(operation, err)
		}
		if resp.IsError() {
			return c.apiError(operation, resp)
		}
	}

	return nil
}

// UnassignRoles removes a user from each of the given roles.
func (c *client) UnassignRoles(ctx context.Context, userID string, roleIDs []string) error {
	const operation = "unassign role"

	for _, roleID := range roleIDs {
		c.log.Debug("Unassigning datadog role", map[string]any{
			"user_id": userID,
			"role_id": roleID,
		})

		body := membershipPayload{Data: relationshipData{ID: userID, Type: typeUsers}}

		resp, err := c.newRequest(ctx, nil).
			SetPathParam("roleId", roleID).
			SetBody(body).
			Delete(pathRoleUsers)
		if err != nil {
			return identity.WrapError(operation, err)
		}
		if resp.IsError() {
			return c.apiError(operation, resp)
		}
	}

	return nil
}

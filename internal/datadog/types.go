package datadog

import (
	"context"
	"time"

	"github.com/isometry/connector-datadog/internal/identity"
)

// Native attribute names of the user object class.
//
// The provider-assigned id lives in AttrUserID rather than plain "id" to keep
// it from clashing with host-side identifier attributes.
const (
	AttrUserID = "userId"
	AttrHandle = "handle"

	AttrEmail = "email"
	AttrName  = "name"
	AttrTitle = "title"

	// Readonly
	AttrIcon      = "icon"
	AttrCreatedAt = "createdAt"
	AttrVerified  = "verified"
	AttrStatus    = "status"

	// Virtual attribute mapped onto the provider's disabled flag
	AttrEnabled = "enabled"

	// Associations
	AttrRoleNames = "roleNames"
	AttrRoles     = "roles"

	// Invitation trigger, write-only
	AttrInvitation = "invitation"
)

// Native attribute names of the role object class. Roles share AttrName and
// AttrCreatedAt with users.
const (
	AttrRoleID     = "roleId"
	AttrModifiedAt = "modifiedAt"
	AttrUserCount  = "userCount"
)

// User lifecycle status values reported by the provider.
const (
	StatusPending  = "Pending"
	StatusActive   = "Active"
	StatusDisabled = "Disabled"
)

// SearchOptions carries the projection settings of a search, resolved against
// the object class schema by the caller.
type SearchOptions struct {
	// AttributesToGet is the effective attribute allow-list. Nil means the
	// caller provided no projection options; per-attribute defaults apply.
	AttributesToGet map[string]bool

	// AllowPartial permits association attributes to be reported incomplete
	// instead of resolved.
	AllowPartial bool
}

// Client provides the Datadog user and role operations used by the connector.
type Client interface {
	// User operations
	CreateUser(ctx context.Context, attrs []identity.Attribute) (*identity.UID, error)
	UpdateUser(ctx context.Context, uid identity.UID, deltas []identity.Delta) error
	DeleteUser(ctx context.Context, uid identity.UID) error
	InviteUser(ctx context.Context, uid identity.UID) error
	GetUsers(ctx context.Context, handler identity.ResultsHandler, opts SearchOptions) error
	GetUserByUID(ctx context.Context, uid identity.UID, handler identity.ResultsHandler, opts SearchOptions) error
	GetUserByName(ctx context.Context, name string, handler identity.ResultsHandler, opts SearchOptions) error

	// Role operations
	CreateRole(ctx context.Context, attrs []identity.Attribute) (*identity.UID, error)
	UpdateRole(ctx context.Context, uid identity.UID, deltas []identity.Delta) error
	DeleteRole(ctx context.Context, uid identity.UID) error
	GetRoles(ctx context.Context, handler identity.ResultsHandler, opts SearchOptions) error
	GetRoleByUID(ctx context.Context, uid identity.UID, handler identity.ResultsHandler, opts SearchOptions) error
	GetRoleByName(ctx context.Context, name string, handler identity.ResultsHandler, opts SearchOptions) error

	// Membership operations
	AssignRoles(ctx context.Context, userID string, roleIDs []string) error
	UnassignRoles(ctx context.Context, userID string, roleIDs []string) error

	// Health
	Test(ctx context.Context) error
	Close() error
}

// JSON:API resource type discriminators.
const (
	typeUsers           = "users"
	typeRoles           = "roles"
	typeUserInvitations = "user_invitations"
)

// userAttributes is the attributes member of a user resource. Pointer fields
// distinguish "absent" from "set to the zero value" in request payloads.
type userAttributes struct {
	Handle    string     `json:"handle,omitempty"`
	Email     string     `json:"email,omitempty"`
	Name      *string    `json:"name,omitempty"`
	Icon      string     `json:"icon,omitempty"`
	Title     string     `json:"title,omitempty"`
	Verified  bool       `json:"verified,omitempty"`
	Disabled  *bool      `json:"disabled,omitempty"`
	Status    string     `json:"status,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// relationshipData is a single resource linkage.
type relationshipData struct {
	ID   string `json:"id"`
	Type string `json:"type,omitempty"`
}

// relationshipList is a to-many relationship.
type relationshipList struct {
	Data []relationshipData `json:"data"`
}

// relationshipSingle is a to-one relationship.
type relationshipSingle struct {
	Data relationshipData `json:"data"`
}

// userRelationships carries the role linkage of a user resource.
type userRelationships struct {
	Roles *relationshipList `json:"roles,omitempty"`
}

// userData is one user resource.
type userData struct {
	ID            string             `json:"id,omitempty"`
	Type          string             `json:"type"`
	Attributes    *userAttributes    `json:"attributes,omitempty"`
	Relationships *userRelationships `json:"relationships,omitempty"`
}

// userPayload is a single-resource envelope.
type userPayload struct {
	Data userData `json:"data"`
}

// usersPayload is a list-resource envelope with pagination metadata.
type usersPayload struct {
	Data []userData `json:"data"`
	Meta *pageMeta  `json:"meta,omitempty"`
}

// roleAttributes is the attributes member of a role resource.
type roleAttributes struct {
	Name       string     `json:"name,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	ModifiedAt *time.Time `json:"modified_at,omitempty"`
	UserCount  int64      `json:"user_count,omitempty"`
}

// roleData is one role resource.
type roleData struct {
	ID         string          `json:"id,omitempty"`
	Type       string          `json:"type"`
	Attributes *roleAttributes `json:"attributes,omitempty"`
}

// rolePayload is a single-resource envelope.
type rolePayload struct {
	Data roleData `json:"data"`
}

// rolesPayload is a list-resource envelope with pagination metadata.
type rolesPayload struct {
	Data []roleData `json:"data"`
	Meta *pageMeta  `json:"meta,omitempty"`
}

// invitationRelationships links an invitation to its user.
type invitationRelationships struct {
	User relationshipSingle `json:"user"`
}

// invitationData is one user invitation resource.
type invitationData struct {
	Type          string                   `json:"type"`
	Relationships *invitationRelationships `json:"relationships,omitempty"`
}

// invitationsPayload is the batch envelope of the invitation endpoint.
type invitationsPayload struct {
	Data []invitationData `json:"data"`
}

// membershipPayload is the body of role membership calls.
type membershipPayload struct {
	Data relationshipData `json:"data"`
}

// pageMeta carries the pagination metadata of listing responses.
type pageMeta struct {
	Page struct {
		TotalCount         int64 `json:"total_count"`
		TotalFilteredCount int64 `json:"total_filtered_count"`
	} `json:"page"`
}

// apiErrorBody is the provider's error envelope.
type apiErrorBody struct {
	Errors []string `json:"errors"`
}

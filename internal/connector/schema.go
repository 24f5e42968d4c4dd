package connector

import (
	"github.com/isometry/connector-datadog/internal/datadog"
	"github.com/isometry/connector-datadog/internal/identity"
)

// userSchema declares the user object class. The handle doubles as the object
// name and is immutable once set; the provider derives it from the email given
// at create time. The association attributes and the invitation trigger are
// excluded from default results.
func userSchema() identity.ObjectClassInfo {
	return identity.ObjectClassInfo{
		Class: identity.ObjectClassUser,
		Attributes: []identity.AttributeInfo{
			{
				Name:              datadog.AttrUserID,
				Type:              identity.TypeString,
				Readable:          true,
				ReturnedByDefault: true,
				CaseInsensitive:   true,
				Identifier:        true,
			},
			{
				Name:              datadog.AttrHandle,
				Type:              identity.TypeString,
				Required:          true,
				Creatable:         true,
				Readable:          true,
				ReturnedByDefault: true,
				CaseInsensitive:   true,
				NameAttribute:     true,
			},
			{
				Name:              datadog.AttrEmail,
				Type:              identity.TypeString,
				Creatable:         true,
				Updateable:        true,
				Readable:          true,
				ReturnedByDefault: true,
			},
			{
				Name:              datadog.AttrName,
				Type:              identity.TypeString,
				Creatable:         true,
				Updateable:        true,
				Readable:          true,
				ReturnedByDefault: true,
			},
			{
				Name:              datadog.AttrTitle,
				Type:              identity.TypeString,
				Creatable:         true,
				Readable:          true,
				ReturnedByDefault: true,
			},
			{
				Name:              datadog.AttrEnabled,
				Type:              identity.TypeBool,
				Creatable:         true,
				Updateable:        true,
				Readable:          true,
				ReturnedByDefault: true,
			},
			{
				Name:              datadog.AttrIcon,
				Type:              identity.TypeString,
				Readable:          true,
				ReturnedByDefault: true,
			},
			{
				Name:              datadog.AttrCreatedAt,
				Type:              identity.TypeTime,
				Readable:          true,
				ReturnedByDefault: true,
			},
			{
				Name:              datadog.AttrVerified,
				Type:              identity.TypeBool,
				Readable:          true,
				ReturnedByDefault: true,
			},
			{
				Name:              datadog.AttrStatus,
				Type:              identity.TypeString,
				Readable:          true,
				ReturnedByDefault: true,
			},
			{
				Name:            datadog.AttrRoleNames,
				Type:            identity.TypeString,
				Creatable:       true,
				Updateable:      true,
				Readable:        true,
				MultiValued:     true,
				CaseInsensitive: true,
			},
			{
				Name:        datadog.AttrRoles,
				Type:        identity.TypeString,
				Creatable:   true,
				Updateable:  true,
				Readable:    true,
				MultiValued: true,
			},
			{
				Name:       datadog.AttrInvitation,
				Type:       identity.TypeBool,
				Creatable:  true,
				Updateable: true,
			},
		},
	}
}

// roleSchema declares the role object class. Only the name is writable.
func roleSchema() identity.ObjectClassInfo {
	return identity.ObjectClassInfo{
		Class: identity.ObjectClassRole,
		Attributes: []identity.AttributeInfo{
			{
				Name:              datadog.AttrRoleID,
				Type:              identity.TypeString,
				Readable:          true,
				ReturnedByDefault: true,
				CaseInsensitive:   true,
				Identifier:        true,
			},
			{
				Name:              datadog.AttrName,
				Type:              identity.TypeString,
				Required:          true,
				Creatable:         true,
				Updateable:        true,
				Readable:          true,
				ReturnedByDefault: true,
				CaseInsensitive:   true,
				NameAttribute:     true,
			},
			{
				Name:              datadog.AttrCreatedAt,
				Type:              identity.TypeTime,
				Readable:          true,
				ReturnedByDefault: true,
			},
			{
				Name:              datadog.AttrModifiedAt,
				Type:              identity.TypeTime,
				Readable:          true,
				ReturnedByDefault: true,
			},
			{
				Name:              datadog.AttrUserCount,
				Type:              identity.TypeInt64,
				Readable:          true,
				ReturnedByDefault: true,
			},
		},
	}
}

// connectorSchema assembles the full schema served by the connector.
func connectorSchema() identity.Schema {
	return identity.Schema{
		ObjectClasses: []identity.ObjectClassInfo{
			userSchema(),
			roleSchema(),
		},
		SearchOptions: []string{
			identity.OptionAttributesToGet,
			identity.OptionReturnDefaultAttributes,
		},
	}
}

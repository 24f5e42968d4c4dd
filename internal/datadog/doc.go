/*
Package datadog provides the Datadog v2 API operations for the identity
connector.

This package implements the REST client layer for user and role management,
with focus on:

# Architecture Overview

The package is organized into a few core components:

  - Config: credentials, endpoint, paging, timeout and proxy settings
  - Client: one REST session per connector instance, no shared mutable state
  - Operations: user, role, membership and invitation calls
  - Projection: mapping provider resources onto connector objects

# Provider Constraints

The implementation follows the constraints of the provider API:

  - Users are never hard-deleted: delete disables, the record stays visible
  - Neither users nor roles can be looked up by name server-side; name
    lookups scan the sorted listing and match case-insensitively
  - Role names are resolved through a role map that is rebuilt per operation
  - Role membership changes go out one role id per call
  - Listings paginate with page[size]/page[number] query parameters

# Error Handling

Provider responses are mapped onto the categorized connector errors:

  - 400 invalid value, 403 connection, 404 unknown uid, 409 already exists
  - Any other failure surfaces as an io error carrying the provider message
  - A listing that does not terminate within the configured page bound
    aborts with a protocol error

Requests are made exactly once; there is no retry layer.

# Example Usage

	config := datadog.DefaultConfig()
	config.APIKey = os.Getenv("DD_API_KEY")
	config.AppKey = os.Getenv("DD_APP_KEY")

	client, err := datadog.NewClient(config)
	if err != nil {
		return err
	}
	defer client.Close()

	uid, err := client.CreateUser(ctx, []identity.Attribute{
		identity.NewAttribute(datadog.AttrHandle, "alice@example.com"),
		identity.NewAttribute(datadog.AttrRoleNames, "Datadog Standard Role"),
	})
*/
package datadog

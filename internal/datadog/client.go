package datadog

import (
	"context"
	"net"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/isometry/connector-datadog/internal/identity"
)

// Endpoint paths of the v2 API surface used by the connector.
const (
	pathUsers       = "/api/v2/users"
	pathUser        = "/api/v2/users/{userId}"
	pathInvitations = "/api/v2/user_invitations"
	pathRoles       = "/api/v2/roles"
	pathRole        = "/api/v2/roles/{roleId}"
	pathRoleUsers   = "/api/v2/roles/{roleId}/users"
)

// client implements the Client interface on top of one resty session.
type client struct {
	config *Config
	http   *resty.Client
	log    identity.Logger
}

// NewClient creates a new Datadog API client.
func NewClient(config *Config) (Client, error) {
	return NewClientWithContext(context.Background(), config)
}

// NewClientWithContext creates a new Datadog API client. The context is only
// used during construction; operations carry their own.
func NewClientWithContext(_ context.Context, config *Config) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	log := config.logger()

	log.Debug("Creating datadog client", identity.SanitizeFields(map[string]any{
		"api_url":         config.APIURL(),
		"api_key":         config.APIKey,
		"page_size":       config.PageSize,
		"max_pages":       config.MaxPages,
		"request_timeout": config.RequestTimeout.String(),
		"proxy":           config.HTTPProxyHost != "",
	}))

	session := resty.New().
		SetBaseURL(config.APIURL()).
		SetTimeout(config.RequestTimeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("DD-API-KEY", config.APIKey).
		SetHeader("DD-APPLICATION-KEY", config.AppKey)

	if proxy := config.ProxyURL(); proxy != "" {
		session.SetProxy(proxy)
	}

	if transport, err := session.Transport(); err == nil {
		transport.DialContext = (&net.Dialer{Timeout: config.ConnectTimeout}).DialContext
	}

	return &client{
		config: config,
		http:   session,
		log:    log,
	}, nil
}

// newRequest prepares a request bound to the operation context.
func (c *client) newRequest(ctx context.Context, result any) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if result != nil {
		req.SetResult(result)
	}
	return req
}

// Test verifies connectivity and credentials by listing the first user page.
func (c *client) Test(ctx context.Context) error {
	const operation = "test"

	return identity.LogOperation(c.log, operation, nil, func() error {
		resp, err := c.newRequest(ctx, nil).Get(pathUsers)
		if err != nil {
			return identity.WrapError(operation, err)
		}
		if resp.StatusCode() != http.StatusOK {
			if resp.IsError() {
				return c.apiError(operation, resp)
			}
			return identity.NewError(operation, identity.ErrorCategoryConnection,
				"datadog connector is not active")
		}
		return nil
	})
}

// Close releases the client. The underlying transport keeps no state that
// needs explicit shutdown.
func (c *client) Close() error {
	c.http.SetCloseConnection(true)
	return nil
}

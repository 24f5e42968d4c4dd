package connector

import (
	"context"
	"fmt"

	"github.com/isometry/connector-datadog/internal/datadog"
	"github.com/isometry/connector-datadog/internal/identity"
)

// Connector is the host-facing entry point. Instances hold one provider
// client and no other mutable state; hosts pool them and drive each instance
// from a single goroutine at a time.
type Connector struct {
	config   *datadog.Config
	client   datadog.Client
	log      identity.Logger
	handlers map[identity.ObjectClass]objectHandler
}

// New builds a connector with a connected client for the given configuration.
func New(cfg *datadog.Config) (*Connector, error) {
	return NewWithContext(context.Background(), cfg)
}

// NewWithContext builds a connector with a connected client. A nil
// configuration uses the defaults, which fail validation without credentials.
func NewWithContext(ctx context.Context, cfg *datadog.Config) (*Connector, error) {
	if cfg == nil {
		cfg = datadog.DefaultConfig()
	}

	client, err := datadog.NewClientWithContext(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return newWithClient(cfg, client), nil
}

// newWithClient wires the handler registry around an existing client.
func newWithClient(cfg *datadog.Config, client datadog.Client) *Connector {
	log := cfg.Logger
	if log == nil {
		log = identity.NopLogger{}
	}

	return &Connector{
		config: cfg,
		client: client,
		log:    log,
		handlers: map[identity.ObjectClass]objectHandler{
			identity.ObjectClassUser: &userHandler{client: client},
			identity.ObjectClassRole: &roleHandler{client: client},
		},
	}
}

// handler resolves the handler for an object class.
func (c *Connector) handler(operation string, class identity.ObjectClass) (objectHandler, error) {
	h, ok := c.handlers[class]
	if !ok {
		return nil, identity.NewInvalidValueError(operation, fmt.Sprintf("unsupported object class: %s", class))
	}
	return h, nil
}

// Create makes a new object of the given class and returns its UID.
func (c *Connector) Create(ctx context.Context, class identity.ObjectClass, attrs []identity.Attribute) (*identity.UID, error) {
	h, err := c.handler("create", class)
	if err != nil {
		return nil, err
	}
	if len(attrs) == 0 {
		return nil, identity.NewInvalidValueError("create", "no attributes provided")
	}

	c.log.Trace("Dispatching create", map[string]any{"class": class.String()})
	return h.create(ctx, attrs)
}

// UpdateDelta applies attribute-level changes to the object addressed by uid.
// An empty delta set is a successful no-op.
func (c *Connector) UpdateDelta(ctx context.Context, class identity.ObjectClass, uid identity.UID, deltas []identity.Delta) error {
	h, err := c.handler("update", class)
	if err != nil {
		return err
	}
	if uid.Value == "" {
		return identity.NewInvalidValueError("update", "uid is required")
	}
	if len(deltas) == 0 {
		c.log.Debug("Skipping update without changes", map[string]any{
			"class": class.String(),
			"uid":   uid.Value,
		})
		return nil
	}

	c.log.Trace("Dispatching update", map[string]any{"class": class.String(), "uid": uid.Value})
	return h.updateDelta(ctx, uid, deltas)
}

// Delete removes the object addressed by uid. For users the provider disables
// the account instead of deleting the record.
func (c *Connector) Delete(ctx context.Context, class identity.ObjectClass, uid identity.UID) error {
	h, err := c.handler("delete", class)
	if err != nil {
		return err
	}
	if uid.Value == "" {
		return identity.NewInvalidValueError("delete", "uid is required")
	}

	c.log.Trace("Dispatching delete", map[string]any{"class": class.String(), "uid": uid.Value})
	return h.delete(ctx, uid)
}

// Search runs a query against one object class and streams results through
// the handler. A lookup that finds nothing, including a uid lookup for an
// object that does not exist, completes without error and without results.
func (c *Connector) Search(ctx context.Context, class identity.ObjectClass, expr identity.Expr, handler identity.ResultsHandler, opts identity.OperationOptions) error {
	h, err := c.handler("search", class)
	if err != nil {
		return err
	}

	filter := TranslateFilter(h.schema(), expr)

	c.log.Trace("Dispatching search", map[string]any{
		"class":    class.String(),
		"filtered": filter != nil,
	})

	if err := h.search(ctx, filter, handler, opts); err != nil {
		if identity.IsUnknownUIDError(err) {
			return nil
		}
		return err
	}
	return nil
}

// Schema returns the static schema of the served object classes and the
// recognized search options.
func (c *Connector) Schema() identity.Schema {
	return connectorSchema()
}

// Test verifies the configuration end to end by building a fresh client and
// pinging the provider with it. The connector's own client is left untouched.
func (c *Connector) Test(ctx context.Context) error {
	probe, err := datadog.NewClientWithContext(ctx, c.config)
	if err != nil {
		return err
	}
	defer func() { _ = probe.Close() }()

	return probe.Test(ctx)
}

// Close releases the provider client.
func (c *Connector) Close() error {
	return c.client.Close()
}

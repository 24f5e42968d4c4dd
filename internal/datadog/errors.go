package datadog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/isometry/connector-datadog/internal/identity"
)

// apiError converts a non-2xx provider response into a categorized error.
func (c *client) apiError(operation string, resp *resty.Response) *identity.Error {
	status := resp.StatusCode()

	message := parseAPIErrors(resp.Body())
	if message == "" {
		message = http.StatusText(status)
	}

	c.log.Error("Datadog api call failed", map[string]any{
		"operation": operation,
		"status":    status,
		"message":   message,
	})

	return &identity.Error{
		Operation:  operation,
		Category:   identity.CategorizeStatus(status),
		StatusCode: status,
		Message:    message,
	}
}

// unexpectedStatus builds the error for a success response with the wrong
// status code.
func unexpectedStatus(operation string, resp *resty.Response, want int) *identity.Error {
	return &identity.Error{
		Operation:  operation,
		Category:   identity.ErrorCategoryIO,
		StatusCode: resp.StatusCode(),
		Message:    fmt.Sprintf("unexpected status code %d, want %d", resp.StatusCode(), want),
	}
}

// checkResponse maps a response to an error: nil on the wanted status, a
// categorized error on 4xx/5xx, an io error on any other status.
func (c *client) checkResponse(operation string, resp *resty.Response, want int) error {
	switch {
	case resp.StatusCode() == want:
		return nil
	case resp.IsError():
		return c.apiError(operation, resp)
	default:
		return unexpectedStatus(operation, resp, want)
	}
}

// parseAPIErrors extracts the message list from the provider's error body.
func parseAPIErrors(body []byte) string {
	var parsed apiErrorBody
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Errors) == 0 {
		return ""
	}
	return strings.Join(parsed.Errors, "; ")
}

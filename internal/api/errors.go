package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/me/smecert/pkg/model"
)

// APIError is a non-2xx response from the upstream API.
type APIError struct {
	StatusCode int
	Detail     string
	Fields     []model.FieldError
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// IsUnauthorized reports whether the error is a 401.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports whether the error is a 404.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// newAPIError parses an upstream error body. The API emits either
// {"detail": "..."} or a map of field name to message list; both are folded
// into a single APIError so handlers can render field-keyed messages inline.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	if len(body) == 0 {
		return apiErr
	}

	var generic map[string]json.RawMessage
	if err := json.Unmarshal(body, &generic); err != nil {
		apiErr.Detail = truncateBody(body)
		return apiErr
	}

	for field, raw := range generic {
		var single string
		var many []string
		switch {
		case json.Unmarshal(raw, &single) == nil:
			many = []string{single}
		case json.Unmarshal(raw, &many) == nil:
		default:
			continue
		}
		for _, msg := range many {
			if field == "detail" || field == "message" || field == "non_field_errors" {
				if apiErr.Detail == "" {
					apiErr.Detail = msg
				}
				continue
			}
			apiErr.Fields = append(apiErr.Fields, model.FieldError{Field: field, Message: msg})
		}
	}
	if apiErr.Detail == "" && len(apiErr.Fields) == 0 {
		apiErr.Detail = truncateBody(body)
	}
	return apiErr
}

func truncateBody(body []byte) string {
	const max = 200
	s := string(body)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

// AsAuthError converts a 400/401 from a credential or registration endpoint
// into the field-keyed error the login and register forms display.
func AsAuthError(err error) *model.AuthError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Detail
		if msg == "" {
			msg = "authentication failed"
		}
		return model.NewAuthError(msg, apiErr.Fields...)
	}
	return model.NewAuthError(err.Error())
}

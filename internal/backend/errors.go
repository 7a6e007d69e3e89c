package backend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/metinatakli/concert-booking/internal/domain"
)

const validationFallback = "Validation failed."

// errorMessages holds the per endpoint messages used when the API response
// doesn't carry one of its own.
type errorMessages struct {
	unauthorized string
	notFound     string
	fallback     string
}

type errorBody struct {
	Error  string         `json:"error"`
	Fields map[string]any `json:"fields"`
}

func (m errorMessages) fromResponse(res *http.Response) *domain.APIError {
	var body errorBody

	data, err := io.ReadAll(io.LimitReader(res.Body, maxErrorBodySize))
	if err == nil && len(data) > 0 {
		// A body that is not JSON simply yields the default messages.
		_ = json.Unmarshal(data, &body)
	}

	switch res.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.NewAPIError(domain.ErrUnauthorized, res.StatusCode, firstNonEmpty(body.Error, m.unauthorized, m.fallback))
	case http.StatusNotFound:
		return domain.NewAPIError(domain.ErrNotFound, res.StatusCode, firstNonEmpty(body.Error, m.notFound, m.fallback))
	case http.StatusUnprocessableEntity:
		return domain.NewAPIError(domain.ErrValidation, res.StatusCode, joinFieldErrors(body.Fields))
	default:
		return domain.NewAPIError(domain.ErrUnexpected, res.StatusCode, m.fallback)
	}
}

// joinFieldErrors flattens the 422 "fields" map into one message. Keys are
// sorted so the message is stable.
func joinFieldErrors(fields map[string]any) string {
	if len(fields) == 0 {
		return validationFallback
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))

	for _, k := range keys {
		switch v := fields[k].(type) {
		case string:
			parts = append(parts, v)
		case []any:
			for _, item := range v {
				parts = append(parts, fmt.Sprint(item))
			}
		case nil:
		default:
			parts = append(parts, fmt.Sprint(v))
		}
	}

	if len(parts) == 0 {
		return validationFallback
	}

	return strings.Join(parts, " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}

package core

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// APIError is a non-2xx response received from the REST backend.
type APIError struct {
	StatusCode int
	Body       []byte
}

func NewAPIError(code int, body []byte) error {
	return &APIError{StatusCode: code, Body: body}
}

func (err APIError) Error() string {
	body := strings.TrimSpace(string(err.Body))
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("api: %d %s: %s", err.StatusCode, http.StatusText(err.StatusCode), body)
}

// Messages flattens the response body.
// A JSON object body yields one "field: msg1, msg2" line per key (sorted) and structured is true.
// A JSON array body yields one line per message and structured is true.
// Any other body yields its raw text as a single line.
func (err APIError) Messages() (lines []string, structured bool) {
	var data interface{}
	if jErr := json.Unmarshal(err.Body, &data); jErr != nil {
		if txt := strings.TrimSpace(string(err.Body)); txt != "" {
			return []string{txt}, false
		}
		return nil, false
	}

	obj, ok := data.(map[string]interface{})
	if !ok {
		switch val := data.(type) {
		case string:
			if val != "" {
				return []string{val}, false
			}
		case []interface{}:
			lines = make([]string, 0, len(val))
			for _, m := range val {
				if msg := stringifyMessages(m); msg != "" {
					lines = append(lines, msg)
				}
			}
			return lines, true
		}
		return nil, false
	}

	fields := make([]string, 0, len(obj))
	for fld := range obj {
		fields = append(fields, fld)
	}
	sort.Strings(fields)

	lines = make([]string, 0, len(fields))
	for _, fld := range fields {
		lines = append(lines, fld+": "+stringifyMessages(obj[fld]))
	}
	return lines, true
}

// Detail returns the backend's "detail" message if any.
func (err APIError) Detail() string {
	var data struct {
		Detail string `json:"detail"`
	}
	if jErr := json.Unmarshal(err.Body, &data); jErr != nil {
		return ""
	}
	return data.Detail
}

func stringifyMessages(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case []interface{}:
		msgs := make([]string, 0, len(val))
		for _, m := range val {
			msgs = append(msgs, stringifyMessages(m))
		}
		return strings.Join(msgs, ", ")
	case nil:
		return ""
	case float64, bool:
		return fmt.Sprint(val)
	default:
		b, _ := json.Marshal(val)
		return string(b)
	}
}

// IsNotFound tells whether err was caused by a 404 backend response.
func IsNotFound(err error) bool {
	apiErr, ok := errors.Cause(err).(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized tells whether err was caused by a 401 backend response.
func IsUnauthorized(err error) bool {
	apiErr, ok := errors.Cause(err).(*APIError)
	return ok && apiErr.StatusCode == http.StatusUnauthorized
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}

package ninepay

import (
	"strings"

	"github.com/spf13/cast"
)

// Response is the outcome of a gateway call. A gateway rejection is a
// Response with Success() == false, never an error.
type Response struct {
	success bool
	message string
	data    map[string]any
	status  int
}

func newSuccessResponse(message string, data map[string]any) *Response {
	return &Response{success: true, message: message, data: data}
}

// responseFromResult applies the success rule: a 2xx status and no explicit
// failure marker in the body.
func responseFromResult(res *Result) *Response {
	body, isMap := res.Body.(map[string]any)
	if !isMap || body == nil {
		body = map[string]any{}
	}

	success := res.Status >= 200 && res.Status < 300 && !hasFailureIndicator(body)

	message := ""
	if isMap {
		if m, ok := body["message"]; ok && m != nil {
			message = cast.ToString(m)
		}
	}

	return &Response{
		success: success,
		message: message,
		data:    cloneMap(body),
		status:  res.Status,
	}
}

func hasFailureIndicator(body map[string]any) bool {
	if v, ok := body["success"]; ok {
		if b, ok := v.(bool); ok && !b {
			return true
		}
	}

	v, ok := body["status"]
	if !ok || v == nil {
		return false
	}
	switch s := v.(type) {
	case string:
		trimmed := strings.TrimSpace(s)
		if code, err := cast.ToIntE(trimmed); err == nil {
			return code >= 400
		}
		switch strings.ToLower(trimmed) {
		case "fail", "failed", "failure", "error":
			return true
		}
		return false
	case bool:
		return !s
	default:
		code, err := cast.ToIntE(s)
		return err == nil && code >= 400
	}
}

func (r *Response) Success() bool {
	return r.success
}

func (r *Response) Message() string {
	return r.message
}

// Data returns a deep copy of the response body mapping.
func (r *Response) Data() map[string]any {
	return cloneMap(r.data)
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	}
	return v
}

// Status is the HTTP status of the exchange, or 0 when no request was sent.
func (r *Response) Status() int {
	return r.status
}

package ninepay

import (
	"context"
	"net/http"
)

// Result is the normalized outcome of an HTTP exchange. Body holds a
// map[string]any for JSON objects, an empty map for an empty body and the raw
// string otherwise.
type Result struct {
	Status int
	Body   any
	Header http.Header
}

// Transport performs the HTTP exchange for the client. Non-2xx statuses are
// results, not errors; errors are reserved for failures to complete the exchange.
type Transport interface {
	Get(ctx context.Context, url string, headers map[string]string) (*Result, error)
	Post(ctx context.Context, url string, body []byte, headers map[string]string) (*Result, error)
}

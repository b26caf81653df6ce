package ninepay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	apperrors "github.com/ninepay-go/ninepay/internal/shared/errors"
)

const defaultTimeout = 15 * time.Second

// RestyTransport is the default Transport. It makes a single attempt per call.
type RestyTransport struct {
	client          *resty.Client
	normalizeErrors bool
}

// TransportOption configures a RestyTransport.
type TransportOption func(*RestyTransport)

// WithRestyClient replaces the underlying resty client.
func WithRestyClient(c *resty.Client) TransportOption {
	return func(t *RestyTransport) {
		t.client = c
	}
}

func WithTransportTimeout(d time.Duration) TransportOption {
	return func(t *RestyTransport) {
		t.client.SetTimeout(d)
	}
}

// WithNormalizedErrors reports network failures as a synthetic 500 result
// with body {"error": message} instead of returning an error.
func WithNormalizedErrors() TransportOption {
	return func(t *RestyTransport) {
		t.normalizeErrors = true
	}
}

func NewRestyTransport(opts ...TransportOption) *RestyTransport {
	t := &RestyTransport{
		client: resty.New().
			SetTimeout(defaultTimeout).
			SetRetryCount(0),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *RestyTransport) Get(ctx context.Context, url string, headers map[string]string) (*Result, error) {
	resp, err := t.client.R().
		SetContext(ctx).
		SetHeaders(headers).
		Get(url)
	return t.result(http.MethodGet, url, resp, err)
}

func (t *RestyTransport) Post(ctx context.Context, url string, body []byte, headers map[string]string) (*Result, error) {
	resp, err := t.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeaders(headers).
		SetBody(body).
		Post(url)
	return t.result(http.MethodPost, url, resp, err)
}

func (t *RestyTransport) result(method, url string, resp *resty.Response, err error) (*Result, error) {
	if err != nil {
		if t.normalizeErrors {
			return &Result{
				Status: http.StatusInternalServerError,
				Body:   map[string]any{"error": err.Error()},
				Header: http.Header{},
			}, nil
		}
		return nil, apperrors.NewTransportError(
			"ninepay request failed",
			fmt.Sprintf("%s %s: %v", method, url, err),
		).WithCause(err)
	}

	return &Result{
		Status: resp.StatusCode(),
		Body:   decodeBody(resp.Body()),
		Header: resp.Header(),
	}, nil
}

func decodeBody(raw []byte) any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return map[string]any{}
	}
	var obj map[string]any
	if trimmed[0] == '{' && json.Unmarshal(trimmed, &obj) == nil && obj != nil {
		return obj
	}
	return string(raw)
}

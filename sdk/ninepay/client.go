// Package ninepay is a client for the 9Pay hosted payment page and its
// server-to-server card APIs.
//
// A Client signs every request with the merchant secret key. Redirect-based
// payments are sealed into a portal URL without any network call; capture,
// refund, reverse, payer-auth and inquiry go through a Transport with an
// Authorization header signature. Callback results are verified with the
// separate checksum key.
package ninepay

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/ninepay-go/ninepay/internal/shared/errors"
	"github.com/ninepay-go/ninepay/internal/shared/logger"
	"github.com/ninepay-go/ninepay/internal/shared/utils/logutil"
)

const (
	pathCapture   = "/v2/payments/capture"
	pathRefund    = "/v2/refunds/create"
	pathReverse   = "/v2/payments/reverse"
	pathPayerAuth = "/v2/payments/payer-auth"
)

// PaymentGateway is the minimal surface most integrations depend on.
type PaymentGateway interface {
	CreatePayment(req *CreatePaymentRequest) (*Response, error)
	Inquiry(ctx context.Context, transactionID string) (*Response, error)
	Verify(result, checksum string) bool
}

var _ PaymentGateway = (*Client)(nil)

// Client is the 9Pay API client. It is safe for concurrent use when its
// Transport is.
type Client struct {
	credentials Credentials
	signer      *Signer
	baseURL     string
	transport   Transport
	timeout     time.Duration
	logger      logger.Interface
}

// Option is a function that configures the Client.
type Option func(*Client)

// WithTransport sets a custom transport.
func WithTransport(t Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithTimeout sets the timeout of the default transport. It has no effect
// together with WithTransport.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithBaseURL overrides the environment host, e.g. for a staging gateway or a
// local mock.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithLogger sets the logger used for call diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger.NewLoggerWithSlog(l)
	}
}

// NewClient creates a new 9Pay API client.
func NewClient(credentials Credentials, opts ...Option) (*Client, error) {
	if credentials.IsZero() {
		return nil, apperrors.NewConfigurationError("ninepay client requires credentials")
	}

	c := &Client{
		credentials: credentials,
		baseURL:     credentials.BaseURL(),
		timeout:     defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = NewRestyTransport(WithTransportTimeout(c.timeout))
	}
	if c.logger == nil {
		c.logger = logger.NewLogger()
	}
	c.logger = c.logger.Named("ninepay")
	c.signer = NewSigner(credentials).withBaseURL(c.baseURL)

	return c, nil
}

func (c *Client) Credentials() Credentials {
	return c.credentials
}

func (c *Client) Signer() *Signer {
	return c.signer
}

// CreatePayment seals the request into a portal redirect URL. No HTTP request
// is made, so the response status is 0.
func (c *Client) CreatePayment(req *CreatePaymentRequest) (*Response, error) {
	if req == nil {
		return nil, apperrors.NewValidationError("create payment request is required")
	}
	payload, err := req.Payload()
	if err != nil {
		return nil, err
	}
	redirectURL, err := c.signer.EncodeForRedirect(payload)
	if err != nil {
		return nil, err
	}

	c.logger.Debugw("payment redirect created",
		"invoice_no", req.RequestCode(),
		"env", c.credentials.Environment().String(),
	)

	return newSuccessResponse("", map[string]any{"redirect_url": redirectURL}), nil
}

// Inquiry fetches the state of a transaction by invoice number.
func (c *Client) Inquiry(ctx context.Context, transactionID string) (*Response, error) {
	if strings.TrimSpace(transactionID) == "" {
		return nil, apperrors.NewValidationError("Validation failed", "transaction_id is required")
	}

	payload := NewPayload().Set("invoice_no", transactionID)
	authorization, err := c.signer.SignRequestHeader(payload)
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/v2/payments/" + url.PathEscape(transactionID) + "/inquire"
	res, err := c.transport.Get(ctx, endpoint, c.headers(authorization))
	if err != nil {
		c.logger.Warnw("ninepay call failed", "operation", "inquiry", "invoice_no", transactionID, "error", err)
		return nil, err
	}
	return c.finish("inquiry", res), nil
}

// Capture settles an authorized card payment.
func (c *Client) Capture(ctx context.Context, req *CapturePaymentRequest) (*Response, error) {
	return c.post(ctx, "capture", pathCapture, req)
}

// Refund returns funds for a completed payment.
func (c *Client) Refund(ctx context.Context, req *RefundRequest) (*Response, error) {
	return c.post(ctx, "refund", pathRefund, req)
}

// ReverseCardPayment voids an uncaptured authorization.
func (c *Client) ReverseCardPayment(ctx context.Context, req *ReverseCardPaymentRequest) (*Response, error) {
	return c.post(ctx, "reverse", pathReverse, req)
}

// PayerAuth starts payer authentication for a card payment.
func (c *Client) PayerAuth(ctx context.Context, req *PayerAuthRequest) (*Response, error) {
	return c.post(ctx, "payer_auth", pathPayerAuth, req)
}

// Verify checks a callback result against its checksum.
func (c *Client) Verify(result, checksum string) bool {
	return c.signer.Verify(result, checksum)
}

func (c *Client) post(ctx context.Context, operation, path string, req Request) (*Response, error) {
	if isNilRequest(req) {
		return nil, apperrors.NewValidationError(operation + " request is required")
	}
	payload, err := req.Payload()
	if err != nil {
		return nil, err
	}
	authorization, err := c.signer.SignRequestHeader(payload)
	if err != nil {
		return nil, err
	}
	body, err := payload.MarshalJSON()
	if err != nil {
		return nil, serializeError(err)
	}

	res, err := c.transport.Post(ctx, c.baseURL+path, body, c.headers(authorization))
	if err != nil {
		c.logger.Warnw("ninepay call failed", "operation", operation, "error", err)
		return nil, err
	}
	return c.finish(operation, res), nil
}

func (c *Client) headers(authorization string) map[string]string {
	return map[string]string{
		"Authorization": authorization,
		"Accept":        "application/json",
	}
}

func (c *Client) finish(operation string, res *Result) *Response {
	resp := responseFromResult(res)
	if resp.Success() {
		c.logger.Infow("ninepay call succeeded", "operation", operation, "status", res.Status)
	} else {
		c.logger.Warnw("ninepay call rejected",
			"operation", operation,
			"status", res.Status,
			"message", logutil.TruncateForLog(resp.Message(), 200),
		)
	}
	return resp
}

func isNilRequest(req Request) bool {
	switch r := req.(type) {
	case nil:
		return true
	case *CapturePaymentRequest:
		return r == nil
	case *RefundRequest:
		return r == nil
	case *ReverseCardPaymentRequest:
		return r == nil
	case *PayerAuthRequest:
		return r == nil
	}
	return false
}

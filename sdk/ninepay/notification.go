package ninepay

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	apperrors "github.com/ninepay-go/ninepay/internal/shared/errors"
)

const defaultReplayTTL = 24 * time.Hour

// Notification is a verified callback or IPN result.
type Notification struct {
	Raw    string
	Fields map[string]any
}

func (n *Notification) InvoiceNo() string {
	return cast.ToString(n.Fields["invoice_no"])
}

func (n *Notification) PaymentNo() int64 {
	return cast.ToInt64(n.Fields["payment_no"])
}

func (n *Notification) Status() int {
	return cast.ToInt(n.Fields["status"])
}

func (n *Notification) Currency() Currency {
	return Currency(strings.ToUpper(cast.ToString(n.Fields["currency"])))
}

// Amount parses the amount field; a missing or malformed value yields zero.
func (n *Notification) Amount() decimal.Decimal {
	d, err := decimal.NewFromString(cast.ToString(n.Fields["amount"]))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseNotification verifies the checksum, then decodes the base64 result and
// parses its JSON object.
func (s *Signer) ParseNotification(result, checksum string) (*Notification, error) {
	if !s.Verify(result, checksum) {
		return nil, apperrors.NewValidationError("notification checksum mismatch")
	}
	raw, err := DecodeResult(result)
	if err != nil {
		return nil, err
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, apperrors.NewDecodeError("notification result is not a JSON object", err.Error()).WithCause(err)
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return &Notification{Raw: raw, Fields: fields}, nil
}

// ParseNotification is a shorthand for c.Signer().ParseNotification.
func (c *Client) ParseNotification(result, checksum string) (*Notification, error) {
	return c.signer.ParseNotification(result, checksum)
}

// ReplayGuard records processed notifications. Acquire returns false when the
// key was already recorded and has not expired. Release forgets a key.
type ReplayGuard interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// NotificationProcessor verifies notifications and rejects replays.
type NotificationProcessor struct {
	signer *Signer
	guard  ReplayGuard
	ttl    time.Duration
}

// NewNotificationProcessor uses an in-memory guard when guard is nil and a
// 24 hour window when ttl is not positive.
func NewNotificationProcessor(signer *Signer, guard ReplayGuard, ttl time.Duration) *NotificationProcessor {
	if guard == nil {
		guard = NewMemoryReplayGuard()
	}
	if ttl <= 0 {
		ttl = defaultReplayTTL
	}
	return &NotificationProcessor{signer: signer, guard: guard, ttl: ttl}
}

// Process returns ErrDuplicateNotification for a result seen within the TTL.
func (p *NotificationProcessor) Process(ctx context.Context, result, checksum string) (*Notification, error) {
	n, err := p.signer.ParseNotification(result, checksum)
	if err != nil {
		return nil, err
	}

	ok, err := p.guard.Acquire(ctx, replayKey(checksum), p.ttl)
	if err != nil {
		return nil, apperrors.NewInternalError("replay guard unavailable", err.Error()).WithCause(err)
	}
	if !ok {
		return nil, ErrDuplicateNotification
	}
	return n, nil
}

// Release lets the notification identified by checksum be processed again.
// Call it when handling a notification returned by Process failed and the
// gateway is expected to redeliver it.
func (p *NotificationProcessor) Release(ctx context.Context, checksum string) error {
	if strings.TrimSpace(checksum) == "" {
		return apperrors.NewValidationError("checksum is required")
	}
	if err := p.guard.Release(ctx, replayKey(checksum)); err != nil {
		return apperrors.NewInternalError("replay guard unavailable", err.Error()).WithCause(err)
	}
	return nil
}

func replayKey(checksum string) string {
	return "ninepay:notification:" + strings.ToUpper(checksum)
}

// MemoryReplayGuard is a process-local ReplayGuard.
type MemoryReplayGuard struct {
	mu   sync.Mutex
	seen map[string]time.Time
	now  func() time.Time
}

func NewMemoryReplayGuard() *MemoryReplayGuard {
	return &MemoryReplayGuard{
		seen: make(map[string]time.Time),
		now:  time.Now,
	}
}

func (g *MemoryReplayGuard) Acquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if expiresAt, ok := g.seen[key]; ok && now.Before(expiresAt) {
		return false, nil
	}
	g.seen[key] = now.Add(ttl)

	// expired entries are swept on write
	for k, expiresAt := range g.seen {
		if !now.Before(expiresAt) {
			delete(g.seen, k)
		}
	}
	return true, nil
}

func (g *MemoryReplayGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.seen, key)
	return nil
}

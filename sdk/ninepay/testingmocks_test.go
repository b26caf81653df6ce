package ninepay

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTransport struct {
	mock.Mock
}

func (m *mockTransport) Get(ctx context.Context, url string, headers map[string]string) (*Result, error) {
	args := m.Called(ctx, url, headers)
	if r := args.Get(0); r != nil {
		return r.(*Result), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTransport) Post(ctx context.Context, url string, body []byte, headers map[string]string) (*Result, error) {
	args := m.Called(ctx, url, body, headers)
	if r := args.Get(0); r != nil {
		return r.(*Result), args.Error(1)
	}
	return nil, args.Error(1)
}

func testCredentials(t *testing.T) Credentials {
	t.Helper()
	c, err := NewCredentials("merchant", "secret", "CHECKSUM", "SANDBOX")
	require.NoError(t, err)
	return c
}

func newTestClient(t *testing.T, transport Transport) *Client {
	t.Helper()
	c, err := NewClient(testCredentials(t), WithTransport(transport), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	return c
}

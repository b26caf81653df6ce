package payment

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninepay-go/ninepay/sdk/ninepay"
)

func setCredentials(t *testing.T, baseURL string) {
	t.Setenv("NINEPAY_MERCHANT_ID", "merchant")
	t.Setenv("NINEPAY_SECRET_KEY", "secret")
	t.Setenv("NINEPAY_CHECKSUM_KEY", "CHECKSUM")
	t.Setenv("NINEPAY_ENV", "SANDBOX")
	t.Setenv("NINEPAY_BASE_URL", baseURL)
	t.Setenv("NINEPAY_LOGGER_OUTPUT_PATH", "stderr")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCreateCommand(t *testing.T) {
	setCredentials(t, "")

	out, err := execute(t, "create", "--request-code", "INV-CLI-1", "--amount", "10,000", "--description", "Test", "--lang", "en-US")
	require.NoError(t, err)

	var view struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.True(t, view.Success)

	redirectURL, _ := view.Data["redirect_url"].(string)
	assert.Contains(t, redirectURL, "https://sand-payment.9pay.vn/portal?baseEncode=")
}

func TestCreateCommand_InvalidAmount(t *testing.T) {
	setCredentials(t, "")

	_, err := execute(t, "create", "--amount", "ten", "--description", "Test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --amount")
}

func TestCaptureCommand(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"status":"success","message":"Captured"}`)
	}))
	defer srv.Close()
	setCredentials(t, srv.URL)

	out, err := execute(t, "capture", "--request-id", "CAP-1", "--order-code", "777", "--amount", "50000")
	require.NoError(t, err)
	assert.Contains(t, out, `"message": "Captured"`)
	assert.Equal(t, "/v2/payments/capture", gotPath)
	assert.True(t, strings.HasPrefix(gotAuth, "Signature Algorithm=HS256, Credential=merchant"))
	assert.Equal(t, "CAP-1", gotBody["request_id"])
	assert.Equal(t, float64(777), gotBody["order_code"])
}

func TestReverseCommand_GatewayRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"message":"Invalid transaction state"}`)
	}))
	defer srv.Close()
	setCredentials(t, srv.URL)

	out, err := execute(t, "reverse", "--order-code", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid transaction state")
	assert.Contains(t, out, `"success": false`)
}

func TestNewRequestCode(t *testing.T) {
	code := newRequestCode("INV")
	assert.True(t, strings.HasPrefix(code, "INV"))
	assert.Len(t, code, maxRequestCodeLen)
	assert.NotEqual(t, code, newRequestCode("INV"))
}

func TestDisplayAmount(t *testing.T) {
	assert.Equal(t, "1,250,000 VND", displayAmount(decimal.NewFromInt(1250000), ""))
	assert.Equal(t, "1,234.5 USD", displayAmount(decimal.RequireFromString("1234.5"), ninepay.CurrencyUSD))
}

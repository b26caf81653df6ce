package ninepay

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func canonical(t *testing.T, req Request) string {
	t.Helper()
	p, err := req.Payload()
	require.NoError(t, err)
	out, err := p.Canonical()
	require.NoError(t, err)
	return out
}

func TestNewCreatePaymentRequest_RequiredFields(t *testing.T) {
	tests := []struct {
		name        string
		requestCode string
		amount      decimal.Decimal
		description string
		wantErr     string
	}{
		{"missing request code", "", decimal.NewFromInt(10000), "Test", "request_code is required"},
		{"zero amount", "INV-1", decimal.Zero, "Test", "amount is required"},
		{"negative amount", "INV-1", decimal.NewFromInt(-1), "Test", "amount must be greater than 0"},
		{"missing description", "INV-1", decimal.NewFromInt(10000), "", "description is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewCreatePaymentRequest(tt.requestCode, tt.amount, tt.description)
			require.Error(t, err)
			assert.Nil(t, req)
			assert.True(t, IsValidationError(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCreatePaymentRequest_Payload(t *testing.T) {
	req, err := NewCreatePaymentRequest("INV-1", decimal.NewFromInt(10000), "Test")
	require.NoError(t, err)

	req.WithReturnURL("https://shop.example/return").
		WithBackURL("https://shop.example/back").
		WithMethod(PaymentMethodATMCard).
		WithLang(LanguageEnglish).
		WithClientIP("203.0.113.9").
		WithSaveToken(true).
		WithExpiresTime(30)

	assert.Equal(t,
		`{"invoice_no":"INV-1","amount":10000,"description":"Test",`+
			`"back_url":"https://shop.example/back","return_url":"https://shop.example/return",`+
			`"method":"ATM_CARD","client_ip":"203.0.113.9","lang":"en","save_token":1,"expires_time":30}`,
		canonical(t, req))
}

func TestCreatePaymentRequest_MinimalPayloadOmitsUnset(t *testing.T) {
	req, err := NewCreatePaymentRequest("INV-1", decimal.NewFromInt(10000), "Test")
	require.NoError(t, err)

	assert.Equal(t, `{"invoice_no":"INV-1","amount":10000,"description":"Test"}`, canonical(t, req))
}

func TestCreatePaymentRequest_SetterErrorsAccumulate(t *testing.T) {
	req, err := NewCreatePaymentRequest("INV-1", decimal.NewFromInt(10000), "Test")
	require.NoError(t, err)

	req.WithMethod("BITCOIN").
		WithClientIP("not-an-ip").
		WithExpiresTime(-1).
		WithReturnURL("::bad")

	err = req.Validate()
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), `method "BITCOIN" is not supported`)
	assert.Contains(t, err.Error(), "client_ip must be a valid IP address")
	assert.Contains(t, err.Error(), "expires_time must be greater than or equal to 0")
	assert.Contains(t, err.Error(), "return_url must be a valid URL")

	_, err = req.Payload()
	assert.Error(t, err)
}

func TestCreatePaymentRequest_AmountPrecision(t *testing.T) {
	req, err := NewCreatePaymentRequest("INV-1", decimal.RequireFromString("10.5"), "Test")
	require.NoError(t, err)

	_, err = req.Payload()
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	req.WithCurrency(CurrencyUSD)
	assert.Equal(t, `{"invoice_no":"INV-1","amount":10.50,"description":"Test","currency":"USD"}`, canonical(t, req))
}

func TestNewCapturePaymentRequest(t *testing.T) {
	req, err := NewCapturePaymentRequest("REQ-1", 123456, decimal.NewFromInt(50000))
	require.NoError(t, err)
	assert.Equal(t, `{"request_id":"REQ-1","order_code":123456,"amount":50000,"currency":"VND"}`, canonical(t, req))

	_, err = NewCapturePaymentRequest("0123456789012345678901234567890", 1, decimal.NewFromInt(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request_id must be at most 30 characters long")

	_, err = NewCapturePaymentRequest("REQ-1", 0, decimal.NewFromInt(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order_code is required")

	_, err = NewCapturePaymentRequest("REQ-1", 1, decimal.NewFromInt(-10))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount must be greater than 0")
}

func TestNewRefundRequest(t *testing.T) {
	req, err := NewRefundRequest("RF-1", 987, decimal.NewFromInt(20000), "Customer return")
	require.NoError(t, err)

	req.WithBank("VCB", "0123456789", "NGUYEN VAN A")
	assert.Equal(t,
		`{"request_id":"RF-1","payment_no":987,"amount":20000,"description":"Customer return",`+
			`"bank_code":"VCB","account_number":"0123456789","account_name":"NGUYEN VAN A"}`,
		canonical(t, req))
}

func TestRefundRequest_InvalidBank(t *testing.T) {
	req, err := NewRefundRequest("RF-1", 987, decimal.NewFromInt(20000), "Customer return")
	require.NoError(t, err)

	req.WithBank("VCB", "", "NGUYEN VAN A")
	err = req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "account_number is required")
}

func TestNewRefundRequest_RequiredFields(t *testing.T) {
	_, err := NewRefundRequest("RF-1", 0, decimal.NewFromInt(1), "x")
	assert.Error(t, err)
	_, err = NewRefundRequest("RF-1", 1, decimal.NewFromInt(-1), "x")
	assert.Error(t, err)
	_, err = NewRefundRequest("", 1, decimal.NewFromInt(1), "x")
	assert.Error(t, err)
}

func TestNewReverseCardPaymentRequest(t *testing.T) {
	req, err := NewReverseCardPaymentRequest("REV-1", 555)
	require.NoError(t, err)
	assert.Equal(t, `{"request_id":"REV-1","order_code":555}`, canonical(t, req))

	_, err = NewReverseCardPaymentRequest("0123456789012345678901234567890", 555)
	assert.Error(t, err)
}

func TestPayerAuthRequest_NestedPayload(t *testing.T) {
	req, err := NewPayerAuthRequest("req_123", decimal.NewFromInt(5000000), "https://callback.url")
	require.NoError(t, err)

	req.WithInstallment(decimal.NewFromInt(5000000), "VCB", 12).
		WithCard("4111111111111111", "NGUYEN VAN A", 12, 25, "123").
		WithTransactionType(TransactionTypeInstallment)

	assert.Equal(t,
		`{"request_id":"req_123","amount":5000000,"return_url":"https://callback.url",`+
			`"installment":{"amount":5000000,"bank_code":"VCB","period":12},`+
			`"card":{"card_number":"4111111111111111","hold_name":"NGUYEN VAN A","exp_month":12,"exp_year":25,"cvv":"123"},`+
			`"transaction_type":"INSTALLMENT"}`,
		canonical(t, req))
}

func TestPayerAuthRequest_InvalidCard(t *testing.T) {
	req, err := NewPayerAuthRequest("req_123", decimal.NewFromInt(5000000), "https://callback.url")
	require.NoError(t, err)

	req.WithCard("4111111111111111", "NGUYEN VAN A", 13, 25, "123")
	err = req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exp_month must be at most 12")
}

func TestNewPayerAuthRequest_RequiresReturnURL(t *testing.T) {
	_, err := NewPayerAuthRequest("req_123", decimal.NewFromInt(5000000), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "return_url is required")
}

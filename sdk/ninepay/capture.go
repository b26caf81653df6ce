package ninepay

import (
	"github.com/shopspring/decimal"

	"github.com/ninepay-go/ninepay/internal/shared/utils"
)

type captureFields struct {
	RequestID string          `json:"request_id" validate:"required,max=30"`
	OrderCode int64           `json:"order_code" validate:"required,gt=0"`
	Amount    decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Currency  Currency        `json:"currency" validate:"required"`
}

// CapturePaymentRequest settles a previously authorized card payment.
type CapturePaymentRequest struct {
	issues

	requestID string
	orderCode int64
	amount    decimal.Decimal
	currency  Currency
}

// NewCapturePaymentRequest builds a capture in VND; use WithCurrency to change it.
func NewCapturePaymentRequest(requestID string, orderCode int64, amount decimal.Decimal) (*CapturePaymentRequest, error) {
	if err := utils.ValidateStruct(captureFields{
		RequestID: requestID,
		OrderCode: orderCode,
		Amount:    amount,
		Currency:  CurrencyVND,
	}); err != nil {
		return nil, err
	}
	return &CapturePaymentRequest{
		requestID: requestID,
		orderCode: orderCode,
		amount:    amount,
		currency:  CurrencyVND,
	}, nil
}

func (r *CapturePaymentRequest) WithCurrency(currency Currency) *CapturePaymentRequest {
	if !currency.IsValid() {
		r.addf("currency %q is not supported", currency)
		return r
	}
	r.currency = currency
	return r
}

func (r *CapturePaymentRequest) Validate() error {
	return r.Err()
}

func (r *CapturePaymentRequest) Payload() (*Payload, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	amount, err := formatAmount("amount", r.amount, r.currency)
	if err != nil {
		return nil, err
	}
	return NewPayload().
		Set("request_id", r.requestID).
		Set("order_code", r.orderCode).
		Set("amount", amount).
		Set("currency", string(r.currency)).
		Finalize(), nil
}

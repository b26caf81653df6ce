package ninepay

import (
	"github.com/shopspring/decimal"

	"github.com/ninepay-go/ninepay/internal/shared/utils"
)

type createPaymentFields struct {
	RequestCode string          `json:"request_code" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Description string          `json:"description" validate:"required"`
}

// CreatePaymentRequest describes a hosted payment page session.
type CreatePaymentRequest struct {
	PaymentAttributes[*CreatePaymentRequest]
	issues

	requestCode string
	amount      decimal.Decimal
	description string
	backURL     string
	returnURL   string
}

// NewCreatePaymentRequest validates the required fields. The request code is
// sent as invoice_no.
func NewCreatePaymentRequest(requestCode string, amount decimal.Decimal, description string) (*CreatePaymentRequest, error) {
	if err := utils.ValidateStruct(createPaymentFields{
		RequestCode: requestCode,
		Amount:      amount,
		Description: description,
	}); err != nil {
		return nil, err
	}

	r := &CreatePaymentRequest{
		requestCode: requestCode,
		amount:      amount,
		description: description,
	}
	r.bind(r, &r.issues)
	return r, nil
}

// WithBackURL sets where the buyer lands after cancelling on the portal.
func (r *CreatePaymentRequest) WithBackURL(u string) *CreatePaymentRequest {
	if err := utils.ValidateVar("back_url", u, "required,url"); err != nil {
		r.add(err)
		return r
	}
	r.backURL = u
	return r
}

// WithReturnURL sets where the buyer lands after paying.
func (r *CreatePaymentRequest) WithReturnURL(u string) *CreatePaymentRequest {
	if err := utils.ValidateVar("return_url", u, "required,url"); err != nil {
		r.add(err)
		return r
	}
	r.returnURL = u
	return r
}

func (r *CreatePaymentRequest) RequestCode() string     { return r.requestCode }
func (r *CreatePaymentRequest) Amount() decimal.Decimal { return r.amount }
func (r *CreatePaymentRequest) Description() string     { return r.description }

func (r *CreatePaymentRequest) Validate() error {
	return r.Err()
}

func (r *CreatePaymentRequest) Payload() (*Payload, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	amount, err := formatAmount("amount", r.amount, r.Currency())
	if err != nil {
		return nil, err
	}

	p := NewPayload().
		Set("invoice_no", r.requestCode).
		Set("amount", amount).
		Set("description", r.description).
		Set("back_url", r.backURL).
		Set("return_url", r.returnURL)
	r.writeTo(p)
	return p.Finalize(), nil
}

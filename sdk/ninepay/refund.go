package ninepay

import (
	"github.com/shopspring/decimal"

	"github.com/ninepay-go/ninepay/internal/shared/utils"
)

type refundFields struct {
	RequestCode string          `json:"request_code" validate:"required"`
	PaymentNo   int64           `json:"payment_no" validate:"required,gt=0"`
	Amount      decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Description string          `json:"description" validate:"required"`
}

type refundBankFields struct {
	BankCode      string `json:"bank_code" validate:"required"`
	AccountNumber string `json:"account_number" validate:"required,numeric"`
	AccountName   string `json:"account_name" validate:"required"`
}

// RefundRequest returns money for a completed payment. The request code is
// sent as request_id.
type RefundRequest struct {
	issues

	requestCode string
	paymentNo   int64
	amount      decimal.Decimal
	description string
	currency    Currency
	bank        *refundBankFields
}

func NewRefundRequest(requestCode string, paymentNo int64, amount decimal.Decimal, description string) (*RefundRequest, error) {
	if err := utils.ValidateStruct(refundFields{
		RequestCode: requestCode,
		PaymentNo:   paymentNo,
		Amount:      amount,
		Description: description,
	}); err != nil {
		return nil, err
	}
	return &RefundRequest{
		requestCode: requestCode,
		paymentNo:   paymentNo,
		amount:      amount,
		description: description,
	}, nil
}

func (r *RefundRequest) WithCurrency(currency Currency) *RefundRequest {
	if !currency.IsValid() {
		r.addf("currency %q is not supported", currency)
		return r
	}
	r.currency = currency
	return r
}

// WithBank routes the refund to a bank account instead of the original instrument.
func (r *RefundRequest) WithBank(bankCode, accountNumber, accountName string) *RefundRequest {
	bank := &refundBankFields{
		BankCode:      bankCode,
		AccountNumber: accountNumber,
		AccountName:   accountName,
	}
	if err := utils.ValidateStruct(bank); err != nil {
		r.add(err)
		return r
	}
	r.bank = bank
	return r
}

func (r *RefundRequest) Validate() error {
	return r.Err()
}

func (r *RefundRequest) Payload() (*Payload, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	cur := r.currency
	if cur == "" {
		cur = CurrencyVND
	}
	amount, err := formatAmount("amount", r.amount, cur)
	if err != nil {
		return nil, err
	}

	p := NewPayload().
		Set("request_id", r.requestCode).
		Set("payment_no", r.paymentNo).
		Set("amount", amount).
		Set("description", r.description).
		Set("currency", string(r.currency))
	if r.bank != nil {
		p.Set("bank_code", r.bank.BankCode).
			Set("account_number", r.bank.AccountNumber).
			Set("account_name", r.bank.AccountName)
	}
	return p.Finalize(), nil
}

package ninepay

import (
	"github.com/shopspring/decimal"

	"github.com/ninepay-go/ninepay/internal/shared/utils"
)

type payerAuthFields struct {
	RequestID string          `json:"request_id" validate:"required"`
	Amount    decimal.Decimal `json:"amount" validate:"required,gt=0"`
	ReturnURL string          `json:"return_url" validate:"required,url"`
}

type installmentFields struct {
	Amount   decimal.Decimal `json:"amount" validate:"required,gt=0"`
	BankCode string          `json:"bank_code" validate:"required"`
	Period   int             `json:"period" validate:"required,gt=0"`
}

type cardFields struct {
	CardNumber string `json:"card_number" validate:"required,numeric"`
	HolderName string `json:"hold_name" validate:"required"`
	ExpMonth   int    `json:"exp_month" validate:"required,min=1,max=12"`
	ExpYear    int    `json:"exp_year" validate:"required,gt=0"`
	CVV        string `json:"cvv" validate:"required,numeric,min=3,max=4"`
}

// PayerAuthRequest starts 3-D Secure payer authentication for a card payment,
// optionally as an installment plan.
type PayerAuthRequest struct {
	PaymentAttributes[*PayerAuthRequest]
	issues

	requestID   string
	amount      decimal.Decimal
	returnURL   string
	installment *installmentFields
	card        *cardFields
}

func NewPayerAuthRequest(requestID string, amount decimal.Decimal, returnURL string) (*PayerAuthRequest, error) {
	if err := utils.ValidateStruct(payerAuthFields{
		RequestID: requestID,
		Amount:    amount,
		ReturnURL: returnURL,
	}); err != nil {
		return nil, err
	}
	r := &PayerAuthRequest{
		requestID: requestID,
		amount:    amount,
		returnURL: returnURL,
	}
	r.bind(r, &r.issues)
	return r, nil
}

func (r *PayerAuthRequest) WithInstallment(amount decimal.Decimal, bankCode string, period int) *PayerAuthRequest {
	inst := &installmentFields{Amount: amount, BankCode: bankCode, Period: period}
	if err := utils.ValidateStruct(inst); err != nil {
		r.add(err)
		return r
	}
	r.installment = inst
	return r
}

// WithCard attaches raw card details. expYear is sent as given, two or four digits.
func (r *PayerAuthRequest) WithCard(cardNumber, holderName string, expMonth, expYear int, cvv string) *PayerAuthRequest {
	card := &cardFields{
		CardNumber: cardNumber,
		HolderName: holderName,
		ExpMonth:   expMonth,
		ExpYear:    expYear,
		CVV:        cvv,
	}
	if err := utils.ValidateStruct(card); err != nil {
		r.add(err)
		return r
	}
	r.card = card
	return r
}

func (r *PayerAuthRequest) Validate() error {
	return r.Err()
}

func (r *PayerAuthRequest) Payload() (*Payload, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	cur := r.Currency()
	amount, err := formatAmount("amount", r.amount, cur)
	if err != nil {
		return nil, err
	}

	p := NewPayload().
		Set("request_id", r.requestID).
		Set("amount", amount).
		Set("return_url", r.returnURL)

	if r.installment != nil {
		instAmount, err := formatAmount("installment.amount", r.installment.Amount, cur)
		if err != nil {
			return nil, err
		}
		p.Set("installment", NewPayload().
			Set("amount", instAmount).
			Set("bank_code", r.installment.BankCode).
			Set("period", r.installment.Period))
	}
	if r.card != nil {
		p.Set("card", NewPayload().
			Set("card_number", r.card.CardNumber).
			Set("hold_name", r.card.HolderName).
			Set("exp_month", r.card.ExpMonth).
			Set("exp_year", r.card.ExpYear).
			Set("cvv", r.card.CVV))
	}
	r.writeTo(p)
	return p.Finalize(), nil
}

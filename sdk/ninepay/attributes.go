package ninepay

import (
	"fmt"
	"strings"

	apperrors "github.com/ninepay-go/ninepay/internal/shared/errors"
	"github.com/ninepay-go/ninepay/internal/shared/utils"
)

// Request is implemented by every request builder.
type Request interface {
	// Validate reports the first-class field problems collected so far.
	Validate() error
	// Payload returns the finalized wire payload, or the validation error.
	Payload() (*Payload, error)
}

// issues accumulates setter failures so chained calls stay fluent.
type issues struct {
	details []string
}

func (i *issues) add(err error) {
	if err == nil {
		return
	}
	if appErr := apperrors.GetAppError(err); appErr != nil && appErr.Details != "" {
		i.details = append(i.details, appErr.Details)
		return
	}
	i.details = append(i.details, err.Error())
}

func (i *issues) addf(format string, args ...any) {
	i.details = append(i.details, fmt.Sprintf(format, args...))
}

// Err returns nil when every setter accepted its input.
func (i *issues) Err() error {
	if len(i.details) == 0 {
		return nil
	}
	return apperrors.NewValidationError("Validation failed", strings.Join(i.details, "; "))
}

// PaymentAttributes carries the optional fields shared by create-payment and
// payer-auth. R is the embedding request type, so setters chain on it.
type PaymentAttributes[R any] struct {
	self   R
	issues *issues

	method          PaymentMethod
	clientIP        string
	currency        Currency
	lang            Language
	cardToken       string
	saveToken       bool
	transactionType TransactionType
	clientPhone     string
	expiresTime     int64
}

func (a *PaymentAttributes[R]) bind(self R, iss *issues) {
	a.self = self
	a.issues = iss
}

func (a *PaymentAttributes[R]) WithMethod(method PaymentMethod) R {
	if !method.IsValid() {
		a.issues.addf("method %q is not supported", method)
		return a.self
	}
	a.method = method
	return a.self
}

func (a *PaymentAttributes[R]) WithClientIP(ip string) R {
	if err := utils.ValidateVar("client_ip", ip, "required,ip"); err != nil {
		a.issues.add(err)
		return a.self
	}
	a.clientIP = ip
	return a.self
}

func (a *PaymentAttributes[R]) WithCurrency(currency Currency) R {
	if !currency.IsValid() {
		a.issues.addf("currency %q is not supported", currency)
		return a.self
	}
	a.currency = currency
	return a.self
}

func (a *PaymentAttributes[R]) WithLang(lang Language) R {
	if !lang.IsValid() {
		a.issues.addf("lang %q is not supported", lang)
		return a.self
	}
	a.lang = lang
	return a.self
}

func (a *PaymentAttributes[R]) WithCardToken(token string) R {
	a.cardToken = token
	return a.self
}

// WithSaveToken asks the portal to tokenize the card for later use.
func (a *PaymentAttributes[R]) WithSaveToken(save bool) R {
	a.saveToken = save
	return a.self
}

func (a *PaymentAttributes[R]) WithTransactionType(t TransactionType) R {
	if !t.IsValid() {
		a.issues.addf("transaction_type %q is not supported", t)
		return a.self
	}
	a.transactionType = t
	return a.self
}

func (a *PaymentAttributes[R]) WithClientPhone(phone string) R {
	a.clientPhone = phone
	return a.self
}

// WithExpiresTime sets the payment link lifetime in minutes. Zero leaves the
// gateway default.
func (a *PaymentAttributes[R]) WithExpiresTime(minutes int64) R {
	if minutes < 0 {
		a.issues.addf("expires_time must be greater than or equal to 0")
		return a.self
	}
	a.expiresTime = minutes
	return a.self
}

// Currency returns the configured currency, defaulting to VND.
func (a *PaymentAttributes[R]) Currency() Currency {
	if a.currency == "" {
		return CurrencyVND
	}
	return a.currency
}

func (a *PaymentAttributes[R]) writeTo(p *Payload) {
	p.Set("method", string(a.method))
	p.Set("client_ip", a.clientIP)
	p.Set("currency", string(a.currency))
	p.Set("lang", string(a.lang))
	p.Set("card_token", a.cardToken)
	if a.saveToken {
		p.Set("save_token", 1)
	}
	p.Set("transaction_type", string(a.transactionType))
	p.Set("client_phone", a.clientPhone)
	p.Set("expires_time", a.expiresTime)
}

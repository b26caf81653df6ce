package ninepay

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// Currency is an ISO 4217 code accepted by the gateway.
type Currency string

const (
	CurrencyVND Currency = "VND"
	CurrencyUSD Currency = "USD"
	CurrencyIDR Currency = "IDR"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyCNY Currency = "CNY"
	CurrencyJPY Currency = "JPY"
	CurrencyAUD Currency = "AUD"
	CurrencyKRW Currency = "KRW"
	CurrencyCAD Currency = "CAD"
	CurrencyHKD Currency = "HKD"
	CurrencyINR Currency = "INR"
)

func NewCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if !c.IsValid() {
		return "", fmt.Errorf("invalid currency: %s", code)
	}
	return c, nil
}

func (c Currency) IsValid() bool {
	switch c {
	case CurrencyVND, CurrencyUSD, CurrencyIDR, CurrencyEUR, CurrencyGBP, CurrencyCNY,
		CurrencyJPY, CurrencyAUD, CurrencyKRW, CurrencyCAD, CurrencyHKD, CurrencyINR:
		return true
	default:
		return false
	}
}

// Scale returns the number of minor-unit digits the currency allows.
func (c Currency) Scale() int32 {
	unit, err := currency.ParseISO(string(c))
	if err != nil {
		return 0
	}
	scale, _ := currency.Standard.Rounding(unit)
	return int32(scale)
}

func (c Currency) String() string {
	return string(c)
}

// Language selects the language of the hosted payment page.
type Language string

const (
	LanguageVietnamese Language = "vi"
	LanguageEnglish    Language = "en"
)

// ParseLanguage accepts any BCP 47 tag whose base language is supported,
// so "vi-VN" and "EN-us" normalize to "vi" and "en".
func ParseLanguage(s string) (Language, error) {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid language %q: %w", s, err)
	}
	base, _ := tag.Base()
	l := Language(base.String())
	if !l.IsValid() {
		return "", fmt.Errorf("unsupported language: %s", s)
	}
	return l, nil
}

func (l Language) IsValid() bool {
	return l == LanguageVietnamese || l == LanguageEnglish
}

func (l Language) String() string {
	return string(l)
}

type PaymentMethod string

const (
	PaymentMethodATMCard        PaymentMethod = "ATM_CARD"
	PaymentMethodCreditCard     PaymentMethod = "CREDIT_CARD"
	PaymentMethodNinePay        PaymentMethod = "9PAY"
	PaymentMethodCollection     PaymentMethod = "COLLECTION"
	PaymentMethodApplePay       PaymentMethod = "APPLE_PAY"
	PaymentMethodBuyNowPayLater PaymentMethod = "BUY_NOW_PAY_LATER"
	PaymentMethodQRPay          PaymentMethod = "QR_PAY"
	PaymentMethodVNPayPortone   PaymentMethod = "VNPAY_PORTONE"
	PaymentMethodZaloPayWallet  PaymentMethod = "ZALOPAY_WALLET"
	PaymentMethodGooglePay      PaymentMethod = "GOOGLE_PAY"
)

func NewPaymentMethod(method string) (PaymentMethod, error) {
	pm := PaymentMethod(strings.ToUpper(strings.TrimSpace(method)))
	if !pm.IsValid() {
		return "", fmt.Errorf("invalid payment method: %s", method)
	}
	return pm, nil
}

func (pm PaymentMethod) IsValid() bool {
	switch pm {
	case PaymentMethodATMCard, PaymentMethodCreditCard, PaymentMethodNinePay,
		PaymentMethodCollection, PaymentMethodApplePay, PaymentMethodBuyNowPayLater,
		PaymentMethodQRPay, PaymentMethodVNPayPortone, PaymentMethodZaloPayWallet,
		PaymentMethodGooglePay:
		return true
	default:
		return false
	}
}

// IsCard reports whether the method collects card details on the portal.
func (pm PaymentMethod) IsCard() bool {
	return pm == PaymentMethodATMCard || pm == PaymentMethodCreditCard
}

func (pm PaymentMethod) String() string {
	return string(pm)
}

type TransactionType string

const (
	TransactionTypeInstallment       TransactionType = "INSTALLMENT"
	TransactionTypeCardAuthorization TransactionType = "CARD_AUTHORIZATION"
)

func NewTransactionType(t string) (TransactionType, error) {
	tt := TransactionType(strings.ToUpper(strings.TrimSpace(t)))
	if !tt.IsValid() {
		return "", fmt.Errorf("invalid transaction type: %s", t)
	}
	return tt, nil
}

func (t TransactionType) IsValid() bool {
	return t == TransactionTypeInstallment || t == TransactionTypeCardAuthorization
}

func (t TransactionType) String() string {
	return string(t)
}

// Environment selects the gateway host.
type Environment string

const (
	EnvironmentSandbox    Environment = "SANDBOX"
	EnvironmentProduction Environment = "PRODUCTION"
)

const (
	sandboxHost    = "sand-payment.9pay.vn"
	productionHost = "payment.9pay.vn"
)

// ParseEnvironment is case-insensitive, accepts PROD as an alias and treats an
// empty value as sandbox.
func ParseEnvironment(s string) (Environment, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "SANDBOX":
		return EnvironmentSandbox, nil
	case "PRODUCTION", "PROD":
		return EnvironmentProduction, nil
	default:
		return "", fmt.Errorf("invalid environment: %s", s)
	}
}

func (e Environment) IsValid() bool {
	return e == EnvironmentSandbox || e == EnvironmentProduction
}

func (e Environment) IsProduction() bool {
	return e == EnvironmentProduction
}

// Host returns the gateway host for the environment.
func (e Environment) Host() string {
	if e.IsProduction() {
		return productionHost
	}
	return sandboxHost
}

func (e Environment) String() string {
	return string(e)
}

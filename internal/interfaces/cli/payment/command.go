package payment

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ninepay-go/ninepay/internal/interfaces/cli/common"
	"github.com/ninepay-go/ninepay/sdk/ninepay"
)

const maxRequestCodeLen = 30

var (
	flags common.Flags

	requestCode   string
	amount        string
	description   string
	currency      string
	method        string
	lang          string
	returnURL     string
	backURL       string
	clientIP      string
	expiresTime   int64
	orderCode     int64
	paymentNo     int64
	bankCode      string
	accountNumber string
	accountName   string

	installmentAmount string
	installmentBank   string
	installmentPeriod int
	cardNumber        string
	cardHolder        string
	cardExpMonth      int
	cardExpYear       int
	cardCVV           string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "payment",
		Aliases: []string{"pay"},
		Short:   "Create and manage 9Pay payments",
		Long:    `Build payment portal links and call the 9Pay capture, refund, reverse, payer-auth and inquiry APIs.`,
	}

	flags.Bind(cmd)

	cmd.AddCommand(
		newCreateCommand(),
		newInquiryCommand(),
		newCaptureCommand(),
		newRefundCommand(),
		newReverseCommand(),
		newPayerAuthCommand(),
	)

	return cmd
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a payment portal link",
		Long:  `Seal a payment into a signed portal URL. No request is sent to the gateway.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVar(&requestCode, "request-code", "", "Merchant invoice number (default: generated)")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount to charge (required)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Payment description (required)")
	cmd.Flags().StringVar(&currency, "currency", "", "Currency code (default: VND)")
	cmd.Flags().StringVar(&method, "method", "", "Payment method, e.g. ATM_CARD, CREDIT_CARD, 9PAY")
	cmd.Flags().StringVar(&lang, "lang", "", "Portal language (vi, en)")
	cmd.Flags().StringVar(&returnURL, "return-url", "", "URL the buyer returns to after paying")
	cmd.Flags().StringVar(&backURL, "back-url", "", "URL the buyer returns to after cancelling")
	cmd.Flags().StringVar(&clientIP, "client-ip", "", "Buyer IP address")
	cmd.Flags().Int64Var(&expiresTime, "expires", 0, "Link lifetime in minutes")
	cmd.MarkFlagRequired("amount")
	cmd.MarkFlagRequired("description")

	return cmd
}

func newInquiryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inquiry <invoice-no>",
		Short: "Look up a transaction",
		Args:  cobra.ExactArgs(1),
		RunE:  runInquiry,
	}
}

func newCaptureCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Capture an authorized card payment",
		RunE:  runCapture,
	}

	cmd.Flags().StringVar(&requestCode, "request-id", "", "Merchant request id, at most 30 characters (default: generated)")
	cmd.Flags().Int64Var(&orderCode, "order-code", 0, "9Pay order code (required)")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount to capture (required)")
	cmd.Flags().StringVar(&currency, "currency", "", "Currency code (default: VND)")
	cmd.MarkFlagRequired("order-code")
	cmd.MarkFlagRequired("amount")

	return cmd
}

func newRefundCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refund",
		Short: "Refund a completed payment",
		RunE:  runRefund,
	}

	cmd.Flags().StringVar(&requestCode, "request-code", "", "Merchant refund code (default: generated)")
	cmd.Flags().Int64Var(&paymentNo, "payment-no", 0, "9Pay payment number (required)")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount to refund (required)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Refund reason (required)")
	cmd.Flags().StringVar(&currency, "currency", "", "Currency code")
	cmd.Flags().StringVar(&bankCode, "bank-code", "", "Bank code for refunds to a bank account")
	cmd.Flags().StringVar(&accountNumber, "account-number", "", "Bank account number")
	cmd.Flags().StringVar(&accountName, "account-name", "", "Bank account holder name")
	cmd.MarkFlagRequired("payment-no")
	cmd.MarkFlagRequired("amount")
	cmd.MarkFlagRequired("description")

	return cmd
}

func newReverseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reverse",
		Short: "Reverse an uncaptured card authorization",
		RunE:  runReverse,
	}

	cmd.Flags().StringVar(&requestCode, "request-id", "", "Merchant request id, at most 30 characters (default: generated)")
	cmd.Flags().Int64Var(&orderCode, "order-code", 0, "9Pay order code (required)")
	cmd.MarkFlagRequired("order-code")

	return cmd
}

func newPayerAuthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payer-auth",
		Short: "Start payer authentication for a card payment",
		RunE:  runPayerAuth,
	}

	cmd.Flags().StringVar(&requestCode, "request-id", "", "Merchant request id (default: generated)")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount to authorize (required)")
	cmd.Flags().StringVar(&returnURL, "return-url", "", "URL the buyer returns to (required)")
	cmd.Flags().StringVar(&currency, "currency", "", "Currency code (default: VND)")
	cmd.Flags().StringVar(&installmentAmount, "installment-amount", "", "Installment plan amount")
	cmd.Flags().StringVar(&installmentBank, "installment-bank", "", "Installment bank code")
	cmd.Flags().IntVar(&installmentPeriod, "installment-period", 0, "Installment period in months")
	cmd.Flags().StringVar(&cardNumber, "card-number", "", "Card number")
	cmd.Flags().StringVar(&cardHolder, "card-holder", "", "Card holder name")
	cmd.Flags().IntVar(&cardExpMonth, "card-exp-month", 0, "Card expiry month")
	cmd.Flags().IntVar(&cardExpYear, "card-exp-year", 0, "Card expiry year")
	cmd.Flags().StringVar(&cardCVV, "card-cvv", "", "Card CVV")
	cmd.MarkFlagRequired("amount")
	cmd.MarkFlagRequired("return-url")

	return cmd
}

// newRequestCode returns a unique code that fits the gateway's 30 character limit.
func newRequestCode(prefix string) string {
	code := prefix + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	if len(code) > maxRequestCodeLen {
		code = code[:maxRequestCodeLen]
	}
	return code
}

func parseAmount(flag, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(value, ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", flag, value, err)
	}
	return d, nil
}

func parseCurrency() (ninepay.Currency, error) {
	if currency == "" {
		return "", nil
	}
	return ninepay.NewCurrency(currency)
}

// displayAmount formats an amount with thousands separators for summaries.
func displayAmount(d decimal.Decimal, cur ninepay.Currency) string {
	if cur == "" {
		cur = ninepay.CurrencyVND
	}
	f, _ := d.Float64()
	return humanize.CommafWithDigits(f, int(cur.Scale())) + " " + cur.String()
}

package payment

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ninepay-go/ninepay/internal/interfaces/cli/common"
	"github.com/ninepay-go/ninepay/sdk/ninepay"
)

func runCreate(cmd *cobra.Command, args []string) error {
	env, err := common.InitEnv(&flags)
	if err != nil {
		return err
	}
	client, err := env.NewClient()
	if err != nil {
		return err
	}

	amt, err := parseAmount("amount", amount)
	if err != nil {
		return err
	}
	if requestCode == "" {
		requestCode = newRequestCode("INV")
	}

	req, err := ninepay.NewCreatePaymentRequest(requestCode, amt, description)
	if err != nil {
		return err
	}
	cur, err := parseCurrency()
	if err != nil {
		return err
	}
	if cur != "" {
		req.WithCurrency(cur)
	}
	if method != "" {
		pm, err := ninepay.NewPaymentMethod(method)
		if err != nil {
			return err
		}
		req.WithMethod(pm)
	}
	if lang != "" {
		l, err := ninepay.ParseLanguage(lang)
		if err != nil {
			return err
		}
		req.WithLang(l)
	}
	if returnURL != "" {
		req.WithReturnURL(returnURL)
	}
	if backURL != "" {
		req.WithBackURL(backURL)
	}
	if clientIP != "" {
		req.WithClientIP(clientIP)
	}
	if expiresTime != 0 {
		req.WithExpiresTime(expiresTime)
	}

	resp, err := client.CreatePayment(req)
	if err != nil {
		return err
	}

	env.Log.Infow("payment link created",
		"invoice_no", req.RequestCode(),
		"amount", displayAmount(amt, req.Currency()),
		"env", env.Credentials.Environment().String(),
	)
	return common.Write(cmd.OutOrStdout(), flags.Output, common.NewResponseView(resp))
}

func runInquiry(cmd *cobra.Command, args []string) error {
	return call(cmd, "inquiry", func(ctx context.Context, c *ninepay.Client) (*ninepay.Response, error) {
		return c.Inquiry(ctx, args[0])
	})
}

func runCapture(cmd *cobra.Command, args []string) error {
	amt, err := parseAmount("amount", amount)
	if err != nil {
		return err
	}
	if requestCode == "" {
		requestCode = newRequestCode("CAP")
	}
	req, err := ninepay.NewCapturePaymentRequest(requestCode, orderCode, amt)
	if err != nil {
		return err
	}
	cur, err := parseCurrency()
	if err != nil {
		return err
	}
	if cur != "" {
		req.WithCurrency(cur)
	}

	return call(cmd, "capture", func(ctx context.Context, c *ninepay.Client) (*ninepay.Response, error) {
		return c.Capture(ctx, req)
	})
}

func runRefund(cmd *cobra.Command, args []string) error {
	amt, err := parseAmount("amount", amount)
	if err != nil {
		return err
	}
	if requestCode == "" {
		requestCode = newRequestCode("RF")
	}
	req, err := ninepay.NewRefundRequest(requestCode, paymentNo, amt, description)
	if err != nil {
		return err
	}
	cur, err := parseCurrency()
	if err != nil {
		return err
	}
	if cur != "" {
		req.WithCurrency(cur)
	}
	if bankCode != "" || accountNumber != "" || accountName != "" {
		req.WithBank(bankCode, accountNumber, accountName)
	}

	return call(cmd, "refund", func(ctx context.Context, c *ninepay.Client) (*ninepay.Response, error) {
		return c.Refund(ctx, req)
	})
}

func runReverse(cmd *cobra.Command, args []string) error {
	if requestCode == "" {
		requestCode = newRequestCode("REV")
	}
	req, err := ninepay.NewReverseCardPaymentRequest(requestCode, orderCode)
	if err != nil {
		return err
	}

	return call(cmd, "reverse", func(ctx context.Context, c *ninepay.Client) (*ninepay.Response, error) {
		return c.ReverseCardPayment(ctx, req)
	})
}

func runPayerAuth(cmd *cobra.Command, args []string) error {
	amt, err := parseAmount("amount", amount)
	if err != nil {
		return err
	}
	if requestCode == "" {
		requestCode = newRequestCode("PA")
	}
	req, err := ninepay.NewPayerAuthRequest(requestCode, amt, returnURL)
	if err != nil {
		return err
	}
	cur, err := parseCurrency()
	if err != nil {
		return err
	}
	if cur != "" {
		req.WithCurrency(cur)
	}
	if installmentAmount != "" || installmentBank != "" || installmentPeriod != 0 {
		instAmt, err := parseAmount("installment-amount", installmentAmount)
		if err != nil {
			return err
		}
		req.WithInstallment(instAmt, installmentBank, installmentPeriod)
	}
	if cardNumber != "" {
		req.WithCard(cardNumber, cardHolder, cardExpMonth, cardExpYear, cardCVV)
	}

	return call(cmd, "payer_auth", func(ctx context.Context, c *ninepay.Client) (*ninepay.Response, error) {
		return c.PayerAuth(ctx, req)
	})
}

// call runs one server-to-server operation and prints the response.
func call(cmd *cobra.Command, operation string, fn func(ctx context.Context, c *ninepay.Client) (*ninepay.Response, error)) error {
	env, err := common.InitEnv(&flags)
	if err != nil {
		return err
	}
	client, err := env.NewClient()
	if err != nil {
		return err
	}

	resp, err := fn(cmd.Context(), client)
	if err != nil {
		env.Log.Errorw("ninepay call failed", "operation", operation, "error", err)
		return fmt.Errorf("%s failed: %w", operation, err)
	}

	if err := common.Write(cmd.OutOrStdout(), flags.Output, common.NewResponseView(resp)); err != nil {
		return err
	}
	if !resp.Success() {
		return fmt.Errorf("%s rejected by gateway: %s", operation, resp.Message())
	}
	return nil
}

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ninepay-go/ninepay/internal/interfaces/cli/notify"
	"github.com/ninepay-go/ninepay/internal/interfaces/cli/payment"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ninepay",
		Short: "ninepay - 9Pay payment gateway toolkit",
		Long:  `ninepay creates signed 9Pay payment links, calls the card APIs and verifies callback results.`,
	}

	rootCmd.AddCommand(
		payment.NewCommand(),
		notify.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

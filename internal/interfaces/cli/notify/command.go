package notify

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ninepay-go/ninepay/internal/infrastructure/cache"
	"github.com/ninepay-go/ninepay/internal/interfaces/cli/common"
	"github.com/ninepay-go/ninepay/sdk/ninepay"
)

var (
	flags common.Flags

	result   string
	checksum string
	useRedis bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Inspect 9Pay callback and IPN results",
		Long:  `Verify the checksum of a callback result and decode its payload.`,
	}

	flags.Bind(cmd)

	cmd.AddCommand(
		newVerifyCommand(),
		newDecodeCommand(),
		newReleaseCommand(),
	)

	return cmd
}

func newVerifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify and decode a callback result",
		Long:  `Check the result against its checksum using the merchant checksum key, then print the decoded fields.`,
		RunE:  runVerify,
	}

	cmd.Flags().StringVarP(&result, "result", "r", "", "Base64 result from the callback (required)")
	cmd.Flags().StringVarP(&checksum, "checksum", "s", "", "Checksum from the callback (required)")
	cmd.Flags().BoolVar(&useRedis, "redis", false, "Reject replays using the configured Redis server")
	cmd.MarkFlagRequired("result")
	cmd.MarkFlagRequired("checksum")

	return cmd
}

func newDecodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <result>",
		Short: "Decode a base64 result without verifying it",
		Args:  cobra.ExactArgs(1),
		RunE:  runDecode,
	}
}

func newReleaseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "release",
		Short: "Forget a processed notification so it can be accepted again",
		Long:  `Remove the replay record for a checksum from the configured Redis server, for example after the merchant handler failed.`,
		RunE:  runRelease,
	}

	cmd.Flags().StringVarP(&checksum, "checksum", "s", "", "Checksum of the notification to release (required)")
	cmd.MarkFlagRequired("checksum")

	return cmd
}

type notificationView struct {
	Verified bool           `json:"verified" yaml:"verified"`
	Fields   map[string]any `json:"fields" yaml:"fields"`
}

func runVerify(cmd *cobra.Command, args []string) error {
	env, err := common.InitEnv(&flags)
	if err != nil {
		return err
	}

	var guard ninepay.ReplayGuard
	if useRedis || env.Config.Redis.Enabled {
		redisGuard, closeFn, err := newRedisGuard(cmd, env)
		if err != nil {
			return err
		}
		defer closeFn()
		guard = redisGuard
	}

	n, err := newProcessor(env, guard).Process(cmd.Context(), result, checksum)
	if err != nil {
		env.Log.Warnw("notification rejected", "error", err)
		return fmt.Errorf("notification rejected: %w", err)
	}

	env.Log.Infow("notification verified", "invoice_no", n.InvoiceNo(), "status", n.Status())
	return common.Write(cmd.OutOrStdout(), flags.Output, notificationView{Verified: true, Fields: n.Fields})
}

func runRelease(cmd *cobra.Command, args []string) error {
	env, err := common.InitEnv(&flags)
	if err != nil {
		return err
	}

	guard, closeFn, err := newRedisGuard(cmd, env)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := newProcessor(env, guard).Release(cmd.Context(), checksum); err != nil {
		return fmt.Errorf("failed to release notification: %w", err)
	}

	env.Log.Infow("notification released", "checksum", checksum)
	_, err = fmt.Fprintln(cmd.OutOrStdout(), "released")
	return err
}

func newRedisGuard(cmd *cobra.Command, env *common.Env) (*cache.RedisReplayGuard, func() error, error) {
	client, err := cache.NewRedisClient(cmd.Context(), env.Config.Redis)
	if err != nil {
		return nil, nil, err
	}
	return cache.NewRedisReplayGuard(client), client.Close, nil
}

func newProcessor(env *common.Env, guard ninepay.ReplayGuard) *ninepay.NotificationProcessor {
	return ninepay.NewNotificationProcessor(
		ninepay.NewSigner(env.Credentials),
		guard,
		env.Config.Redis.GetReplayTTL(),
	)
}

func runDecode(cmd *cobra.Command, args []string) error {
	decoded, err := ninepay.DecodeResult(args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), decoded)
	return err
}

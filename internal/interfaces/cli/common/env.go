// Package common holds the setup and output helpers shared by the CLI commands.
package common

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ninepay-go/ninepay/internal/infrastructure/config"
	"github.com/ninepay-go/ninepay/internal/shared/logger"
	"github.com/ninepay-go/ninepay/sdk/ninepay"
)

// Flags are the persistent flags every command understands.
type Flags struct {
	ConfigPath string
	Env        string
	Output     string
}

// Bind registers the persistent flags on cmd.
func (f *Flags) Bind(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&f.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.PersistentFlags().StringVarP(&f.Env, "env", "e", "", "Gateway environment (SANDBOX, PRODUCTION); overrides NINEPAY_ENV")
	cmd.PersistentFlags().StringVarP(&f.Output, "output", "o", "json", "Output format (json, yaml)")
}

// Env is the loaded configuration plus the objects built from it.
type Env struct {
	Config      *config.Config
	Credentials ninepay.Credentials
	Log         logger.Interface
}

// InitEnv loads configuration, initializes logging and builds credentials.
func InitEnv(f *Flags) (*Env, error) {
	cfg, err := config.Load(f.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if f.Env != "" {
		cfg.NinePay.Environment = f.Env
	}

	creds, err := ninepay.NewCredentials(
		cfg.NinePay.MerchantID,
		cfg.NinePay.SecretKey,
		cfg.NinePay.ChecksumKey,
		cfg.NinePay.Environment,
	)
	if err != nil {
		return nil, fmt.Errorf("invalid ninepay configuration: %w", err)
	}

	return &Env{
		Config:      cfg,
		Credentials: creds,
		Log:         logger.NewLogger(),
	}, nil
}

// NewClient builds a gateway client from the environment.
func (e *Env) NewClient() (*ninepay.Client, error) {
	opts := []ninepay.Option{
		ninepay.WithTimeout(e.Config.HTTP.GetTimeout()),
		ninepay.WithLogger(logger.Get()),
	}
	if e.Config.NinePay.BaseURL != "" {
		opts = append(opts, ninepay.WithBaseURL(e.Config.NinePay.BaseURL))
	}
	return ninepay.NewClient(e.Credentials, opts...)
}

// Write renders v as JSON or YAML.
func Write(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// ResponseView is the printable form of a gateway response.
type ResponseView struct {
	Success bool           `json:"success" yaml:"success"`
	Message string         `json:"message,omitempty" yaml:"message,omitempty"`
	Status  int            `json:"status,omitempty" yaml:"status,omitempty"`
	Data    map[string]any `json:"data" yaml:"data"`
}

func NewResponseView(resp *ninepay.Response) ResponseView {
	return ResponseView{
		Success: resp.Success(),
		Message: resp.Message(),
		Status:  resp.Status(),
		Data:    resp.Data(),
	}
}

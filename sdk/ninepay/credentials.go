package ninepay

import (
	"fmt"

	apperrors "github.com/ninepay-go/ninepay/internal/shared/errors"
	"github.com/ninepay-go/ninepay/internal/shared/utils/logutil"
)

// Credentials identify a merchant to the gateway. The value is immutable and
// safe to share between goroutines.
type Credentials struct {
	merchantID  string
	secretKey   string
	checksumKey string
	environment Environment
}

// NewCredentials validates and builds merchant credentials. env accepts
// SANDBOX, PRODUCTION or PROD in any case; empty means sandbox.
func NewCredentials(merchantID, secretKey, checksumKey, env string) (Credentials, error) {
	if merchantID == "" || secretKey == "" || checksumKey == "" {
		return Credentials{}, apperrors.NewConfigurationError(
			"ninepay credentials require merchant_id, secret_key and checksum_key",
		)
	}

	environment, err := ParseEnvironment(env)
	if err != nil {
		return Credentials{}, apperrors.NewConfigurationError(err.Error()).WithCause(err)
	}

	return Credentials{
		merchantID:  merchantID,
		secretKey:   secretKey,
		checksumKey: checksumKey,
		environment: environment,
	}, nil
}

func (c Credentials) MerchantID() string       { return c.merchantID }
func (c Credentials) SecretKey() string        { return c.secretKey }
func (c Credentials) ChecksumKey() string      { return c.checksumKey }
func (c Credentials) Environment() Environment { return c.environment }

// BaseURL returns the scheme and host for the configured environment.
func (c Credentials) BaseURL() string {
	return "https://" + c.environment.Host()
}

// IsZero reports whether the credentials were never initialized.
func (c Credentials) IsZero() bool {
	return c.merchantID == "" && c.secretKey == "" && c.checksumKey == ""
}

// String never prints the secret or checksum key in full.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{merchant_id=%s, secret_key=%s, checksum_key=%s, env=%s}",
		c.merchantID, logutil.MaskSecret(c.secretKey), logutil.MaskSecret(c.checksumKey), c.environment)
}

// GoString keeps %#v from leaking secrets.
func (c Credentials) GoString() string {
	return c.String()
}

package notify

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setCredentials(t *testing.T) {
	t.Setenv("NINEPAY_MERCHANT_ID", "merchant")
	t.Setenv("NINEPAY_SECRET_KEY", "secret")
	t.Setenv("NINEPAY_CHECKSUM_KEY", "CHECKSUM")
	t.Setenv("NINEPAY_ENV", "SANDBOX")
	t.Setenv("NINEPAY_LOGGER_OUTPUT_PATH", "stderr")
	t.Setenv("NINEPAY_REDIS_ENABLED", "false")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func checksumOf(result string) string {
	sum := sha256.Sum256([]byte(result + "CHECKSUM"))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

func TestDecodeCommand(t *testing.T) {
	out, err := execute(t, "decode", "dGVzdA")
	require.NoError(t, err)
	assert.Equal(t, "test\n", out)

	_, err = execute(t, "decode", "!!!")
	assert.Error(t, err)
}

func TestVerifyCommand(t *testing.T) {
	setCredentials(t)
	result := base64.StdEncoding.EncodeToString([]byte(`{"invoice_no":"INV-1","status":5}`))

	out, err := execute(t, "verify", "--result", result, "--checksum", checksumOf(result))
	require.NoError(t, err)
	assert.Contains(t, out, `"verified": true`)
	assert.Contains(t, out, `"invoice_no": "INV-1"`)

	_, err = execute(t, "verify", "--result", result, "--checksum", "BAD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notification rejected")
}

func TestVerifyCommand_YAMLOutput(t *testing.T) {
	setCredentials(t)
	result := base64.StdEncoding.EncodeToString([]byte(`{"invoice_no":"INV-2"}`))

	out, err := execute(t, "verify", "-o", "yaml", "--result", result, "--checksum", checksumOf(result))
	require.NoError(t, err)
	assert.Contains(t, out, "verified: true")
	assert.Contains(t, out, "invoice_no: INV-2")
}

func TestReleaseCommand_RequiresRedis(t *testing.T) {
	setCredentials(t)
	t.Setenv("NINEPAY_REDIS_HOST", "127.0.0.1")
	t.Setenv("NINEPAY_REDIS_PORT", "1")

	_, err := execute(t, "release", "--checksum", "ABC")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestReleaseCommand_RequiresChecksum(t *testing.T) {
	setCredentials(t)
	checksum = ""

	_, err := execute(t, "release")
	assert.Error(t, err)
}

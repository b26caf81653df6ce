package ninepay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectedChecksum(result, key string) string {
	sum := sha256.Sum256([]byte(result + key))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

func expectedHMAC(message, key string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(message))
	return strings.ToUpper(hex.EncodeToString(mac.Sum(nil)))
}

func TestSigner_VerifyChecksumLaw(t *testing.T) {
	signer := NewSigner(testCredentials(t))

	tests := []struct {
		name   string
		result string
	}{
		{"short", "test"},
		{"unicode", "Thanh toán đơn hàng #123 ✓"},
		{"large", strings.Repeat("eyJhbW91bnQiOjEwMDAwfQ", 4096)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checksum := expectedChecksum(tt.result, "CHECKSUM")
			assert.Equal(t, checksum, signer.Checksum(tt.result))
			assert.True(t, signer.Verify(tt.result, checksum))
			assert.False(t, signer.Verify(tt.result, expectedChecksum(tt.result, "OTHER")))
		})
	}
}

func TestSigner_VerifyRejectsSingleCharacterMutation(t *testing.T) {
	signer := NewSigner(testCredentials(t))
	checksum := expectedChecksum("test", "CHECKSUM")
	require.True(t, signer.Verify("test", checksum))

	for i := range checksum {
		replacement := byte('0')
		if checksum[i] == '0' {
			replacement = '1'
		}
		mutated := checksum[:i] + string(replacement) + checksum[i+1:]
		assert.False(t, signer.Verify("test", mutated), "mutation at %d should fail", i)
	}
}

func TestSigner_VerifyIsCaseStrict(t *testing.T) {
	signer := NewSigner(testCredentials(t))
	checksum := expectedChecksum("test", "CHECKSUM")
	assert.False(t, signer.Verify("test", strings.ToLower(checksum)))
}

func TestSigner_VerifyEmptyInputs(t *testing.T) {
	signer := NewSigner(testCredentials(t))

	assert.False(t, signer.Verify("", "X"))
	assert.False(t, signer.Verify("result", ""))
	assert.False(t, signer.Verify("", ""))
}

func TestSigner_SealRoundTrip(t *testing.T) {
	signer := NewSigner(testCredentials(t))
	payload := NewPayload().
		Set("invoice_no", "INV-1").
		Set("description", "Áo thun <size M> & quần").
		Set("amount", 10000)

	env, err := signer.Seal(payload)
	require.NoError(t, err)

	canonical, err := payload.Canonical()
	require.NoError(t, err)

	decoded, err := DecodeResult(env.EncodedPayload)
	require.NoError(t, err)
	assert.Equal(t, canonical, decoded)
	assert.Equal(t, expectedHMAC(env.EncodedPayload, "secret"), env.Signature)
	assert.NotContains(t, env.EncodedPayload, "=")
}

func TestSigner_SealEmptyPayload(t *testing.T) {
	signer := NewSigner(testCredentials(t))

	env, err := signer.Seal(NewPayload())
	require.NoError(t, err)

	decoded, err := DecodeResult(env.EncodedPayload)
	require.NoError(t, err)
	assert.Equal(t, "{}", decoded)
	assert.Len(t, env.Signature, 64)
}

func TestSigner_EncodeForRedirectIsDeterministic(t *testing.T) {
	signer := NewSigner(testCredentials(t))
	build := func() *Payload {
		return NewPayload().Set("invoice_no", "INV-1").Set("amount", 10000)
	}

	first, err := signer.EncodeForRedirect(build())
	require.NoError(t, err)
	second, err := signer.EncodeForRedirect(build())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	u, err := url.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "sand-payment.9pay.vn", u.Host)
	assert.Equal(t, "/portal", u.Path)
	assert.NotEmpty(t, u.Query().Get("baseEncode"))
	assert.Regexp(t, "^[0-9A-F]{64}$", u.Query().Get("signature"))
}

func TestDecodeResult(t *testing.T) {
	stdAlphabet := base64.StdEncoding.EncodeToString([]byte{0xfb, 0xff, 0xbf})

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "unpadded", input: "dGVzdA", want: "test"},
		{name: "padded", input: "dGVzdA==", want: "test"},
		{name: "standard alphabet", input: stdAlphabet, want: string([]byte{0xfb, 0xff, 0xbf})},
		{name: "url alphabet", input: "-_-_", want: string([]byte{0xfb, 0xff, 0xbf})},
		{name: "empty", input: "", want: ""},
		{name: "malformed", input: "!!!not-base64", wantErr: true},
		{name: "impossible length", input: "a", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeResult(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsDecodeError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSigner_SignRequestHeader(t *testing.T) {
	signer := NewSigner(testCredentials(t))
	payload := NewPayload().Set("request_id", "REQ-1").Set("order_code", 42)

	header, err := signer.SignRequestHeader(payload)
	require.NoError(t, err)

	expected := "Signature Algorithm=HS256, Credential=merchant, SignedHeaders=, Signature=" +
		expectedHMAC(`{"request_id":"REQ-1","order_code":42}`, "secret")
	assert.Equal(t, expected, header)
}

package ninepay

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"

	apperrors "github.com/ninepay-go/ninepay/internal/shared/errors"
)

const (
	portalPath      = "/portal"
	headerAlgorithm = "HS256"
)

// Envelope is the signed form of a payload sent through the browser redirect.
type Envelope struct {
	EncodedPayload string
	Signature      string
}

// Signer computes redirect envelopes, request header signatures and callback
// checksums for one set of credentials. It holds no mutable state.
type Signer struct {
	credentials Credentials
	baseURL     string
}

func NewSigner(credentials Credentials) *Signer {
	return &Signer{
		credentials: credentials,
		baseURL:     credentials.BaseURL(),
	}
}

func (s *Signer) withBaseURL(baseURL string) *Signer {
	return &Signer{credentials: s.credentials, baseURL: strings.TrimRight(baseURL, "/")}
}

// Seal serializes the payload, encodes it as unpadded base64url and signs the
// encoded blob with the secret key.
func (s *Signer) Seal(p *Payload) (Envelope, error) {
	if p == nil {
		p = NewPayload()
	}
	raw, err := p.Canonical()
	if err != nil {
		return Envelope{}, serializeError(err)
	}
	encoded := base64.RawURLEncoding.EncodeToString([]byte(raw))
	return Envelope{
		EncodedPayload: encoded,
		Signature:      s.hmacHex(encoded),
	}, nil
}

// EncodeForRedirect returns the hosted payment page URL carrying the sealed payload.
func (s *Signer) EncodeForRedirect(p *Payload) (string, error) {
	env, err := s.Seal(p)
	if err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set("baseEncode", env.EncodedPayload)
	q.Set("signature", env.Signature)
	return s.baseURL + portalPath + "?" + q.Encode(), nil
}

// SignRequestHeader builds the Authorization value for server-to-server calls.
// The signature covers the canonical JSON body.
func (s *Signer) SignRequestHeader(p *Payload) (string, error) {
	if p == nil {
		p = NewPayload()
	}
	body, err := p.Canonical()
	if err != nil {
		return "", serializeError(err)
	}
	return fmt.Sprintf("Signature Algorithm=%s, Credential=%s, SignedHeaders=, Signature=%s",
		headerAlgorithm, s.credentials.MerchantID(), s.hmacHex(body)), nil
}

// serializeError keeps validation failures from the payload as they are and
// reports anything else as internal.
func serializeError(err error) error {
	if apperrors.IsValidationError(err) {
		return err
	}
	return apperrors.NewInternalError("failed to serialize payload", err.Error()).WithCause(err)
}

// Verify checks a callback checksum: uppercase hex SHA-256 of the result
// followed by the checksum key. Empty inputs never verify.
func (s *Signer) Verify(result, checksum string) bool {
	if result == "" || checksum == "" {
		return false
	}
	expected := s.Checksum(result)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(checksum)) == 1
}

// Checksum returns the value the gateway sends alongside a callback result.
func (s *Signer) Checksum(result string) string {
	sum := sha256.Sum256([]byte(result + s.credentials.ChecksumKey()))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

func (s *Signer) hmacHex(message string) string {
	mac := hmac.New(sha256.New, []byte(s.credentials.SecretKey()))
	mac.Write([]byte(message))
	return strings.ToUpper(hex.EncodeToString(mac.Sum(nil)))
}

// DecodeResult decodes a base64 callback result. Padded and unpadded input is
// accepted, in either the URL-safe or the standard alphabet.
func DecodeResult(encoded string) (string, error) {
	normalized := strings.TrimSpace(encoded)
	normalized = strings.NewReplacer("+", "-", "/", "_").Replace(normalized)
	normalized = strings.TrimRight(normalized, "=")

	decoded, err := base64.RawURLEncoding.DecodeString(normalized)
	if err != nil {
		return "", apperrors.NewDecodeError("invalid base64 result", err.Error()).WithCause(err)
	}
	return string(decoded), nil
}

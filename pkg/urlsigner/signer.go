package urlsigner

import (
	"crypto/hmac"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Default query parameter names
const (
	DefaultExpiresParameter   = "expires"
	DefaultSignatureParameter = "signature"
)

// Signer generates and validates signed, time-limited URLs.
//
// A Signer is immutable after construction and safe for concurrent use: Sign
// and Validate read only the key, the parameter names and the clock.
type Signer struct {
	key                []byte
	expiresParameter   string
	signatureParameter string
	algorithm          SignatureAlgorithm
	now                func() time.Time
}

// New creates a Signer with the given signing key. Returns
// ErrInvalidSignatureKey if the key is empty.
func New(key string, opts ...Option) (*Signer, error) {
	if key == "" {
		return nil, ErrInvalidSignatureKey
	}

	s := &Signer{
		key:                []byte(key),
		expiresParameter:   DefaultExpiresParameter,
		signatureParameter: DefaultSignatureParameter,
		algorithm:          defaultAlgorithm(),
		now:                time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Sign returns rawURL with expiration and signature query parameters
// appended. Pre-existing query parameters are preserved; parameters with the
// signer's reserved names are superseded. Returns ErrInvalidExpiration unless
// expiresAt is strictly in the future.
//
// Example:
//
//	signed, err := signer.Sign("https://example.com/file", time.Now().Add(time.Hour))
//	// https://example.com/file?expires=1696789012&signature=abc123...
func (s *Signer) Sign(rawURL string, expiresAt time.Time) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("urlsigner: parse url: %w", err)
	}

	if !expiresAt.After(s.now()) {
		return "", ErrInvalidExpiration
	}
	expires := expiresAt.Unix()

	// The signature covers the canonical URL, i.e. the URL without the
	// signer's own parameters. Validate rebuilds the same form.
	query := u.Query()
	query.Del(s.expiresParameter)
	query.Del(s.signatureParameter)
	signature := s.algorithm.CreateSignature(s.key, canonicalize(u, query), expires)

	query.Set(s.expiresParameter, strconv.FormatInt(expires, 10))
	query.Set(s.signatureParameter, signature)
	u.RawQuery = query.Encode()

	return u.String(), nil
}

// SignTTL signs rawURL with an expiration of now plus ttl.
func (s *Signer) SignTTL(rawURL string, ttl time.Duration) (string, error) {
	return s.Sign(rawURL, s.now().Add(ttl))
}

// SignDays signs rawURL with an expiration the given number of days from
// now. A zero or negative day count resolves to a non-future time and fails
// with ErrInvalidExpiration.
func (s *Signer) SignDays(rawURL string, days int) (string, error) {
	return s.Sign(rawURL, s.now().AddDate(0, 0, days))
}

// Validate reports whether rawURL carries a correct signature and has not
// expired. It never returns an error: missing parameters, malformed or past
// expirations and signature mismatches all yield false, so the holder of a
// URL learns nothing about why it was rejected.
func (s *Signer) Validate(rawURL string) bool {
	return s.check(rawURL) == nil
}

// check returns the validation failure reason, or nil for a valid URL. The
// reasons are for logging only; see Validate.
func (s *Signer) check(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("urlsigner: parse url: %w", err)
	}

	query := u.Query()

	// Reject repeated reserved parameters rather than guessing which
	// value was intended.
	expiresValues, ok := query[s.expiresParameter]
	if !ok {
		return ErrMissingExpires
	}
	if len(expiresValues) != 1 {
		return ErrMalformedExpires
	}
	signatureValues, ok := query[s.signatureParameter]
	if !ok {
		return ErrMissingSignature
	}
	if len(signatureValues) != 1 {
		return ErrInvalidSignature
	}

	expires, err := strconv.ParseInt(expiresValues[0], 10, 64)
	if err != nil {
		return ErrMalformedExpires
	}
	if expires <= s.now().Unix() {
		return ErrExpired
	}

	// Rebuild the canonical URL that was originally signed.
	query.Del(s.expiresParameter)
	query.Del(s.signatureParameter)
	expected := s.algorithm.CreateSignature(s.key, canonicalize(u, query), expires)

	// hmac.Equal compares in constant time to avoid leaking the position
	// of the first mismatching byte.
	if !hmac.Equal([]byte(signatureValues[0]), []byte(expected)) {
		return ErrInvalidSignature
	}

	return nil
}

// canonicalize serializes u with the given query, re-encoded so that the same
// set of parameters always yields the same string regardless of their
// original order.
func canonicalize(u *url.URL, query url.Values) string {
	cu := *u
	cu.RawQuery = query.Encode()
	cu.ForceQuery = false
	return cu.String()
}

package urlsigner

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"strconv"
	"strings"
)

// separator joins the signed fields. None of the fields can contain this
// exact sequence in well-formed input: the canonical URL has its query
// percent-encoded and the expiration is a decimal integer.
const separator = "::"

// SignatureAlgorithm computes the signature for a canonical URL and its
// expiration timestamp. Implementations must be deterministic: the same key,
// URL and timestamp always produce the same signature.
type SignatureAlgorithm interface {
	CreateSignature(key []byte, canonicalURL string, expiresAt int64) string
}

// HMACAlgorithm signs URLs with a keyed MAC over the canonical URL and
// expiration. The signing key enters only as the MAC key, never as part of
// the message. This is the default algorithm.
type HMACAlgorithm struct {
	digest func() hash.Hash
}

// NewHMACAlgorithm creates an HMACAlgorithm using the given digest
// constructor, e.g. sha256.New or sha512.New.
func NewHMACAlgorithm(digest func() hash.Hash) *HMACAlgorithm {
	return &HMACAlgorithm{digest: digest}
}

// CreateSignature returns the lowercase hex HMAC of "url::expires".
func (a *HMACAlgorithm) CreateSignature(key []byte, canonicalURL string, expiresAt int64) string {
	mac := hmac.New(a.digest, key)
	mac.Write([]byte(canonicalURL + separator + strconv.FormatInt(expiresAt, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}

// DigestAlgorithm is the legacy scheme: an unkeyed digest over
// "url::expires::key". Anyone who can compute the digest can forge
// signatures offline once they guess the key, so this exists only for
// compatibility with consumers of the original scheme. Use HMACAlgorithm
// for anything new.
type DigestAlgorithm struct {
	digest func() hash.Hash
}

// NewDigestAlgorithm creates a DigestAlgorithm using the given digest
// constructor, e.g. md5.New for the original scheme.
func NewDigestAlgorithm(digest func() hash.Hash) *DigestAlgorithm {
	return &DigestAlgorithm{digest: digest}
}

// CreateSignature returns the lowercase hex digest of "url::expires::key".
func (a *DigestAlgorithm) CreateSignature(key []byte, canonicalURL string, expiresAt int64) string {
	h := a.digest()
	payload := strings.Join([]string{
		canonicalURL,
		strconv.FormatInt(expiresAt, 10),
		string(key),
	}, separator)
	h.Write([]byte(payload))
	return hex.EncodeToString(h.Sum(nil))
}

func defaultAlgorithm() SignatureAlgorithm {
	return NewHMACAlgorithm(sha256.New)
}

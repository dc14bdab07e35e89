package urlsigner

import "errors"

// Signing and validation errors
var (
	// ErrInvalidSignatureKey is returned by New when the signing key is empty
	ErrInvalidSignatureKey = errors.New("urlsigner: signature key must not be empty")

	// ErrInvalidExpiration is returned by Sign when the expiration is not
	// strictly in the future
	ErrInvalidExpiration = errors.New("urlsigner: expiration must be in the future")

	// ErrMissingSignature indicates the signature query parameter is absent
	ErrMissingSignature = errors.New("urlsigner: missing signature parameter")

	// ErrMissingExpires indicates the expires query parameter is absent
	ErrMissingExpires = errors.New("urlsigner: missing expires parameter")

	// ErrMalformedExpires indicates the expires parameter is repeated or not
	// a decimal timestamp
	ErrMalformedExpires = errors.New("urlsigner: malformed expires parameter")

	// ErrExpired indicates the embedded expiration has passed
	ErrExpired = errors.New("urlsigner: URL has expired")

	// ErrInvalidSignature indicates the signature does not match the URL
	ErrInvalidSignature = errors.New("urlsigner: invalid signature")
)

// IsValidationError returns true if the error is one of the reasons a signed
// URL can fail validation. Validate collapses all of these to false; they are
// surfaced only for logging, e.g. by ValidateMiddleware.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingSignature) ||
		errors.Is(err, ErrMissingExpires) ||
		errors.Is(err, ErrMalformedExpires) ||
		errors.Is(err, ErrExpired) ||
		errors.Is(err, ErrInvalidSignature)
}

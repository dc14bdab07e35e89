package urlsigner

import "time"

// Option is a functional option for configuring a Signer
type Option func(*Signer)

// WithExpiresParameter sets the query parameter name carrying the expiration
// timestamp. Default is "expires". The name is stored verbatim; keeping it
// clear of parameters the signed URLs already use is the caller's job.
func WithExpiresParameter(name string) Option {
	return func(s *Signer) {
		s.expiresParameter = name
	}
}

// WithSignatureParameter sets the query parameter name carrying the
// signature. Default is "signature".
func WithSignatureParameter(name string) Option {
	return func(s *Signer) {
		s.signatureParameter = name
	}
}

// WithAlgorithm installs the signature algorithm. Default is HMAC-SHA256.
func WithAlgorithm(alg SignatureAlgorithm) Option {
	return func(s *Signer) {
		s.algorithm = alg
	}
}

// WithClock overrides the time source used for expiration checks. Tests use
// this to simulate expiry without sleeping.
func WithClock(now func() time.Time) Option {
	return func(s *Signer) {
		s.now = now
	}
}

// Package urlsigner generates and validates tamper-evident, time-limited URLs.
//
// A Signer appends an expiration timestamp and a keyed signature to a URL as
// query parameters. Anyone holding the signing key can later check that the
// URL was not altered and has not expired. No server-side state is involved:
// everything needed for validation travels in the URL itself.
//
// # Basic Usage
//
// Sign a URL that stays valid for one hour:
//
//	signer, err := urlsigner.New("your-secret-key")
//	if err != nil {
//	    // empty signing key
//	}
//	signed, err := signer.SignTTL("https://example.com/file", time.Hour)
//
// Validate it later:
//
//	if signer.Validate(signed) {
//	    // signature matches and the URL has not expired
//	}
//
// Validate never returns an error: tampered, expired, malformed and incomplete
// URLs all collapse to false, so callers cannot leak why validation failed.
//
// # Signature Algorithms
//
// The signature scheme is pluggable. The default is HMAC-SHA256 over the
// canonical URL and expiration. DigestAlgorithm reproduces the legacy
// url::expiration::key checksum scheme for interoperability with existing
// consumers; it is forgeable without a proper MAC and should not be used for
// new deployments.
//
//	signer, _ := urlsigner.New("secret",
//	    urlsigner.WithAlgorithm(urlsigner.NewDigestAlgorithm(md5.New)),
//	)
//
// # HTTP Middleware
//
// ValidateMiddleware guards routes that are only reachable through signed
// URLs:
//
//	r := chi.NewRouter()
//	r.Route("/download", func(r chi.Router) {
//	    r.Use(urlsigner.ValidateMiddleware(signer))
//	    r.Get("/{key}", handleDownload)
//	})
//
// # Security Notes
//
//   - Use a strong signing key (at least 32 random bytes) and keep it out of
//     the URL and of source control.
//   - Pick expirations as short as the workflow allows.
//   - Issued URLs cannot be revoked before they expire; rotate the key to
//     invalidate everything outstanding.
package urlsigner

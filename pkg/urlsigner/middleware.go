package urlsigner

import (
	"log/slog"
	"net/http"
)

// ValidateMiddleware returns HTTP middleware that rejects requests whose URL
// does not carry a valid signature. The request is checked by its request
// URI (path plus query), so routes guarded by this middleware must be signed
// as relative URLs.
//
// Every rejection gets the same 403 response; the reason is logged but never
// sent to the client, so a caller probing with forged URLs learns nothing
// from the response.
//
// Example:
//
//	r.Route("/download", func(r chi.Router) {
//	    r.Use(urlsigner.ValidateMiddleware(signer))
//	    r.Get("/{key}", handleDownload)
//	})
func ValidateMiddleware(s *Signer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := s.check(r.URL.RequestURI()); err != nil {
				slog.Info("rejected unsigned or expired request",
					"path", r.URL.Path, "reason", err)
				http.Error(w, "invalid or expired URL", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

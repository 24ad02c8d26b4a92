package identity

import (
	"context"
	"net/http"
)

// PrincipalHeader carries the identity-provider-verified principal. The
// authenticating gateway strips and re-sets it, so its presence can be
// trusted inside the perimeter.
const PrincipalHeader = "X-Principal"

type contextKey struct{}

// PrincipalFromContext returns the caller's principal, or "" for an
// anonymous request.
func PrincipalFromContext(ctx context.Context) string {
	principal, _ := ctx.Value(contextKey{}).(string)
	return principal
}

// WithPrincipal is mainly for tests.
func WithPrincipal(ctx context.Context, principal string) context.Context {
	return context.WithValue(ctx, contextKey{}, principal)
}

// Middleware extracts the principal header into the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := r.Header.Get(PrincipalHeader)
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}

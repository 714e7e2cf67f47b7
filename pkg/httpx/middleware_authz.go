package httpx

import "net/http"

// RequireRole only lets through callers whose authenticated role is one of
// those listed. Compose it after AuthnMiddleware; on its own it rejects
// everything because no role is in context.
func RequireRole(allowed ...string) Middleware {
	want := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		want[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := want[RoleFromCtx(r.Context())]; !ok {
				WriteMsg(w, http.StatusForbidden, "Acceso denegado. Rol insuficiente")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

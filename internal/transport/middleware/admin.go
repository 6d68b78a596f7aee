package middleware

import (
	"net/http"

	"github.com/heartmarshall/bookloan-backend/pkg/ctxutil"
)

// RequireAdmin rejects requests whose authenticated role is not ADMIN with
// 403. It must run after Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !ctxutil.IsAdminCtx(r.Context()) {
			writeError(w, http.StatusForbidden, codeNotAnAdmin, "Unauthorized! You're not an admin")
			return
		}
		next.ServeHTTP(w, r)
	})
}

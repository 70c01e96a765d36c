package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"notebook/internal/auth"
	"notebook/internal/httputil"
)

// publicPaths skip authentication
var publicPaths = map[string]bool{
	"/health":          true,
	"/api/block-types": true,
}

// AuthMiddleware verifies the bearer token and stores the user id in the
// request context. Requests without a valid token never reach a handler.
func AuthMiddleware(verifier auth.JWTVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				httputil.RespondError(w, httputil.KindUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(strings.TrimSpace(token))
			if err != nil {
				httputil.RespondError(w, httputil.KindUnauthorized, err.Error())
				return
			}

			userID, err := claims.UserID()
			if err != nil {
				httputil.RespondError(w, httputil.KindUnauthorized, "invalid token subject")
				return
			}

			logger.Debug("request authenticated",
				"user_id", userID,
				"request_id", httputil.GetRequestID(r.Context()),
			)
			next.ServeHTTP(w, httputil.WithUserID(r, userID))
		})
	}
}

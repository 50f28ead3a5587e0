package api

import (
	"context"
	"log"
	"net/http"
	"strings"

	"companion-backend/internal/auth"
	"companion-backend/internal/models"
	"companion-backend/pkg/httputil"
)

// UserResolver loads a user from a verified token subject.
type UserResolver interface {
	ResolveUser(ctx context.Context, email string) (*models.User, error)
}

// credentialsError is the single 401 body for every authentication failure.
// A missing header, a bad or expired token, and an unknown subject must be
// indistinguishable to the caller.
const credentialsError = "Could not validate credentials"

// SessionMiddleware verifies the bearer token from the Authorization header
// and resolves the subject into a full user record. On success the user is
// injected into the request context.
func SessionMiddleware(jwtSecret string, resolver UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Println("Session Middleware: Missing Authorization header")
				httputil.RespondError(w, http.StatusUnauthorized, credentialsError)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				log.Println("Session Middleware: Malformed Authorization header")
				httputil.RespondError(w, http.StatusUnauthorized, credentialsError)
				return
			}

			subject, err := auth.ParseAccessToken(parts[1], jwtSecret)
			if err != nil {
				log.Printf("Session Middleware: Token verification failed: %v", err)
				httputil.RespondError(w, http.StatusUnauthorized, credentialsError)
				return
			}

			user, err := resolver.ResolveUser(r.Context(), subject)
			if err != nil {
				// Subject no longer exists or lookup failed; fail closed
				// with the same response either way.
				log.Printf("Session Middleware: Failed to resolve subject: %v", err)
				httputil.RespondError(w, http.StatusUnauthorized, credentialsError)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
		})
	}
}

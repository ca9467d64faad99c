package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/MonkyMars/gecho"

	contextkeys "github.com/AulaWare/aula-backend/internal/contextKeys"
	"github.com/AulaWare/aula-backend/internal/directory"
	"github.com/AulaWare/aula-backend/internal/identity"
	"github.com/AulaWare/aula-backend/pkg/logger"
)

// AuthenticationMiddleware is the request gate: it verifies the bearer
// token, best-effort syncs the user directory and injects the identity into
// the request context.
type AuthenticationMiddleware struct {
	Verifier  identity.Verifier
	Directory *directory.Service
}

// Required rejects requests without a valid bearer token and sets the
// contextkeys.AuthIdentityKey value on the context for downstream handlers.
func (mw AuthenticationMiddleware) Required(next func(w http.ResponseWriter, r *http.Request)) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		// Anything unexpected inside the gate is a 500, never a 401
		defer func() {
			if rec := recover(); rec != nil {
				logger.Err("Panic in authentication gate:", rec)
				gecho.InternalServerError(w).WithMessage("Internal authentication error").Send()
			}
		}()

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			gecho.Unauthorized(w).WithMessage("Missing bearer token").Send()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			gecho.Unauthorized(w).WithMessage("Authorization header must be of the form 'Bearer <token>'").Send()
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			gecho.Unauthorized(w).WithMessage("Empty bearer token").Send()
			return
		}

		ctx := r.Context()
		ident, err := mw.Verifier.VerifyToken(ctx, token)
		if err != nil {
			if errors.Is(err, identity.ErrUnauthenticated) {
				gecho.Unauthorized(w).WithMessage("Invalid or expired token").Send()
				return
			}
			logger.Err("Identity verification failed:", err)
			gecho.InternalServerError(w).WithMessage("Internal authentication error").Send()
			return
		}

		// Lazy directory sync. Advisory: failures are logged, the request
		// is never blocked on them.
		result, err := mw.Directory.EnsureProfile(ctx, ident)
		if err != nil {
			logger.Err("User directory sync failed:", err)
		} else if result.SatelliteErr != nil {
			logger.Err("Role satellite insert failed:", result.SatelliteErr)
		}

		ctx = context.WithValue(ctx, contextkeys.AuthIdentityKey, ident)

		next(w, r.WithContext(ctx))
	}
}

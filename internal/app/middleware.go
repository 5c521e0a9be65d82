package app

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/unimind/unimind/internal/auth"
	"github.com/unimind/unimind/internal/config"
	"github.com/unimind/unimind/pkg/user"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Resolve the caller's identity into the request context. With a
	// configured auth secret the bearer token is the source of truth;
	// without one the X-User-Id header serves local development.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := req.Context()

			uid, err := resolveUid(deps.AuthTokenValidator, req)
			if err != nil {
				log.Debugf("rejected request: %v", err)
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			if uid != "" {
				ctx = user.WithAuthUid(ctx, uid)
				u, err := deps.UserService.GetUserByUid(ctx, uid)
				if err != nil {
					if errors.Is(err, user.ErrUserNotFound) {
						// First login: the profile does not exist yet. The
						// auth uid stays in context so provisioning can run.
						log.Debugf("no profile for uid %s yet", uid)
					} else {
						log.Errorf("failed to get user: %v", err)
						http.Error(w, err.Error(), http.StatusBadRequest)
						return
					}
				} else {
					ctx = user.WithUser(ctx, u)
				}
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}

func resolveUid(validator auth.TokenValidator, req *http.Request) (string, error) {
	if validator.Enabled() {
		header := req.Header.Get("Authorization")
		if header == "" {
			return "", nil
		}
		return validator.Subject(header)
	}
	return req.Header.Get("X-User-Id"), nil
}

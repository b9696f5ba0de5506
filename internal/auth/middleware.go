package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fintrack/fintrack/internal/apperrors"
	"github.com/fintrack/fintrack/internal/rest"
	"github.com/fintrack/fintrack/pkg/user"
	log "github.com/sirupsen/logrus"
)

// UserResolver finds the user a validated token was issued for.
type UserResolver interface {
	GetUserByUid(ctx context.Context, uid string) (user.User, error)
}

// Authenticator resolves a bearer credential to an owner identity.
type Authenticator struct {
	tokens TokenManager
	users  UserResolver
}

func NewAuthenticator(tokens TokenManager, users UserResolver) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// Authenticate returns the user a bearer token belongs to, or apperrors.ErrUnauthenticated.
func (a *Authenticator) Authenticate(ctx context.Context, bearer string) (user.User, error) {
	userUid, err := a.tokens.ValidateAccessToken(bearer)
	if err != nil {
		return user.User{}, fmt.Errorf("%w: %v", apperrors.ErrUnauthenticated, err)
	}
	u, err := a.users.GetUserByUid(ctx, userUid)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, fmt.Errorf("%w: %v", apperrors.ErrUnauthenticated, err)
		}
		return user.User{}, err
	}
	return u, nil
}

// Middleware requires an "Authorization: Bearer <token>" header and stores the resolved user in the
// request context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			rest.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Authorization header is required")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			rest.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid token format")
			return
		}

		u, err := a.Authenticate(r.Context(), tokenString)
		if err != nil {
			log.Debugf("authentication failed: %v", err)
			rest.WriteError(w, err)
			return
		}

		log.Tracef("authenticated user: %s", u.Uid)
		next.ServeHTTP(w, r.WithContext(user.WithUser(r.Context(), u)))
	})
}

package user

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
)

type contextKey string

const UserKey contextKey = "user"

// AuthUidKey carries the authenticated subject even before a profile row
// exists, so first-login provisioning can run.
const AuthUidKey contextKey = "authUid"

var ErrNoUser = errors.New("user not found")

// CurrentUid retrieves the current user's uid from the context. Returns ErrNoUser if not present.
func CurrentUid(ctx context.Context) (string, error) {
	user, ok := ctx.Value(UserKey).(User)
	if !ok {
		log.Trace("user not found in context")
		return "", ErrNoUser
	}
	return user.Uid, nil
}

func CurrentUser(ctx context.Context) (User, error) {
	user, ok := ctx.Value(UserKey).(User)
	if !ok {
		log.Trace("user not found in context")
		return User{}, ErrNoUser
	}
	return user, nil
}

func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

func WithAuthUid(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, AuthUidKey, uid)
}

// AuthUid returns the authenticated subject, falling back to the profile in
// the context when the middleware resolved one.
func AuthUid(ctx context.Context) (string, error) {
	if uid, ok := ctx.Value(AuthUidKey).(string); ok && uid != "" {
		return uid, nil
	}
	return CurrentUid(ctx)
}

package auth

import (
	"context"
	"errors"
)

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (Identity, error) {
	if id, ok := ctx.Value(ctxKey{}).(Identity); ok && id.UserID > 0 {
		return id, nil
	}
	return Identity{}, errors.New("identity not in context")
}

func Role(ctx context.Context) (string, error) {
	id, err := FromContext(ctx)
	if err != nil {
		return "", err
	}
	if id.Role == "" {
		return "", errors.New("role not in context")
	}
	return id.Role, nil
}

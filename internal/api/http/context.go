package http

import (
	"context"

	"utility-bill-splitter/internal/domain"
)

type contextKey string

const (
	userIDKey    contextKey = "user-id"
	userRoleKey  contextKey = "user-role"
	requestIDKey contextKey = "request-id"
)

// withCaller stores the authenticated caller on ctx.
func withCaller(ctx context.Context, userID int32, role domain.UserRole) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, userRoleKey, role)
}

// GetUserIDFromContext returns the authenticated caller's id.
// It returns domain.ErrUnauthorized on public routes.
func GetUserIDFromContext(ctx context.Context) (int32, error) {
	id, ok := ctx.Value(userIDKey).(int32)
	if !ok {
		return 0, domain.ErrUnauthorized
	}
	return id, nil
}

func getRoleFromContext(ctx context.Context) domain.UserRole {
	role, _ := ctx.Value(userRoleKey).(domain.UserRole)
	return role
}

func getRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

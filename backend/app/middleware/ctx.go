package middleware

import (
	"context"
)

type ctxKey int

const userIDKey ctxKey = 1

func WithUserID(ctx context.Context, id uint) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserID returns the id stored by RequireLogin or RequireUser.
func UserID(ctx context.Context) (uint, bool) {
	if v := ctx.Value(userIDKey); v != nil {
		if id, ok := v.(uint); ok && id != 0 {
			return id, true
		}
	}
	return 0, false
}

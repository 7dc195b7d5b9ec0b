package actorctx

import "context"

type ctxKey string

const keyUserID ctxKey = "user_id"

// WithUserID records the authenticated user on ctx. Set by the session
// middleware so code below the handlers can log who acted.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, keyUserID, userID)
}

func UserIDFrom(ctx context.Context) (int64, bool) {
	v, ok := ctx.Value(keyUserID).(int64)

	return v, ok && v != 0
}

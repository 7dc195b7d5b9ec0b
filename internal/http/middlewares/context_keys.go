package middlewares

// gin context keys
const (
	CtxRequestID = "request_id"
	CtxUserID    = "session.userID"
	CtxEmail     = "session.email"
)

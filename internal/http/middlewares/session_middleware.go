package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/geocoder89/bloghub/internal/actorctx"
	"github.com/geocoder89/bloghub/internal/session"
	"github.com/gin-gonic/gin"
)

// SessionResolver keeps the middleware testable without a real gate.
type SessionResolver interface {
	Resolve(ctx context.Context, raw string) (session.Session, error)
}

// RequireSession runs the route policy before any handler. Anonymous
// requests to protected routes are redirected to the login page.
func RequireSession(resolver SessionResolver, policy session.Policy, cookieName string, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if policy.Classify(c.Request.URL.Path) == session.AccessPublic {
			c.Next()
			return
		}

		raw, _ := c.Cookie(cookieName)

		sess, err := resolver.Resolve(c.Request.Context(), raw)
		if err != nil {
			if !errors.Is(err, session.ErrSessionNotFound) {
				log.ErrorContext(c.Request.Context(), "session lookup failed", "err", err, "request_id", c.GetString(CtxRequestID))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": gin.H{
						"code":    "internal_error",
						"message": "Could not verify session",
					},
				})
				return
			}

			c.Redirect(http.StatusFound, policy.LoginPath)
			c.Abort()
			return
		}

		// Stash identity on both contexts
		c.Set(CtxUserID, sess.UserID)
		c.Set(CtxEmail, sess.Email)
		c.Request = c.Request.WithContext(actorctx.WithUserID(c.Request.Context(), sess.UserID))

		c.Next()
	}
}

func UserIDFromContext(c *gin.Context) (int64, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func EmailFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(CtxEmail)
	if !ok {
		return "", false
	}
	email, ok := v.(string)
	return email, ok
}

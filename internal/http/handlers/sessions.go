package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/geocoder89/bloghub/internal/session"
	"github.com/gin-gonic/gin"
)

type Authenticator interface {
	Authenticate(ctx context.Context, c session.Credentials) (session.Token, error)
	Invalidate(ctx context.Context, raw string) error
}

// LoginObserver is satisfied by *observability.Prom.
type LoginObserver interface {
	ObserveLogin(result string)
	ObserveLogout()
}

type SessionHandler struct {
	gate       Authenticator
	policy     session.Policy
	cookieName string
	secure     bool
	metrics    LoginObserver
}

func NewSessionHandler(gate Authenticator, policy session.Policy, cookieName string, secure bool, metrics LoginObserver) *SessionHandler {
	return &SessionHandler{
		gate:       gate,
		policy:     policy,
		cookieName: cookieName,
		secure:     secure,
		metrics:    metrics,
	}
}

func (h *SessionHandler) LoginPage(ctx *gin.Context) {
	_, failed := ctx.GetQuery("error")
	_, loggedOut := ctx.GetQuery("logout")

	ctx.HTML(http.StatusOK, "login.html", gin.H{
		"Failed":    failed,
		"LoggedOut": loggedOut,
	})
}

func (h *SessionHandler) SignupPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "signup.html", nil)
}

// Login reads the login form. Both outcomes are redirects: the article list
// on success, the login page with an error flag otherwise.
func (h *SessionHandler) Login(ctx *gin.Context) {
	var creds session.Credentials

	if err := ctx.ShouldBind(&creds); err != nil {
		h.observeLogin("invalid")
		ctx.Redirect(http.StatusFound, h.policy.LoginPath+"?error")
		return
	}

	cctx, cancel := requestContext(ctx)
	defer cancel()

	tok, err := h.gate.Authenticate(cctx, creds)
	if err != nil {
		if errors.Is(err, session.ErrAuthentication) {
			h.observeLogin("rejected")
			ctx.Redirect(http.StatusFound, h.policy.LoginPath+"?error")
			return
		}

		h.observeLogin("error")
		_ = ctx.Error(err)
		RespondInternal(ctx, "Could not create session")
		return
	}

	h.observeLogin("success")
	h.setSessionCookie(ctx, tok.Value, tok.ExpiresAt)
	ctx.Redirect(http.StatusFound, h.policy.DefaultSuccessPath)
}

// Logout destroys the server-side session before clearing the cookie, so a
// copied cookie stops working too.
func (h *SessionHandler) Logout(ctx *gin.Context) {
	raw, _ := ctx.Cookie(h.cookieName)

	cctx, cancel := requestContext(ctx)
	defer cancel()

	if err := h.gate.Invalidate(cctx, raw); err != nil {
		_ = ctx.Error(err)
		RespondInternal(ctx, "Could not end session")
		return
	}

	if h.metrics != nil {
		h.metrics.ObserveLogout()
	}

	h.clearSessionCookie(ctx)
	ctx.Redirect(http.StatusFound, h.policy.LogoutSuccessPath)
}

func (h *SessionHandler) observeLogin(result string) {
	if h.metrics != nil {
		h.metrics.ObserveLogin(result)
	}
}

func (h *SessionHandler) setSessionCookie(ctx *gin.Context, raw string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())

	// Lax so the redirect after login still carries the cookie.
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(h.cookieName, raw, maxAge, "/", "", h.secure, true)
}

func (h *SessionHandler) clearSessionCookie(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(h.cookieName, "", -1, "/", "", h.secure, true)
}

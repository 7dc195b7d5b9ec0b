package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/geocoder89/bloghub/internal/domain/user"
	"github.com/gin-gonic/gin"
)

type UserRegistrar interface {
	Register(ctx context.Context, req user.RegisterUserRequest) (int64, error)
}

type UsersHandler struct {
	users     UserRegistrar
	loginPath string
}

func NewUsersHandler(users UserRegistrar, loginPath string) *UsersHandler {
	return &UsersHandler{users: users, loginPath: loginPath}
}

// Register accepts JSON or the signup form. JSON callers get the new id,
// browsers are sent to the login page.
func (h *UsersHandler) Register(ctx *gin.Context) {
	var req user.RegisterUserRequest

	if !BindBody(ctx, &req) {
		return
	}

	cctx, cancel := requestContext(ctx)
	defer cancel()

	id, err := h.users.Register(cctx, req)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			RespondConflict(ctx, "email_taken", "Email is already in use.")
			return
		}

		_ = ctx.Error(err)
		RespondInternal(ctx, "Could not create user")
		return
	}

	switch ctx.ContentType() {
	case gin.MIMEPOSTForm, gin.MIMEMultipartPOSTForm:
		ctx.Redirect(http.StatusFound, h.loginPath)
	default:
		ctx.JSON(http.StatusOK, gin.H{"id": id})
	}
}

package handlers

import (
	"net/http"

	"github.com/geocoder89/bloghub/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type PagesHandler struct {
	articles ArticlesService
}

func NewPagesHandler(articles ArticlesService) *PagesHandler {
	return &PagesHandler{articles: articles}
}

func (h *PagesHandler) Articles(ctx *gin.Context) {
	cctx, cancel := requestContext(ctx)
	defer cancel()

	items, err := h.articles.List(cctx)
	if err != nil {
		_ = ctx.Error(err)
		ctx.String(http.StatusInternalServerError, "Could not list articles")
		return
	}

	email, _ := middlewares.EmailFromContext(ctx)

	ctx.HTML(http.StatusOK, "articles.html", gin.H{
		"Articles": items,
		"Email":    email,
	})
}

func (h *PagesHandler) NewArticle(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "article_form.html", nil)
}

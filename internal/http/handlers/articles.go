package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/geocoder89/bloghub/internal/domain/article"
	"github.com/gin-gonic/gin"
)

const storeTimeout = 3 * time.Second

type ArticlesService interface {
	Create(ctx context.Context, req article.CreateArticleRequest) (article.Article, error)
	List(ctx context.Context) ([]article.Article, error)
	GetByID(ctx context.Context, id int64) (article.Article, error)
	Update(ctx context.Context, id int64, req article.UpdateArticleRequest) (article.Article, error)
	DeleteByID(ctx context.Context, id int64) error
}

type ArticlesHandler struct {
	articles ArticlesService
}

func NewArticlesHandler(articles ArticlesService) *ArticlesHandler {
	return &ArticlesHandler{articles: articles}
}

// requestContext bounds store calls while keeping the request's span and
// cancellation.
func requestContext(ctx *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx.Request.Context(), storeTimeout)
}

func parseID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		RespondError(ctx, http.StatusBadRequest, "invalid_id", "Article id must be an integer", gin.H{"id": ctx.Param("id")})
		return 0, false
	}
	return id, true
}

func (h *ArticlesHandler) CreateArticle(ctx *gin.Context) {
	var req article.CreateArticleRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := requestContext(ctx)
	defer cancel()

	a, err := h.articles.Create(cctx, req)
	if err != nil {
		h.respondArticleError(ctx, err, "Could not create article")
		return
	}

	ctx.JSON(http.StatusCreated, a)
}

func (h *ArticlesHandler) ListArticles(ctx *gin.Context) {
	cctx, cancel := requestContext(ctx)
	defer cancel()

	items, err := h.articles.List(cctx)
	if err != nil {
		_ = ctx.Error(err)
		RespondInternal(ctx, "Could not list articles")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, items)
}

func (h *ArticlesHandler) GetArticleByID(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	cctx, cancel := requestContext(ctx)
	defer cancel()

	a, err := h.articles.GetByID(cctx, id)
	if err != nil {
		h.respondArticleError(ctx, err, "Could not fetch article")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, a)
}

func (h *ArticlesHandler) UpdateArticle(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req article.UpdateArticleRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := requestContext(ctx)
	defer cancel()

	a, err := h.articles.Update(cctx, id, req)
	if err != nil {
		h.respondArticleError(ctx, err, "Could not update article")
		return
	}

	ctx.JSON(http.StatusOK, a)
}

// DeleteArticle answers 200 with an empty body whether or not the article
// existed.
func (h *ArticlesHandler) DeleteArticle(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	cctx, cancel := requestContext(ctx)
	defer cancel()

	if err := h.articles.DeleteByID(cctx, id); err != nil {
		_ = ctx.Error(err)
		RespondInternal(ctx, "Could not delete article")
		return
	}

	ctx.Status(http.StatusOK)
}

func (h *ArticlesHandler) respondArticleError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, article.ErrNotFound):
		RespondNotFound(ctx, "Article not found")
	case errors.Is(err, article.ErrValidation):
		RespondBadRequest(ctx, "Invalid article", gin.H{"reason": err.Error()})
	default:
		_ = ctx.Error(err)
		RespondInternal(ctx, fallback)
	}
}

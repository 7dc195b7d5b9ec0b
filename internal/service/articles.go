package service

import (
	"context"
	"fmt"

	"github.com/geocoder89/bloghub/internal/domain/article"
	"github.com/geocoder89/bloghub/internal/observability"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ArticleStore is the persistence boundary for articles. Implementations
// own the timestamps: created_at on insert, updated_at on every write.
type ArticleStore interface {
	Create(ctx context.Context, req article.CreateArticleRequest) (article.Article, error)
	List(ctx context.Context) ([]article.Article, error)
	GetByID(ctx context.Context, id int64) (article.Article, error)
	Update(ctx context.Context, id int64, req article.UpdateArticleRequest) (article.Article, error)
	Delete(ctx context.Context, id int64) error
}

type ArticleService struct {
	store ArticleStore
}

func NewArticleService(store ArticleStore) *ArticleService {
	return &ArticleService{store: store}
}

func (s *ArticleService) Create(ctx context.Context, req article.CreateArticleRequest) (article.Article, error) {
	ctx, span := observability.StartSpan(ctx, "articles.create")
	defer span.End()

	if err := req.Validate(); err != nil {
		return article.Article{}, err
	}

	a, err := s.store.Create(ctx, req)
	if err != nil {
		return article.Article{}, fmt.Errorf("create article: %w", err)
	}
	return a, nil
}

// List returns every article, never nil.
func (s *ArticleService) List(ctx context.Context) ([]article.Article, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	if items == nil {
		items = []article.Article{}
	}
	return items, nil
}

func (s *ArticleService) GetByID(ctx context.Context, id int64) (article.Article, error) {
	return s.store.GetByID(ctx, id)
}

// Update is a full replace of title and content. Concurrent updates to the
// same id are last-writer-wins.
func (s *ArticleService) Update(ctx context.Context, id int64, req article.UpdateArticleRequest) (article.Article, error) {
	ctx, span := observability.StartSpan(ctx, "articles.update", trace.WithAttributes(attribute.Int64("article.id", id)))
	defer span.End()

	if err := req.Validate(); err != nil {
		return article.Article{}, err
	}
	return s.store.Update(ctx, id, req)
}

// DeleteByID succeeds whether or not the article existed.
func (s *ArticleService) DeleteByID(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete article %d: %w", id, err)
	}
	return nil
}

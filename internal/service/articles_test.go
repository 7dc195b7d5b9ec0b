package service

import (
	"context"
	"errors"
	"testing"

	"github.com/geocoder89/bloghub/internal/domain/article"
	"github.com/geocoder89/bloghub/internal/repo/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func createReq(title, content string) article.CreateArticleRequest {
	return article.CreateArticleRequest{Title: strPtr(title), Content: strPtr(content)}
}

func updateReq(title, content string) article.UpdateArticleRequest {
	return article.UpdateArticleRequest{Title: strPtr(title), Content: strPtr(content)}
}

func TestArticleService_CreateThenGet(t *testing.T) {
	ctx := context.Background()
	svc := NewArticleService(memory.NewArticlesRepo())

	created, err := svc.Create(ctx, createReq("Title_Test", "Content_Test"))
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Title_Test", got.Title)
	assert.Equal(t, "Content_Test", got.Content)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestArticleService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewArticlesRepo()
	svc := NewArticleService(repo)

	_, err := svc.Create(ctx, article.CreateArticleRequest{Title: strPtr("only title")})
	assert.ErrorIs(t, err, article.ErrValidation)

	_, err = svc.Create(ctx, article.CreateArticleRequest{Content: strPtr("only content")})
	assert.ErrorIs(t, err, article.ErrValidation)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "no state may change on a validation error")
}

func TestArticleService_UpdateReplacesAndAdvancesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	svc := NewArticleService(memory.NewArticlesRepo())

	created, err := svc.Create(ctx, createReq("title", "content"))
	require.NoError(t, err)

	before, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, updateReq("modifiedTitle", "modifiedContent"))
	require.NoError(t, err)
	assert.Equal(t, "modifiedTitle", updated.Title)

	after, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "modifiedTitle", after.Title)
	assert.Equal(t, "modifiedContent", after.Content)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt), "updatedAt must strictly increase")
	assert.True(t, after.CreatedAt.Equal(before.CreatedAt), "createdAt must not change")
}

func TestArticleService_UpdateMissing(t *testing.T) {
	svc := NewArticleService(memory.NewArticlesRepo())

	_, err := svc.Update(context.Background(), 404, updateReq("t", "c"))
	assert.ErrorIs(t, err, article.ErrNotFound)
}

func TestArticleService_UpdateRequiresBothFields(t *testing.T) {
	ctx := context.Background()
	svc := NewArticleService(memory.NewArticlesRepo())

	created, err := svc.Create(ctx, createReq("t", "c"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, article.UpdateArticleRequest{Title: strPtr("only title")})
	assert.ErrorIs(t, err, article.ErrValidation)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "c", got.Content)
}

func TestArticleService_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := NewArticleService(memory.NewArticlesRepo())

	created, err := svc.Create(ctx, createReq("t", "c"))
	require.NoError(t, err)

	for _, id := range []int64{created.ID, created.ID, 12345} {
		require.NoError(t, svc.DeleteByID(ctx, id))

		_, err := svc.GetByID(ctx, id)
		assert.ErrorIs(t, err, article.ErrNotFound)
	}
}

func TestArticleService_ListReturnsEveryArticle(t *testing.T) {
	ctx := context.Background()
	svc := NewArticleService(memory.NewArticlesRepo())

	empty, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Len(t, empty, 0)

	const n = 5
	for i := 0; i < n; i++ {
		_, err := svc.Create(ctx, createReq("t", "c"))
		require.NoError(t, err)
	}

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, n)

	for _, a := range all {
		got, err := svc.GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, a.ID, got.ID)
	}
}

type failingStore struct {
	ArticleStore
	err error
}

func (f failingStore) List(context.Context) ([]article.Article, error) { return nil, f.err }

func (f failingStore) Delete(context.Context, int64) error { return f.err }

func TestArticleService_WrapsStoreErrors(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewArticleService(failingStore{err: boom})

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, boom)

	err = svc.DeleteByID(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
}

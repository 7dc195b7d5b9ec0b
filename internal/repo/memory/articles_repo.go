package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/geocoder89/bloghub/internal/domain/article"
)

// ArticlesRepo keeps articles in a map. Used for local runs without
// postgres and in tests.
type ArticlesRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]article.Article
	now    func() time.Time
}

func NewArticlesRepo() *ArticlesRepo {
	return &ArticlesRepo{
		items: make(map[int64]article.Article),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (r *ArticlesRepo) Create(_ context.Context, req article.CreateArticleRequest) (article.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a := article.NewFromCreateRequest(req, r.now())
	r.nextID++
	a.ID = r.nextID
	r.items[a.ID] = a

	return a, nil
}

func (r *ArticlesRepo) List(_ context.Context) ([]article.Article, error) {
	r.mu.RLock()
	out := make([]article.Article, 0, len(r.items))
	for _, a := range r.items {
		out = append(out, a)
	}
	r.mu.RUnlock()

	// same order the postgres store uses
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *ArticlesRepo) GetByID(_ context.Context, id int64) (article.Article, error) {
	r.mu.RLock()
	a, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return article.Article{}, article.ErrNotFound
	}
	return a, nil
}

func (r *ArticlesRepo) Update(_ context.Context, id int64, req article.UpdateArticleRequest) (article.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.items[id]
	if !ok {
		return article.Article{}, article.ErrNotFound
	}

	a = a.Apply(req, r.now())
	r.items[id] = a

	return a, nil
}

func (r *ArticlesRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	delete(r.items, id)
	r.mu.Unlock()

	return nil
}

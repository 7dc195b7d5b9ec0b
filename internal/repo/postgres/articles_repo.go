package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/geocoder89/bloghub/internal/domain/article"
	"github.com/geocoder89/bloghub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ArticlesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
	now  func() time.Time
}

// constructor function

func NewArticlesRepo(pool *pgxpool.Pool, prom *observability.Prom) *ArticlesRepo {
	return &ArticlesRepo{
		pool: pool,
		prom: prom,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *ArticlesRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

// Create inserts the article; created_at and updated_at are set here, in the
// write path, and never by the caller.
func (r *ArticlesRepo) Create(ctx context.Context, req article.CreateArticleRequest) (article.Article, error) {
	a := article.NewFromCreateRequest(req, r.now())

	err := r.observe("articles.create", func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO articles (title, content, created_at, updated_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at, updated_at`,
			a.Title, a.Content, a.CreatedAt, a.UpdatedAt,
		).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	})

	if err != nil {
		return article.Article{}, err
	}

	return a, nil
}

func (r *ArticlesRepo) List(ctx context.Context) ([]article.Article, error) {
	output := make([]article.Article, 0)

	err := r.observe("articles.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, title, content, created_at, updated_at
			FROM articles
			ORDER BY id ASC`)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			var a article.Article

			err = rows.Scan(&a.ID, &a.Title, &a.Content, &a.CreatedAt, &a.UpdatedAt)

			if err != nil {
				return err
			}

			output = append(output, a)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return output, nil
}

func (r *ArticlesRepo) GetByID(ctx context.Context, id int64) (article.Article, error) {
	var a article.Article

	err := r.observe("articles.get_by_id", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, title, content, created_at, updated_at FROM articles WHERE id = $1`,
			id,
		).Scan(&a.ID, &a.Title, &a.Content, &a.CreatedAt, &a.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return article.Article{}, article.ErrNotFound
		}
		return article.Article{}, err
	}

	return a, nil
}

// Update replaces title and content. updated_at moves forward by at least a
// microsecond so two updates inside one clock tick still order correctly.
func (r *ArticlesRepo) Update(ctx context.Context, id int64, req article.UpdateArticleRequest) (article.Article, error) {
	var a article.Article

	err := r.observe("articles.update", func() error {
		return r.pool.QueryRow(
			ctx,
			`UPDATE articles
				SET title = $2,
						content = $3,
						updated_at = GREATEST($4::timestamptz, updated_at + INTERVAL '1 microsecond')
			WHERE id = $1
			RETURNING id, title, content, created_at, updated_at`,
			id,
			*req.Title,
			*req.Content,
			r.now(),
		).Scan(
			&a.ID,
			&a.Title,
			&a.Content,
			&a.CreatedAt,
			&a.UpdatedAt,
		)
	})

	if err != nil {
		// if there are no rows matching the id
		if errors.Is(err, pgx.ErrNoRows) {
			return article.Article{}, article.ErrNotFound
		}
		return article.Article{}, err
	}

	return a, nil
}

// Delete is idempotent: removing a missing id is not an error.
func (r *ArticlesRepo) Delete(ctx context.Context, id int64) error {
	return r.observe("articles.delete", func() error {
		_, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
		return err
	})
}

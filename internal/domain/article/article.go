package article

import (
	"errors"
	"fmt"
	"time"
)

type Article struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var (
	ErrNotFound   = errors.New("article not found")
	ErrValidation = errors.New("invalid article")
)

// Pointers so that a missing field can be told apart from an empty one.
type CreateArticleRequest struct {
	Title   *string `json:"title" form:"title" binding:"required"`
	Content *string `json:"content" form:"content" binding:"required"`
}

// a full replace, both fields must be resupplied
type UpdateArticleRequest struct {
	Title   *string `json:"title" form:"title" binding:"required"`
	Content *string `json:"content" form:"content" binding:"required"`
}

func (r CreateArticleRequest) Validate() error {
	return requireFields(r.Title, r.Content)
}

func (r UpdateArticleRequest) Validate() error {
	return requireFields(r.Title, r.Content)
}

func requireFields(title, content *string) error {
	if title == nil {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if content == nil {
		return fmt.Errorf("%w: content is required", ErrValidation)
	}
	return nil
}

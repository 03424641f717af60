package repository

import (
	"context"

	"blog-server/internal/domain"
)

// ArticleRepository exposes persistence operations for Article aggregates.
// Get and List resolve the author; comments are attached at the service level.
type ArticleRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, article *domain.Article) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Article, error)
	List(ctx context.Context, offset, limit int) ([]domain.Article, error)
	Update(ctx context.Context, id int64, title, content string) error
	Delete(ctx context.Context, id int64) error
}

// CommentRepository manages comments attached to articles.
type CommentRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, comment *domain.Comment) (int64, error)
	ListByArticle(ctx context.Context, articleID int64) ([]domain.Comment, error)
}

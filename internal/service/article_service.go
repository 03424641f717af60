package service

import (
	"context"
	"fmt"

	"blog-server/internal/domain"
	"blog-server/internal/repository"
)

const (
	// DefaultListLimit is applied when the caller supplies no limit.
	DefaultListLimit = 100
	// MaxListLimit caps a single page; the store is never asked for an unbounded page.
	MaxListLimit = 100
)

// ArticleService coordinates article and comment operations, including
// the ownership checks on mutations.
type ArticleService interface {
	List(ctx context.Context, skip, limit int) ([]domain.Article, error)
	Get(ctx context.Context, id int64) (*domain.Article, error)
	Create(ctx context.Context, title, content string, authorID int64) (*domain.Article, error)
	Update(ctx context.Context, id int64, title, content string, callerID int64) (*domain.Article, error)
	Delete(ctx context.Context, id int64, callerID int64) (*domain.Article, error)
	AddComment(ctx context.Context, articleID int64, content string, authorID int64) (*domain.Comment, error)
}

type articleService struct {
	articles repository.ArticleRepository
	comments repository.CommentRepository
	users    repository.UserRepository
}

func NewArticleService(articles repository.ArticleRepository, comments repository.CommentRepository, users repository.UserRepository) ArticleService {
	return &articleService{
		articles: articles,
		comments: comments,
		users:    users,
	}
}

func (s *articleService) List(ctx context.Context, skip, limit int) ([]domain.Article, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > MaxListLimit {
		limit = DefaultListLimit
	}

	articles, err := s.articles.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}

	for i := range articles {
		comments, err := s.comments.ListByArticle(ctx, articles[i].ID)
		if err != nil {
			return nil, err
		}
		articles[i].Comments = comments
	}

	return articles, nil
}

func (s *articleService) Get(ctx context.Context, id int64) (*domain.Article, error) {
	article, err := s.articles.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByArticle(ctx, id)
	if err != nil {
		return nil, err
	}
	article.Comments = comments
	return article, nil
}

func (s *articleService) Create(ctx context.Context, title, content string, authorID int64) (*domain.Article, error) {
	article := &domain.Article{
		Title:    title,
		Content:  content,
		AuthorID: authorID,
	}
	if _, err := s.articles.Create(ctx, article); err != nil {
		return nil, err
	}
	return s.Get(ctx, article.ID)
}

func (s *articleService) Update(ctx context.Context, id int64, title, content string, callerID int64) (*domain.Article, error) {
	article, err := s.articles.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != callerID {
		return nil, fmt.Errorf("update article %d: %w", id, domain.ErrForbidden)
	}

	if err := s.articles.Update(ctx, id, title, content); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *articleService) Delete(ctx context.Context, id int64, callerID int64) (*domain.Article, error) {
	article, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != callerID {
		return nil, fmt.Errorf("delete article %d: %w", id, domain.ErrForbidden)
	}

	if err := s.articles.Delete(ctx, id); err != nil {
		return nil, err
	}
	return article, nil
}

func (s *articleService) AddComment(ctx context.Context, articleID int64, content string, authorID int64) (*domain.Comment, error) {
	article, err := s.articles.Get(ctx, articleID)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		Content:   content,
		AuthorID:  authorID,
		ArticleID: article.ID,
	}
	if _, err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	comment.Author = sanitizeUser(author)
	return comment, nil
}

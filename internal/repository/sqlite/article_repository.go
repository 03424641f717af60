package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"blog-server/internal/domain"
	"blog-server/internal/repository"
)

const createArticlesTable = `
CREATE TABLE IF NOT EXISTS articles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	author_id INTEGER NOT NULL REFERENCES users(id),
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

const articleColumns = `
a.id, a.title, a.content, a.author_id, a.created_at, a.updated_at,
u.id, u.username, u.email, u.created_at`

type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createArticlesTable); err != nil {
		return fmt.Errorf("create articles table: %w", err)
	}
	return nil
}

func (r *ArticleRepository) Create(ctx context.Context, article *domain.Article) (int64, error) {
	now := time.Now().UTC()
	article.CreatedAt = now
	article.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO articles (title, content, author_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`,
		article.Title,
		article.Content,
		article.AuthorID,
		article.CreatedAt,
		article.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert article: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("article last insert id: %w", err)
	}
	article.ID = id
	return id, nil
}

func (r *ArticleRepository) Get(ctx context.Context, id int64) (*domain.Article, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+articleColumns+`
FROM articles a
JOIN users u ON u.id = a.author_id
WHERE a.id = ?`,
		id,
	)
	return scanArticle(row)
}

func (r *ArticleRepository) List(ctx context.Context, offset, limit int) ([]domain.Article, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+articleColumns+`
FROM articles a
JOIN users u ON u.id = a.author_id
ORDER BY a.id ASC
LIMIT ? OFFSET ?`,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	articles := []domain.Article{}
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *article)
	}

	return articles, rows.Err()
}

// Update overwrites title and content and refreshes updated_at.
// Author and created_at are immutable.
func (r *ArticleRepository) Update(ctx context.Context, id int64, title, content string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE articles
SET title=?, content=?, updated_at=?
WHERE id=?`,
		title,
		content,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("article update rows affected: %w", err)
	}
	if aff == 0 {
		return fmt.Errorf("article: %w", domain.ErrNotFound)
	}
	return nil
}

// Delete removes the article and all of its comments in one transaction.
func (r *ArticleRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE article_id=?`, id); err != nil {
		return fmt.Errorf("delete article comments: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM articles WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("article delete rows affected: %w", err)
	}
	if aff == 0 {
		return fmt.Errorf("article: %w", domain.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit article delete: %w", err)
	}
	return nil
}

func scanArticle(scanner interface {
	Scan(dest ...any) error
}) (*domain.Article, error) {
	var (
		article domain.Article
		author  domain.User
	)

	if err := scanner.Scan(
		&article.ID,
		&article.Title,
		&article.Content,
		&article.AuthorID,
		&article.CreatedAt,
		&article.UpdatedAt,
		&author.ID,
		&author.Username,
		&author.Email,
		&author.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("article: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scan article: %w", err)
	}

	article.Author = &author
	return &article, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"blog-server/internal/domain"
	"blog-server/internal/repository"
)

const createCommentsTable = `
CREATE TABLE IF NOT EXISTS comments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	content TEXT NOT NULL,
	author_id INTEGER NOT NULL REFERENCES users(id),
	article_id INTEGER NOT NULL REFERENCES articles(id),
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_comments_article_id ON comments(article_id);
`

type CommentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) repository.CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createCommentsTable); err != nil {
		return fmt.Errorf("create comments table: %w", err)
	}
	return nil
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) (int64, error) {
	comment.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO comments (content, author_id, article_id, created_at)
VALUES (?, ?, ?, ?)`,
		comment.Content,
		comment.AuthorID,
		comment.ArticleID,
		comment.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert comment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("comment last insert id: %w", err)
	}
	comment.ID = id
	return id, nil
}

func (r *CommentRepository) ListByArticle(ctx context.Context, articleID int64) ([]domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT c.id, c.content, c.author_id, c.article_id, c.created_at,
	u.id, u.username, u.email, u.created_at
FROM comments c
JOIN users u ON u.id = c.author_id
WHERE c.article_id = ?
ORDER BY c.id ASC`,
		articleID,
	)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		var (
			comment domain.Comment
			author  domain.User
		)
		if err := rows.Scan(
			&comment.ID,
			&comment.Content,
			&comment.AuthorID,
			&comment.ArticleID,
			&comment.CreatedAt,
			&author.ID,
			&author.Username,
			&author.Email,
			&author.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comment.Author = &author
		comments = append(comments, comment)
	}

	return comments, rows.Err()
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"blog-server/internal/domain"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	if err := NewUserRepository(db).Init(ctx); err != nil {
		t.Fatalf("init users: %v", err)
	}
	if err := NewArticleRepository(db).Init(ctx); err != nil {
		t.Fatalf("init articles: %v", err)
	}
	if err := NewCommentRepository(db).Init(ctx); err != nil {
		t.Fatalf("init comments: %v", err)
	}
	return db
}

func mustCreateUser(t *testing.T, db *sql.DB, username, email string) *domain.User {
	t.Helper()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: "x",
	}
	if _, err := NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func mustCreateArticle(t *testing.T, db *sql.DB, title string, authorID int64) *domain.Article {
	t.Helper()
	article := &domain.Article{
		Title:    title,
		Content:  "content of " + title,
		AuthorID: authorID,
	}
	if _, err := NewArticleRepository(db).Create(context.Background(), article); err != nil {
		t.Fatalf("create article %s: %v", title, err)
	}
	return article
}

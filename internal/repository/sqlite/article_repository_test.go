package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"blog-server/internal/domain"
)

func TestArticleCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewArticleRepository(db)

	author := mustCreateUser(t, db, "alice", "a@x.com")
	article := mustCreateArticle(t, db, "T", author.ID)

	got, err := repo.Get(context.Background(), article.ID)
	if err != nil {
		t.Fatalf("get article: %v", err)
	}
	if got.Title != "T" || got.Content != "content of T" {
		t.Fatalf("unexpected article: %+v", got)
	}
	if got.Author == nil || got.Author.Username != "alice" {
		t.Fatalf("expected resolved author, got %+v", got.Author)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Fatalf("expected server-assigned timestamps")
	}
}

func TestArticleListPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewArticleRepository(db)

	author := mustCreateUser(t, db, "alice", "a@x.com")
	for i := 0; i < 5; i++ {
		mustCreateArticle(t, db, "T", author.ID)
	}

	page, err := repo.List(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(page))
	}
	// insertion order
	if page[0].ID >= page[1].ID {
		t.Fatalf("expected ascending ids, got %d then %d", page[0].ID, page[1].ID)
	}
	if page[0].ID != 2 {
		t.Fatalf("expected offset to skip the first article, got id %d", page[0].ID)
	}
}

func TestArticleUpdate(t *testing.T) {
	db := newTestDB(t)
	repo := NewArticleRepository(db)

	author := mustCreateUser(t, db, "alice", "a@x.com")
	article := mustCreateArticle(t, db, "T", author.ID)

	time.Sleep(10 * time.Millisecond)
	if err := repo.Update(context.Background(), article.ID, "T2", "C2"); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.Get(context.Background(), article.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "T2" || got.Content != "C2" {
		t.Fatalf("update not applied: %+v", got)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Fatalf("expected updated_at to be refreshed")
	}
	if got.AuthorID != author.ID {
		t.Fatalf("author must be immutable")
	}
	if !got.CreatedAt.Equal(article.CreatedAt) {
		t.Fatalf("created_at must be immutable")
	}
}

func TestArticleUpdateMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewArticleRepository(db)

	err := repo.Update(context.Background(), 99, "T", "C")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestArticleDeleteCascadesComments(t *testing.T) {
	db := newTestDB(t)
	articles := NewArticleRepository(db)
	comments := NewCommentRepository(db)

	author := mustCreateUser(t, db, "alice", "a@x.com")
	article := mustCreateArticle(t, db, "T", author.ID)
	keep := mustCreateArticle(t, db, "K", author.ID)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := comments.Create(ctx, &domain.Comment{
			Content:   "c",
			AuthorID:  author.ID,
			ArticleID: article.ID,
		}); err != nil {
			t.Fatalf("create comment: %v", err)
		}
	}
	if _, err := comments.Create(ctx, &domain.Comment{
		Content:   "keep",
		AuthorID:  author.ID,
		ArticleID: keep.ID,
	}); err != nil {
		t.Fatalf("create comment: %v", err)
	}

	if err := articles.Delete(ctx, article.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := articles.Get(ctx, article.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	orphans, err := comments.ListByArticle(ctx, article.ID)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(orphans) != 0 {
		t.Fatalf("expected no orphaned comments, got %d", len(orphans))
	}

	// comments on other articles are untouched
	kept, err := comments.ListByArticle(ctx, keep.ID)
	if err != nil {
		t.Fatalf("list kept comments: %v", err)
	}
	if len(kept) != 1 {
		t.Fatalf("expected 1 kept comment, got %d", len(kept))
	}
}

func TestArticleDeleteMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewArticleRepository(db)

	if err := repo.Delete(context.Background(), 99); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCommentCreateAndList(t *testing.T) {
	db := newTestDB(t)
	comments := NewCommentRepository(db)

	author := mustCreateUser(t, db, "alice", "a@x.com")
	commenter := mustCreateUser(t, db, "bob", "b@x.com")
	article := mustCreateArticle(t, db, "T", author.ID)

	ctx := context.Background()
	comment := &domain.Comment{
		Content:   "nice post",
		AuthorID:  commenter.ID,
		ArticleID: article.ID,
	}
	if _, err := comments.Create(ctx, comment); err != nil {
		t.Fatalf("create comment: %v", err)
	}

	list, err := comments.ListByArticle(ctx, article.ID)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(list))
	}
	if list[0].Content != "nice post" {
		t.Fatalf("unexpected content: %s", list[0].Content)
	}
	if list[0].Author == nil || list[0].Author.Username != "bob" {
		t.Fatalf("expected resolved comment author, got %+v", list[0].Author)
	}
}

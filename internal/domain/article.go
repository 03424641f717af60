package domain

import "time"

// Article is a blog post authored by a user.
type Article struct {
	ID        int64
	Title     string
	Content   string
	AuthorID  int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Author    *User
	Comments  []Comment
}

// Comment is a reader response attached to an article.
type Comment struct {
	ID        int64
	Content   string
	AuthorID  int64
	ArticleID int64
	CreatedAt time.Time
	Author    *User
}

package models

import "time"

// Post represents a forum post. Every post has exactly one owner.
type Post struct {
	ID        int64
	UserID    int64
	Username  string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Comment represents a comment on a post. Comments are append-only.
type Comment struct {
	ID        int64
	PostID    int64
	UserID    int64
	Username  string
	Content   string
	CreatedAt time.Time
}

// FileRecord represents an uploaded file owned by a user
type FileRecord struct {
	ID        int64
	UserID    int64
	Filename  string
	CreatedAt time.Time
}

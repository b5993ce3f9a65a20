package repository

import (
	"database/sql"
	"fmt"
	"time"

	"goboard/internal/database"
	"goboard/internal/models"
)

// PostRepository handles database operations for posts and comments
type PostRepository struct {
	db *database.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *database.DB) *PostRepository {
	return &PostRepository{db: db}
}

// CreatePost inserts a new post owned by the given user
func (r *PostRepository) CreatePost(userID int64, title, content string) (*models.Post, error) {
	query := `
		INSERT INTO posts (user_id, title, content)
		VALUES (?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, userID, title, content)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return &models.Post{
		ID:        id,
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil
}

// GetPostByID retrieves a post together with its author's username
func (r *PostRepository) GetPostByID(id int64) (*models.Post, error) {
	query := `
		SELECT p.id, p.user_id, u.username, p.title, p.content, p.created_at, p.updated_at
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = ?
	`
	post := &models.Post{}
	err := r.db.QueryRow(query, id).Scan(
		&post.ID,
		&post.UserID,
		&post.Username,
		&post.Title,
		&post.Content,
		&post.CreatedAt,
		&post.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

// ListPosts returns all posts in creation order, oldest first
func (r *PostRepository) ListPosts() ([]models.Post, error) {
	query := `
		SELECT p.id, p.user_id, u.username, p.title, p.content, p.created_at, p.updated_at
		FROM posts p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at ASC, p.id ASC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(
			&post.ID,
			&post.UserID,
			&post.Username,
			&post.Title,
			&post.Content,
			&post.CreatedAt,
			&post.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read posts: %w", err)
	}

	return posts, nil
}

// DeletePost removes a post; comments cascade at the storage layer
func (r *PostRepository) DeletePost(id int64) error {
	query := "DELETE FROM posts WHERE id = ?"
	if _, err := r.db.Exec(query, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

// CreateComment appends a comment to a post
func (r *PostRepository) CreateComment(postID, userID int64, content string) (*models.Comment, error) {
	query := `
		INSERT INTO comments (post_id, user_id, content)
		VALUES (?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, postID, userID, content)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return &models.Comment{
		ID:        id,
		PostID:    postID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now(),
	}, nil
}

// ListCommentsByPost returns a post's comments in creation order
func (r *PostRepository) ListCommentsByPost(postID int64) ([]models.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.user_id, u.username, c.content, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = ?
		ORDER BY c.created_at ASC, c.id ASC
	`
	rows, err := r.db.Query(query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var comment models.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.UserID,
			&comment.Username,
			&comment.Content,
			&comment.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read comments: %w", err)
	}

	return comments, nil
}

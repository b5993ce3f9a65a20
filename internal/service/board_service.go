package service

import (
	"errors"
	"fmt"

	"goboard/internal/models"
	"goboard/internal/repository"
	"goboard/internal/validation"
)

var (
	ErrPostNotFound = errors.New("post not found")
	// ErrNotPostOwner is returned when someone other than the author
	// attempts to delete a post
	ErrNotPostOwner = errors.New("only the author may delete this post")
)

// BoardService handles posts and comments
type BoardService struct {
	postRepo *repository.PostRepository
}

// NewBoardService creates a new board service
func NewBoardService(postRepo *repository.PostRepository) *BoardService {
	return &BoardService{postRepo: postRepo}
}

// CreatePost validates, filters and stores a new post owned by userID
func (s *BoardService) CreatePost(userID int64, title, content string) (*models.Post, error) {
	if err := validation.ValidatePostTitle(title); err != nil {
		return nil, err
	}
	if err := validation.ValidatePostContent(content); err != nil {
		return nil, err
	}

	title = validation.FilterMarkup(title)
	content = validation.FilterMarkup(content)

	post, err := s.postRepo.CreatePost(userID, title, content)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// ListPosts returns all posts, oldest first
func (s *BoardService) ListPosts() ([]models.Post, error) {
	posts, err := s.postRepo.ListPosts()
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// GetPost returns a post with its comments
func (s *BoardService) GetPost(postID int64) (*models.Post, []models.Comment, error) {
	post, err := s.postRepo.GetPostByID(postID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return nil, nil, ErrPostNotFound
	}

	comments, err := s.postRepo.ListCommentsByPost(postID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return post, comments, nil
}

// DeletePost removes a post if and only if userID is its owner.
// A non-owner attempt fails with ErrNotPostOwner and leaves the post intact.
func (s *BoardService) DeletePost(postID, userID int64) error {
	post, err := s.postRepo.GetPostByID(postID)
	if err != nil {
		return fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return ErrPostNotFound
	}

	if post.UserID != userID {
		return ErrNotPostOwner
	}

	if err := s.postRepo.DeletePost(postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

// AddComment appends a comment to an existing post. Comments record their
// author and cannot be edited or deleted afterwards.
func (s *BoardService) AddComment(postID, userID int64, content string) (*models.Comment, error) {
	if err := validation.ValidateCommentContent(content); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetPostByID(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	content = validation.FilterMarkup(content)

	comment, err := s.postRepo.CreateComment(postID, userID, content)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

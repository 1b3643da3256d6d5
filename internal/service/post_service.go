// Package service contains the application's business logic, sitting between
// HTTP handlers and repositories.
package service

import (
	"context"
	"strings"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
)

const (
	maxPostLen    = 50000
	maxCommentLen = 10000
)

// PostService owns the post aggregate's operations: creation, author-only
// update/delete, like toggling and comment appending.
type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	AuthorID uint
	Text     string
	ImageURL string
}

type UpdatePostInput struct {
	CallerID uint
	PostID   uint
	Patch    models.PostPatch
}

type DeletePostInput struct {
	CallerID uint
	PostID   uint
}

type AppendCommentInput struct {
	CallerID uint
	PostID   uint
	Text     string
}

// ToggleLikeResult carries the refreshed post and which way the toggle went.
type ToggleLikeResult struct {
	Post   *models.Post      `json:"post"`
	Action models.LikeAction `json:"action"`
}

// NewPostService creates a new post service.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(in.Text) > maxPostLen {
		return nil, models.NewValidationError("Text too long (max 50000 characters)")
	}

	post := &models.Post{
		Text:     in.Text,
		ImageURL: in.ImageURL,
		AuthorID: in.AuthorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// Reload with the author reference resolved for display.
	return s.postRepo.FindByID(ctx, post.ID, true, in.AuthorID)
}

func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	return s.postRepo.FindByID(ctx, id, true, currentUserID)
}

func (s *PostService) ListPosts(ctx context.Context, currentUserID uint) ([]*models.Post, error) {
	return s.postRepo.FindAll(ctx, true, currentUserID)
}

func (s *PostService) GetUserPosts(ctx context.Context, authorID uint, currentUserID uint) ([]*models.Post, error) {
	return s.postRepo.FindByAuthor(ctx, authorID, currentUserID)
}

// UpdatePost merges the patch into the post. Only the author may update;
// authorship itself is not patchable.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.FindByID(ctx, in.PostID, false, in.CallerID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != in.CallerID {
		return nil, models.NewForbiddenError("You can only update your own posts")
	}
	if in.Patch.Empty() {
		return nil, models.NewValidationError("No fields to update")
	}
	if in.Patch.Text != nil && strings.TrimSpace(*in.Patch.Text) == "" {
		return nil, models.NewValidationError("Text cannot be empty")
	}

	if err := s.postRepo.Update(ctx, in.PostID, in.Patch); err != nil {
		return nil, err
	}
	return s.postRepo.FindByID(ctx, in.PostID, true, in.CallerID)
}

// DeletePost removes the post permanently. Author-only; a second delete of
// the same post reports NotFound.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.FindByID(ctx, in.PostID, false, in.CallerID)
	if err != nil {
		return err
	}
	if post.AuthorID != in.CallerID {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, in.PostID)
}

// ToggleLike adds the caller to the post's like set, or removes them if
// already present. Any authenticated caller may like any post.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (*ToggleLikeResult, error) {
	if _, err := s.postRepo.FindByID(ctx, postID, false, 0); err != nil {
		return nil, err
	}

	action, err := s.postRepo.ToggleLike(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	observability.LikeToggles.WithLabelValues(string(action)).Inc()

	post, err := s.postRepo.FindByID(ctx, postID, true, userID)
	if err != nil {
		return nil, err
	}
	return &ToggleLikeResult{Post: post, Action: action}, nil
}

// AppendComment appends one comment and returns the post's freshly
// hydrated comment list, authors resolved.
func (s *PostService) AppendComment(ctx context.Context, in AppendCommentInput) ([]models.Comment, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewValidationError("Comment text is required")
	}
	if len(in.Text) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	if _, err := s.postRepo.AppendComment(ctx, in.PostID, in.CallerID, in.Text); err != nil {
		return nil, err
	}
	observability.CommentsAppended.Inc()

	post, err := s.postRepo.FindByID(ctx, in.PostID, true, in.CallerID)
	if err != nil {
		return nil, err
	}
	return post.Comments, nil
}

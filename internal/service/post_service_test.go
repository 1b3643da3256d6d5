package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn          func(context.Context, *models.Post) error
	findByIDFn        func(context.Context, uint, bool, uint) (*models.Post, error)
	findAllFn         func(context.Context, bool, uint) ([]*models.Post, error)
	findByAuthorFn    func(context.Context, uint, uint) ([]*models.Post, error)
	findByAuthorsInFn func(context.Context, []uint, uint) ([]*models.Post, error)
	updateFn          func(context.Context, uint, models.PostPatch) error
	deleteFn          func(context.Context, uint) error
	toggleLikeFn      func(context.Context, uint, uint) (models.LikeAction, error)
	appendCommentFn   func(context.Context, uint, uint, string) (*models.Comment, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) FindByID(ctx context.Context, id uint, resolveAuthors bool, currentUserID uint) (*models.Post, error) {
	return s.findByIDFn(ctx, id, resolveAuthors, currentUserID)
}
func (s *postRepoStub) FindAll(ctx context.Context, resolveAuthors bool, currentUserID uint) ([]*models.Post, error) {
	return s.findAllFn(ctx, resolveAuthors, currentUserID)
}
func (s *postRepoStub) FindByAuthor(ctx context.Context, authorID, currentUserID uint) ([]*models.Post, error) {
	return s.findByAuthorFn(ctx, authorID, currentUserID)
}
func (s *postRepoStub) FindByAuthorsIn(ctx context.Context, authorIDs []uint, currentUserID uint) ([]*models.Post, error) {
	return s.findByAuthorsInFn(ctx, authorIDs, currentUserID)
}
func (s *postRepoStub) Update(ctx context.Context, id uint, patch models.PostPatch) error {
	return s.updateFn(ctx, id, patch)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) ToggleLike(ctx context.Context, userID, postID uint) (models.LikeAction, error) {
	return s.toggleLikeFn(ctx, userID, postID)
}
func (s *postRepoStub) AppendComment(ctx context.Context, postID, authorID uint, text string) (*models.Comment, error) {
	return s.appendCommentFn(ctx, postID, authorID, text)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		findByIDFn: func(_ context.Context, id uint, _ bool, _ uint) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
		findAllFn:      func(_ context.Context, _ bool, _ uint) ([]*models.Post, error) { return nil, nil },
		findByAuthorFn: func(_ context.Context, _, _ uint) ([]*models.Post, error) { return nil, nil },
		findByAuthorsInFn: func(_ context.Context, _ []uint, _ uint) ([]*models.Post, error) {
			return nil, nil
		},
		updateFn:     func(_ context.Context, _ uint, _ models.PostPatch) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
		toggleLikeFn: func(_ context.Context, _, _ uint) (models.LikeAction, error) { return models.ActionLiked, nil },
		appendCommentFn: func(_ context.Context, _, _ uint, text string) (*models.Comment, error) {
			return &models.Comment{Text: text}, nil
		},
	}
}

// assertErrorCode asserts that err is an AppError with the given code.
func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func TestPostService_CreatePost_Validation(t *testing.T) {
	t.Parallel()

	svc := NewPostService(noopPostRepo())
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreatePostInput
	}{
		{
			name:  "empty text",
			input: CreatePostInput{AuthorID: 1},
		},
		{
			name:  "whitespace text",
			input: CreatePostInput{AuthorID: 1, Text: "   "},
		},
		{
			name:  "text too long",
			input: CreatePostInput{AuthorID: 1, Text: strings.Repeat("x", maxPostLen+1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePost(ctx, tt.input)
			assertErrorCode(t, err, models.CodeValidation)
		})
	}
}

func TestPostService_CreatePost_SetsAuthor(t *testing.T) {
	t.Parallel()

	repo := noopPostRepo()
	var created *models.Post
	repo.createFn = func(_ context.Context, post *models.Post) error {
		post.ID = 42
		created = post
		return nil
	}

	svc := NewPostService(repo)
	post, err := svc.CreatePost(context.Background(), CreatePostInput{AuthorID: 7, Text: "hello"})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, uint(7), created.AuthorID)
	assert.Equal(t, uint(42), post.ID)
}

func TestPostService_UpdatePost_NonAuthorForbidden(t *testing.T) {
	t.Parallel()

	repo := noopPostRepo()
	repo.findByIDFn = func(_ context.Context, id uint, _ bool, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, AuthorID: 1, Text: "original"}, nil
	}
	updated := false
	repo.updateFn = func(_ context.Context, _ uint, _ models.PostPatch) error {
		updated = true
		return nil
	}

	svc := NewPostService(repo)
	text := "hijacked"
	_, err := svc.UpdatePost(context.Background(), UpdatePostInput{
		CallerID: 2,
		PostID:   10,
		Patch:    models.PostPatch{Text: &text},
	})

	assertErrorCode(t, err, models.CodeForbidden)
	assert.False(t, updated, "a forbidden update must never reach storage")
}

func TestPostService_UpdatePost_EmptyPatch(t *testing.T) {
	t.Parallel()

	repo := noopPostRepo()
	repo.findByIDFn = func(_ context.Context, id uint, _ bool, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, AuthorID: 1}, nil
	}

	svc := NewPostService(repo)
	_, err := svc.UpdatePost(context.Background(), UpdatePostInput{CallerID: 1, PostID: 10})
	assertErrorCode(t, err, models.CodeValidation)
}

func TestPostService_DeletePost_NonAuthorForbidden(t *testing.T) {
	t.Parallel()

	repo := noopPostRepo()
	repo.findByIDFn = func(_ context.Context, id uint, _ bool, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, AuthorID: 1}, nil
	}

	svc := NewPostService(repo)
	err := svc.DeletePost(context.Background(), DeletePostInput{CallerID: 2, PostID: 10})
	assertErrorCode(t, err, models.CodeForbidden)
}

func TestPostService_DeletePost_Missing(t *testing.T) {
	t.Parallel()

	repo := noopPostRepo()
	repo.findByIDFn = func(_ context.Context, id uint, _ bool, _ uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}

	svc := NewPostService(repo)
	err := svc.DeletePost(context.Background(), DeletePostInput{CallerID: 1, PostID: 10})
	assertErrorCode(t, err, models.CodeNotFound)
}

func TestPostService_ToggleLike_ReportsAction(t *testing.T) {
	t.Parallel()

	repo := noopPostRepo()
	liked := false
	repo.toggleLikeFn = func(_ context.Context, _, _ uint) (models.LikeAction, error) {
		liked = !liked
		if liked {
			return models.ActionLiked, nil
		}
		return models.ActionUnliked, nil
	}

	svc := NewPostService(repo)
	ctx := context.Background()

	res, err := svc.ToggleLike(ctx, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, models.ActionLiked, res.Action)

	res, err = svc.ToggleLike(ctx, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, models.ActionUnliked, res.Action)
}

func TestPostService_ToggleLike_MissingPost(t *testing.T) {
	t.Parallel()

	repo := noopPostRepo()
	repo.findByIDFn = func(_ context.Context, id uint, _ bool, _ uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}
	toggled := false
	repo.toggleLikeFn = func(_ context.Context, _, _ uint) (models.LikeAction, error) {
		toggled = true
		return models.ActionLiked, nil
	}

	svc := NewPostService(repo)
	_, err := svc.ToggleLike(context.Background(), 2, 404)
	assertErrorCode(t, err, models.CodeNotFound)
	assert.False(t, toggled)
}

func TestPostService_AppendComment_Validation(t *testing.T) {
	t.Parallel()

	svc := NewPostService(noopPostRepo())
	ctx := context.Background()

	_, err := svc.AppendComment(ctx, AppendCommentInput{CallerID: 3, PostID: 10, Text: ""})
	assertErrorCode(t, err, models.CodeValidation)

	_, err = svc.AppendComment(ctx, AppendCommentInput{CallerID: 3, PostID: 10, Text: "  "})
	assertErrorCode(t, err, models.CodeValidation)

	_, err = svc.AppendComment(ctx, AppendCommentInput{CallerID: 3, PostID: 10, Text: strings.Repeat("x", maxCommentLen+1)})
	assertErrorCode(t, err, models.CodeValidation)
}

func TestPostService_AppendComment_ReturnsHydratedList(t *testing.T) {
	t.Parallel()

	repo := noopPostRepo()
	appended := false
	repo.appendCommentFn = func(_ context.Context, postID, authorID uint, text string) (*models.Comment, error) {
		appended = true
		return &models.Comment{PostID: postID, AuthorID: authorID, Text: text}, nil
	}
	repo.findByIDFn = func(_ context.Context, id uint, resolveAuthors bool, _ uint) (*models.Post, error) {
		assert.True(t, resolveAuthors, "the returned comment list must have authors resolved")
		return &models.Post{
			ID: id,
			Comments: []models.Comment{
				{Text: "nice!", Author: &models.User{ID: 3, Username: "carol"}},
			},
		}, nil
	}

	svc := NewPostService(repo)
	comments, err := svc.AppendComment(context.Background(), AppendCommentInput{CallerID: 3, PostID: 10, Text: "nice!"})
	require.NoError(t, err)
	assert.True(t, appended)
	require.Len(t, comments, 1)
	require.NotNil(t, comments[0].Author)
	assert.Equal(t, "carol", comments[0].Author.Username)
}

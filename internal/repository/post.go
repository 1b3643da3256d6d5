// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations.
//
// Like toggling and comment appending are single atomic row operations,
// never load-mutate-save on the whole post; concurrent writers cannot
// lose each other's updates.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id uint, resolveAuthors bool, currentUserID uint) (*models.Post, error)
	FindAll(ctx context.Context, resolveAuthors bool, currentUserID uint) ([]*models.Post, error)
	FindByAuthor(ctx context.Context, authorID uint, currentUserID uint) ([]*models.Post, error)
	FindByAuthorsIn(ctx context.Context, authorIDs []uint, currentUserID uint) ([]*models.Post, error)
	Update(ctx context.Context, id uint, patch models.PostPatch) error
	Delete(ctx context.Context, id uint) error
	ToggleLike(ctx context.Context, userID, postID uint) (models.LikeAction, error)
	AppendComment(ctx context.Context, postID, authorID uint, text string) (*models.Comment, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("insert", "posts")()
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewStorageError(err)
	}
	return nil
}

// applyPostDetails adds subqueries to fetch the like count and the caller's
// liked status in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) as liked", currentUserID)
	}
	return db.Select(selectQuery)
}

// applyResolution preloads author references on the post, its comments and
// its like set. This is a read-time join: the stored rows carry ids only.
func applyResolution(db *gorm.DB, resolveAuthors bool) *gorm.DB {
	db = db.Preload("Likes").
		Preload("Comments", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("comments.created_at ASC, comments.id ASC")
		})
	if resolveAuthors {
		db = db.Preload("Author").Preload("Comments.Author")
	}
	return db
}

func (r *postRepository) FindByID(ctx context.Context, id uint, resolveAuthors bool, currentUserID uint) (*models.Post, error) {
	defer observability.TrackQuery("select", "posts")()

	var post models.Post
	load := func(withAuthors bool) error {
		err := applyResolution(r.applyPostDetails(r.db.WithContext(ctx), currentUserID), withAuthors).
			First(&post, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post", id)
		}
		if err != nil {
			return models.NewStorageError(err)
		}
		return nil
	}

	// Only anonymous resolved reads are cacheable; per-caller reads carry
	// the computed liked flag. The cached form holds author ids only;
	// author references are joined after hydration, never stored.
	if currentUserID == 0 && resolveAuthors {
		err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
			return load(false)
		})
		if err != nil {
			return nil, err
		}
		if err := r.resolveAuthorRefs(ctx, &post); err != nil {
			return nil, err
		}
		return &post, nil
	}

	if err := load(resolveAuthors); err != nil {
		return nil, err
	}
	return &post, nil
}

// resolveAuthorRefs joins the author references for a post and its comments
// from the users table in a single query.
func (r *postRepository) resolveAuthorRefs(ctx context.Context, post *models.Post) error {
	ids := []uint{post.AuthorID}
	seen := map[uint]bool{post.AuthorID: true}
	for _, cm := range post.Comments {
		if !seen[cm.AuthorID] {
			seen[cm.AuthorID] = true
			ids = append(ids, cm.AuthorID)
		}
	}

	var users []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return models.NewStorageError(err)
	}
	byID := make(map[uint]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	post.Author = byID[post.AuthorID]
	for i := range post.Comments {
		post.Comments[i].Author = byID[post.Comments[i].AuthorID]
	}
	return nil
}

func (r *postRepository) FindAll(ctx context.Context, resolveAuthors bool, currentUserID uint) ([]*models.Post, error) {
	defer observability.TrackQuery("select", "posts")()

	var posts []*models.Post
	err := applyResolution(r.applyPostDetails(r.db.WithContext(ctx), currentUserID), resolveAuthors).
		Order("posts.created_at DESC, posts.id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return posts, nil
}

func (r *postRepository) FindByAuthor(ctx context.Context, authorID uint, currentUserID uint) ([]*models.Post, error) {
	defer observability.TrackQuery("select", "posts")()

	var posts []*models.Post
	err := applyResolution(r.applyPostDetails(r.db.WithContext(ctx), currentUserID), true).
		Where("posts.author_id = ?", authorID).
		Order("posts.created_at DESC, posts.id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return posts, nil
}

func (r *postRepository) FindByAuthorsIn(ctx context.Context, authorIDs []uint, currentUserID uint) ([]*models.Post, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	defer observability.TrackQuery("select", "posts")()

	var posts []*models.Post
	err := applyResolution(r.applyPostDetails(r.db.WithContext(ctx), currentUserID), true).
		Where("posts.author_id IN ?", authorIDs).
		Order("posts.created_at DESC, posts.id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return posts, nil
}

// Update merges the patch fields into the stored post. This is a partial,
// field-level update; untouched columns keep their values and AuthorID is
// never part of the generated SET clause.
func (r *postRepository) Update(ctx context.Context, id uint, patch models.PostPatch) error {
	defer observability.TrackQuery("update", "posts")()

	fields := map[string]interface{}{}
	if patch.Text != nil {
		fields["text"] = *patch.Text
	}
	if patch.ImageURL != nil {
		fields["image_url"] = *patch.ImageURL
	}
	if len(fields) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return models.NewStorageError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

// Delete removes the post. A repeated delete surfaces NotFound so callers
// can treat absence as a distinct, non-fatal outcome.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "posts")()

	result := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if result.Error != nil {
		return models.NewStorageError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

// ToggleLike flips the caller's membership in the post's like set. The
// decision is made by set membership at the storage layer: the insert is
// atomic via the unique (user_id, post_id) index, so two concurrent
// toggles by different users commute and a user can never appear twice.
func (r *postRepository) ToggleLike(ctx context.Context, userID, postID uint) (models.LikeAction, error) {
	defer observability.TrackQuery("upsert", "likes")()

	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO likes (user_id, post_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id, post_id) DO NOTHING`,
		userID, postID,
	)
	if result.Error != nil {
		return "", models.NewStorageError(result.Error)
	}
	if result.RowsAffected == 1 {
		cache.InvalidatePost(ctx, postID)
		return models.ActionLiked, nil
	}

	// Already a member: remove the row.
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{}).Error; err != nil {
		return "", models.NewStorageError(err)
	}
	cache.InvalidatePost(ctx, postID)
	return models.ActionUnliked, nil
}

// AppendComment inserts a single comment row. Appending is never expressed
// as a rewrite of the parent post, so concurrent commenters cannot drop
// each other's comments.
func (r *postRepository) AppendComment(ctx context.Context, postID, authorID uint, text string) (*models.Comment, error) {
	defer observability.TrackQuery("insert", "comments")()

	// The parent must still exist at persist time.
	var exists int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", postID).Count(&exists).Error; err != nil {
		return nil, models.NewStorageError(err)
	}
	if exists == 0 {
		return nil, models.NewNotFoundError("Post", postID)
	}

	comment := &models.Comment{
		Text:     text,
		AuthorID: authorID,
		PostID:   postID,
	}
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, models.NewStorageError(err)
	}
	cache.InvalidatePost(ctx, postID)
	return comment, nil
}

package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"
)

// FollowService manages the directed follow graph consumed by the timeline.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService creates a new follow service.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

func (s *FollowService) Follow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return models.NewValidationError("You cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, followeeID); err != nil {
		return err
	}
	return s.followRepo.Follow(ctx, followerID, followeeID)
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return models.NewValidationError("You cannot unfollow yourself")
	}
	return s.followRepo.Unfollow(ctx, followerID, followeeID)
}

// Following returns display projections of the accounts userID follows.
func (s *FollowService) Following(ctx context.Context, userID uint) ([]models.Author, error) {
	users, err := s.followRepo.Following(ctx, userID)
	if err != nil {
		return nil, err
	}
	return projectAuthors(users), nil
}

// Followers returns display projections of the accounts following userID.
func (s *FollowService) Followers(ctx context.Context, userID uint) ([]models.Author, error) {
	users, err := s.followRepo.Followers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return projectAuthors(users), nil
}

func projectAuthors(users []models.User) []models.Author {
	authors := make([]models.Author, 0, len(users))
	for i := range users {
		authors = append(authors, users[i].AuthorRef())
	}
	return authors
}

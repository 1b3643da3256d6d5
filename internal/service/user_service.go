package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"
)

// UserService exposes profile reads and self-service profile updates.
type UserService struct {
	userRepo repository.UserRepository
}

type UpdateProfileInput struct {
	CallerID uint
	UserID   uint
	Bio      *string
	Avatar   *string
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	if in.CallerID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own profile")
	}

	patch := models.UserPatch{Bio: in.Bio, Avatar: in.Avatar}
	if !patch.Empty() {
		if err := s.userRepo.Update(ctx, in.UserID, patch); err != nil {
			return nil, err
		}
	}
	return s.userRepo.GetByID(ctx, in.UserID)
}

package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
)

// TimelineService composes a viewer's feed: everything authored by the
// accounts they follow, plus their own posts, newest first.
type TimelineService struct {
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
}

// NewTimelineService creates a new timeline service.
func NewTimelineService(postRepo repository.PostRepository, followRepo repository.FollowRepository) *TimelineService {
	return &TimelineService{postRepo: postRepo, followRepo: followRepo}
}

// Compose returns the viewer's timeline. Self-inclusion is mandatory: a
// user always sees their own posts in their own feed. The whole matching
// set is returned; recency ordering and the id tie-break come from the
// repository query.
func (s *TimelineService) Compose(ctx context.Context, viewerID uint) ([]*models.Post, error) {
	following, err := s.followRepo.FollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]uint, 0, len(following)+1)
	authorIDs = append(authorIDs, following...)
	authorIDs = append(authorIDs, viewerID)

	observability.TimelineFanIn.Observe(float64(len(authorIDs)))

	return s.postRepo.FindByAuthorsIn(ctx, authorIDs, viewerID)
}

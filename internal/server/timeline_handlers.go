package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetTimeline handles GET /api/timeline
// The feed is the caller's followed authors plus themselves, newest first.
func (s *Server) GetTimeline(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	posts, err := s.timelineService.Compose(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(posts)
}

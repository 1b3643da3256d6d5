package database

import (
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestPersistentModels_Complete(t *testing.T) {
	registered := PersistentModels()
	assert.Len(t, registered, 5)

	// Every domain model that owns a table must be registered exactly once.
	assert.Contains(t, registered, &models.User{})
	assert.Contains(t, registered, &models.Post{})
	assert.Contains(t, registered, &models.Comment{})
	assert.Contains(t, registered, &models.Like{})
	assert.Contains(t, registered, &models.Follow{})
}

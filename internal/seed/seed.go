package seed

import (
	"fmt"

	"ripple/internal/models"
	"ripple/internal/observability"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	MaxDays     int
	ShouldClean bool
	SkipBcrypt  bool
}

// Seed populates the database with test data: users, a follow mesh, posts,
// and a scattering of likes and comments.
func Seed(db *gorm.DB, opts Options) error {
	observability.Logger.Info("starting database seeding",
		"users", opts.NumUsers, "posts", opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			observability.Logger.Warn("could not clear all existing data, continuing", "error", err.Error())
		}
	}

	f := NewFactory(db, opts)

	users, err := createUsers(f, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	observability.Logger.Info("test users created", "count", len(users))

	if err := createFollowMesh(f, users); err != nil {
		return fmt.Errorf("failed to create follow mesh: %w", err)
	}

	posts, err := createPosts(f, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	observability.Logger.Info("posts created", "count", len(posts))

	if err := createEngagement(f, users, posts); err != nil {
		return fmt.Errorf("failed to create likes and comments: %w", err)
	}

	observability.Logger.Info("database seeding completed")
	return nil
}

func clearData(db *gorm.DB) error {
	sql := `TRUNCATE TABLE comments, likes, follows, posts, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(f *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include a known login for manual testing.
	if count >= 1 {
		user, err := f.CreateUser(func(u *models.User) {
			u.Username = "demo"
			u.Email = "demo@example.com"
			u.Bio = "Known account for manual testing."
		})
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	for len(users) < count {
		user, err := f.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// createFollowMesh gives every user a handful of follows so timelines have
// content. The mesh is random and directed.
func createFollowMesh(f *Factory, users []*models.User) error {
	if len(users) < 2 {
		return nil
	}
	for _, follower := range users {
		edges := f.rand.Intn(len(users)/2+1) + 1
		for i := 0; i < edges; i++ {
			followee := users[f.rand.Intn(len(users))]
			if err := f.CreateFollow(follower, followee); err != nil {
				return err
			}
		}
	}
	return nil
}

func createPosts(f *Factory, users []*models.User, count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[f.rand.Intn(len(users))]
		posts = append(posts, f.BuildPost(author))
	}
	if err := f.CreatePostsBatch(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func createEngagement(f *Factory, users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		likes := f.rand.Intn(len(users) + 1)
		for i := 0; i < likes; i++ {
			if err := f.CreateLike(post, users[f.rand.Intn(len(users))]); err != nil {
				return err
			}
		}

		comments := f.rand.Intn(4)
		for i := 0; i < comments; i++ {
			if _, err := f.CreateComment(post, users[f.rand.Intn(len(users))]); err != nil {
				return err
			}
		}
	}
	return nil
}

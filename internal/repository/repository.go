// Package repository declares the persistence contracts the services depend on.
package repository

import (
	"context"
	"time"

	"github.com/moodify/core/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store groups the per-collection repositories behind one connection.
type Store interface {
	Users() UserRepository
	Moods() MoodRepository
	Playlists() PlaylistRepository
	Feedback() FeedbackRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type UserRepository interface {
	// Create inserts the user and sets its ID. Returns models.ErrUsernameTaken on duplicates.
	Create(ctx context.Context, user *models.User) error
	// GetByID returns models.ErrUserNotFound when absent.
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	// GetByUsername returns models.ErrUserNotFound when absent.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, update models.UserUpdate) error
	Touch(ctx context.Context, id primitive.ObjectID, at time.Time) error
	SetTopMoods(ctx context.Context, id primitive.ObjectID, top []string) error
	RecordMood(ctx context.Context, id primitive.ObjectID, entry *models.MoodEntry) error
	SetLikedSong(ctx context.Context, id primitive.ObjectID, songID string, liked bool) error
	// ListActiveSince returns ids of users active at or after since.
	ListActiveSince(ctx context.Context, since time.Time) ([]primitive.ObjectID, error)
}

type MoodRepository interface {
	Create(ctx context.Context, entry *models.MoodEntry) error
	// ListByUser returns entries newest first. limit <= 0 returns all.
	ListByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.MoodEntry, error)
	CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

type PlaylistRepository interface {
	Create(ctx context.Context, p *models.Playlist) error
	// GetByID returns models.ErrPlaylistNotFound when absent.
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Playlist, error)
	// ListByUser returns playlists newest first. limit <= 0 returns all.
	ListByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.Playlist, error)
	CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
	// Rename and Delete are scoped to the owner and return models.ErrPlaylistNotFound otherwise.
	Rename(ctx context.Context, userID, id primitive.ObjectID, name string) error
	Delete(ctx context.Context, userID, id primitive.ObjectID) error
	// PullSong removes songID from every playlist of the user and returns the number modified.
	PullSong(ctx context.Context, userID primitive.ObjectID, songID string) (int64, error)
}

type FeedbackRepository interface {
	Create(ctx context.Context, f *models.Feedback) error
}

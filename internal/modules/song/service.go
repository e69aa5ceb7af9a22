package song

import (
	"context"
	"fmt"
	"strings"

	"github.com/moodify/core/internal/models"
	"github.com/moodify/core/internal/modules/catalog"
	"github.com/moodify/core/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Service struct {
	users     repository.UserRepository
	playlists repository.PlaylistRepository
	catalog   *catalog.Catalog
}

func NewService(store repository.Store, cat *catalog.Catalog) *Service {
	return &Service{users: store.Users(), playlists: store.Playlists(), catalog: cat}
}

// Library flattens every song of the user's playlists, newest playlist first,
// alongside the ids the user has liked.
func (s *Service) Library(ctx context.Context, userID primitive.ObjectID) (*LibraryResponse, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	playlists, err := s.playlists.ListByUser(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	songs := make([]LibrarySong, 0)
	for _, p := range playlists {
		for _, song := range p.Songs {
			songs = append(songs, LibrarySong{
				Song:          song,
				PlaylistID:    p.ID.Hex(),
				PlaylistName:  p.Name,
				PlaylistMood:  p.Mood,
				PlaylistGenre: p.Genre,
				CreatedAt:     p.CreatedAt,
			})
		}
	}
	return &LibraryResponse{Songs: songs, LikedSongIDs: u.LikedSongs}, nil
}

// SetLiked records or clears a like. A nil liked flips the current state.
// It returns the resulting state.
func (s *Service) SetLiked(ctx context.Context, userID primitive.ObjectID, songID string, liked *bool) (bool, error) {
	songID = strings.TrimSpace(songID)
	if songID == "" {
		return false, fmt.Errorf("%w: songId is required", models.ErrValidation)
	}
	if _, ok := s.catalog.ByID(songID); !ok {
		return false, fmt.Errorf("%w: %q", models.ErrSongNotInCatalog, songID)
	}

	want := true
	if liked != nil {
		want = *liked
	} else {
		u, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return false, err
		}
		want = !contains(u.LikedSongs, songID)
	}
	if err := s.users.SetLikedSong(ctx, userID, songID, want); err != nil {
		return false, err
	}
	return want, nil
}

// Remove pulls the song from every playlist of the user.
func (s *Service) Remove(ctx context.Context, userID primitive.ObjectID, songID string) (int64, error) {
	songID = strings.TrimSpace(songID)
	if songID == "" {
		return 0, fmt.Errorf("%w: songId is required", models.ErrValidation)
	}
	return s.playlists.PullSong(ctx, userID, songID)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

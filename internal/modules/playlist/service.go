package playlist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/moodify/core/internal/models"
	"github.com/moodify/core/internal/modules/catalog"
	"github.com/moodify/core/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const maxNameLen = 100

type Service struct {
	playlists repository.PlaylistRepository
	users     repository.UserRepository
	catalog   *catalog.Catalog
	maxPer    int
	log       *zap.Logger
	now       func() time.Time
}

func NewService(store repository.Store, cat *catalog.Catalog, maxPerUser int, log *zap.Logger) *Service {
	return &Service{
		playlists: store.Playlists(),
		users:     store.Users(),
		catalog:   cat,
		maxPer:    maxPerUser,
		log:       log.Named("playlist"),
		now:       time.Now,
	}
}

func (s *Service) List(ctx context.Context, userID primitive.ObjectID) ([]models.Playlist, error) {
	return s.playlists.ListByUser(ctx, userID, 0)
}

// Get returns a playlist owned by userID. Other users' playlists are reported as missing.
func (s *Service) Get(ctx context.Context, userID, id primitive.ObjectID) (*models.Playlist, error) {
	p, err := s.playlists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, models.ErrPlaylistNotFound
	}
	return p, nil
}

// Create saves the liked subset of a resolved song list. Every song must belong to
// the catalog entry for (mood, genre); the stored copy is the catalog's record.
func (s *Service) Create(ctx context.Context, userID primitive.ObjectID, dto *CreateDTO) (*models.Playlist, error) {
	name := strings.TrimSpace(dto.Name)
	mood := strings.ToLower(strings.TrimSpace(dto.Mood))
	genre := strings.ToLower(strings.TrimSpace(dto.Genre))

	if len(dto.Songs) == 0 {
		return nil, models.ErrEmptyPlaylist
	}
	if name == "" {
		return nil, fmt.Errorf("%w: playlist name is required", models.ErrValidation)
	}
	if len(name) > maxNameLen {
		return nil, fmt.Errorf("%w: playlist name is too long", models.ErrValidation)
	}
	if !models.IsKnownMood(mood) {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidMood, dto.Mood)
	}
	if genre != "" && !s.catalog.HasGenre(genre) {
		return nil, fmt.Errorf("%w: unknown genre %q", models.ErrValidation, dto.Genre)
	}

	songs, err := s.canonicalSongs(mood, genre, dto.Songs)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	count, err := s.playlists.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= int64(s.maxPer) {
		return nil, &models.PlaylistLimitError{Max: s.maxPer}
	}

	p := &models.Playlist{
		UserID:    userID,
		Name:      name,
		Mood:      mood,
		Genre:     genre,
		Songs:     songs,
		CreatedAt: s.now().UTC(),
	}
	if err := s.playlists.Create(ctx, p); err != nil {
		return nil, err
	}
	if err := s.users.Touch(ctx, userID, p.CreatedAt); err != nil {
		s.log.Warn("record playlist activity", zap.String("user_id", userID.Hex()), zap.Error(err))
	}
	return p, nil
}

func (s *Service) canonicalSongs(mood, genre string, in []SongRef) ([]models.Song, error) {
	seen := make(map[string]struct{}, len(in))
	out := make([]models.Song, 0, len(in))
	for _, ref := range in {
		id := strings.TrimSpace(ref.ID)
		if _, dup := seen[id]; dup {
			continue
		}
		song, ok := s.catalog.Lookup(mood, genre, id)
		if !ok {
			return nil, fmt.Errorf("%w: %q", models.ErrSongNotInCatalog, id)
		}
		seen[id] = struct{}{}
		out = append(out, song)
	}
	return out, nil
}

func (s *Service) Rename(ctx context.Context, userID, id primitive.ObjectID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: playlist name is required", models.ErrValidation)
	}
	if len(name) > maxNameLen {
		return fmt.Errorf("%w: playlist name is too long", models.ErrValidation)
	}
	return s.playlists.Rename(ctx, userID, id, name)
}

func (s *Service) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	return s.playlists.Delete(ctx, userID, id)
}

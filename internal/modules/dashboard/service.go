package dashboard

import (
	"context"
	"fmt"

	"github.com/moodify/core/internal/models"
	"github.com/moodify/core/internal/modules/mood/classifier"
	"github.com/moodify/core/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

const (
	recentPlaylistLimit = 5
	recentMoodLimit     = 10
	defaultRecentLimit  = 3
	maxRecentLimit      = 50
)

type Service struct {
	store repository.Store
}

func NewService(store repository.Store) *Service {
	return &Service{store: store}
}

func (s *Service) Overview(ctx context.Context, userID primitive.ObjectID) (*Overview, error) {
	u, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var (
		playlists     []PlaylistSummary
		history       []models.MoodEntry
		playlistCount int64
		moodCount     int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		playlists, err = s.Recent(gctx, userID, recentPlaylistLimit)
		return err
	})
	g.Go(func() (err error) {
		if history, err = s.store.Moods().ListByUser(gctx, userID, recentMoodLimit); err != nil {
			return fmt.Errorf("list moods: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if playlistCount, err = s.store.Playlists().CountByUser(gctx, userID); err != nil {
			return fmt.Errorf("count playlists: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if moodCount, err = s.store.Moods().CountByUser(gctx, userID); err != nil {
			return fmt.Errorf("count moods: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	top := u.TopMoods
	if len(top) == 0 && len(history) > 0 {
		top = classifier.TopMoods(history, classifier.DefaultTopN)
	}

	recent := make([]MoodSummary, 0, len(history))
	for _, e := range history {
		recent = append(recent, MoodSummary{
			ID:         e.ID.Hex(),
			Categories: e.Categories,
			Intensity:  e.Intensity,
			Timestamp:  e.Timestamp,
			Source:     e.Source,
		})
	}

	return &Overview{
		Username:        u.Username,
		LastActive:      u.LastActivity,
		RecentPlaylists: playlists,
		MoodInsights: MoodInsights{
			CurrentMood: u.CurrentMood,
			RecentMoods: recent,
			TopMoods:    nonNil(top),
		},
		Stats: Stats{
			TotalPlaylists:   playlistCount,
			TotalMoodEntries: moodCount,
			LikedSongs:       len(u.LikedSongs),
		},
	}, nil
}

// Recent returns the newest playlists of the user. limit <= 0 means 3.
func (s *Service) Recent(ctx context.Context, userID primitive.ObjectID, limit int) ([]PlaylistSummary, error) {
	switch {
	case limit <= 0:
		limit = defaultRecentLimit
	case limit > maxRecentLimit:
		limit = maxRecentLimit
	}
	list, err := s.store.Playlists().ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	out := make([]PlaylistSummary, 0, len(list))
	for _, p := range list {
		out = append(out, summarize(p))
	}
	return out, nil
}

func summarize(p models.Playlist) PlaylistSummary {
	return PlaylistSummary{
		ID:        p.ID.Hex(),
		Name:      p.Name,
		Tracks:    len(p.Songs),
		Mood:      p.Mood,
		Genre:     p.Genre,
		CreatedAt: p.CreatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

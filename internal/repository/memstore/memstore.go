// Package memstore is an in-process Store used for local runs and tests.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/moodify/core/internal/models"
	"github.com/moodify/core/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store struct {
	mu        sync.RWMutex
	users     map[primitive.ObjectID]*models.User
	moods     []models.MoodEntry
	playlists map[primitive.ObjectID]*models.Playlist
	feedback  []models.Feedback
}

var _ repository.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		users:     make(map[primitive.ObjectID]*models.User),
		playlists: make(map[primitive.ObjectID]*models.Playlist),
	}
}

func (s *Store) Users() repository.UserRepository         { return users{s} }
func (s *Store) Moods() repository.MoodRepository         { return moods{s} }
func (s *Store) Playlists() repository.PlaylistRepository { return playlists{s} }
func (s *Store) Feedback() repository.FeedbackRepository  { return feedback{s} }

func (s *Store) Ping(context.Context) error  { return nil }
func (s *Store) Close(context.Context) error { return nil }

// FeedbackEntries returns a copy of the stored feedback.
func (s *Store) FeedbackEntries() []models.Feedback {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Feedback(nil), s.feedback...)
}

type users struct{ s *Store }

func cloneUser(u *models.User) *models.User {
	cp := *u
	cp.TopMoods = append([]string{}, u.TopMoods...)
	cp.LikedSongs = append([]string{}, u.LikedSongs...)
	return &cp
}

func (r users) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return models.ErrUsernameTaken
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.Normalize()
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

func (r users) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r users) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (r users) Update(_ context.Context, id primitive.ObjectID, update models.UserUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return models.ErrUserNotFound
	}
	if update.Username != nil {
		for otherID, other := range r.s.users {
			if otherID != id && other.Username == *update.Username {
				return models.ErrUsernameTaken
			}
		}
		u.Username = *update.Username
	}
	if update.PasswordHash != nil {
		u.Password = *update.PasswordHash
	}
	return nil
}

func (r users) mutate(id primitive.ObjectID, fn func(u *models.User)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return models.ErrUserNotFound
	}
	fn(u)
	return nil
}

func (r users) Touch(_ context.Context, id primitive.ObjectID, at time.Time) error {
	return r.mutate(id, func(u *models.User) { u.LastActivity = &at })
}

func (r users) SetTopMoods(_ context.Context, id primitive.ObjectID, top []string) error {
	return r.mutate(id, func(u *models.User) { u.TopMoods = append([]string{}, top...) })
}

func (r users) RecordMood(_ context.Context, id primitive.ObjectID, entry *models.MoodEntry) error {
	return r.mutate(id, func(u *models.User) {
		moodID := entry.ID
		at := entry.Timestamp
		u.CurrentMood = entry.Primary()
		u.LastMoodID = &moodID
		u.MoodTimestamp = &at
		u.LastActivity = &at
	})
}

func (r users) SetLikedSong(_ context.Context, id primitive.ObjectID, songID string, liked bool) error {
	return r.mutate(id, func(u *models.User) {
		idx := -1
		for i, s := range u.LikedSongs {
			if s == songID {
				idx = i
				break
			}
		}
		switch {
		case liked && idx < 0:
			u.LikedSongs = append(u.LikedSongs, songID)
		case !liked && idx >= 0:
			u.LikedSongs = append(u.LikedSongs[:idx], u.LikedSongs[idx+1:]...)
		}
	})
}

func (r users) ListActiveSince(_ context.Context, since time.Time) ([]primitive.ObjectID, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var ids []primitive.ObjectID
	for id, u := range r.s.users {
		if u.LastActivity != nil && !u.LastActivity.Before(since) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Hex() < ids[j].Hex() })
	return ids, nil
}

type moods struct{ s *Store }

func (r moods) Create(_ context.Context, entry *models.MoodEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	cp := *entry
	cp.Categories = append([]string{}, entry.Categories...)
	r.s.moods = append(r.s.moods, cp)
	return nil
}

func (r moods) ListByUser(_ context.Context, userID primitive.ObjectID, limit int) ([]models.MoodEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.MoodEntry, 0)
	// Walk backwards so equal timestamps keep insertion recency.
	for i := len(r.s.moods) - 1; i >= 0; i-- {
		if r.s.moods[i].UserID == userID {
			out = append(out, r.s.moods[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r moods) CountByUser(_ context.Context, userID primitive.ObjectID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, m := range r.s.moods {
		if m.UserID == userID {
			n++
		}
	}
	return n, nil
}

type playlists struct{ s *Store }

func clonePlaylist(p *models.Playlist) models.Playlist {
	cp := *p
	cp.Songs = append([]models.Song{}, p.Songs...)
	return cp
}

func (r playlists) Create(_ context.Context, p *models.Playlist) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	cp := clonePlaylist(p)
	r.s.playlists[p.ID] = &cp
	return nil
}

func (r playlists) GetByID(_ context.Context, id primitive.ObjectID) (*models.Playlist, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.playlists[id]
	if !ok {
		return nil, models.ErrPlaylistNotFound
	}
	cp := clonePlaylist(p)
	return &cp, nil
}

func (r playlists) ListByUser(_ context.Context, userID primitive.ObjectID, limit int) ([]models.Playlist, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.Playlist, 0)
	for _, p := range r.s.playlists {
		if p.UserID == userID {
			out = append(out, clonePlaylist(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.Hex() > out[j].ID.Hex()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r playlists) CountByUser(_ context.Context, userID primitive.ObjectID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, p := range r.s.playlists {
		if p.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r playlists) owned(userID, id primitive.ObjectID) (*models.Playlist, error) {
	p, ok := r.s.playlists[id]
	if !ok || p.UserID != userID {
		return nil, models.ErrPlaylistNotFound
	}
	return p, nil
}

func (r playlists) Rename(_ context.Context, userID, id primitive.ObjectID, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, err := r.owned(userID, id)
	if err != nil {
		return err
	}
	p.Name = strings.TrimSpace(name)
	return nil
}

func (r playlists) Delete(_ context.Context, userID, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, err := r.owned(userID, id); err != nil {
		return err
	}
	delete(r.s.playlists, id)
	return nil
}

func (r playlists) PullSong(_ context.Context, userID primitive.ObjectID, songID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var modified int64
	for _, p := range r.s.playlists {
		if p.UserID != userID {
			continue
		}
		kept := p.Songs[:0]
		for _, song := range p.Songs {
			if song.ID != songID {
				kept = append(kept, song)
			}
		}
		if len(kept) != len(p.Songs) {
			modified++
		}
		p.Songs = kept
	}
	return modified, nil
}

type feedback struct{ s *Store }

func (r feedback) Create(_ context.Context, f *models.Feedback) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
	}
	r.s.feedback = append(r.s.feedback, *f)
	return nil
}

package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/moodify/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUsers_CreateRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Users().Create(ctx, &models.User{Username: "alice"}))
	err := s.Users().Create(ctx, &models.User{Username: "alice"})
	assert.ErrorIs(t, err, models.ErrUsernameTaken)
}

func TestUsers_UpdateUsernameConflict(t *testing.T) {
	ctx := context.Background()
	s := New()
	a := &models.User{Username: "alice"}
	b := &models.User{Username: "bob"}
	require.NoError(t, s.Users().Create(ctx, a))
	require.NoError(t, s.Users().Create(ctx, b))

	name := "alice"
	assert.ErrorIs(t, s.Users().Update(ctx, b.ID, models.UserUpdate{Username: &name}), models.ErrUsernameTaken)
	assert.ErrorIs(t, s.Users().Update(ctx, primitive.NewObjectID(), models.UserUpdate{}), models.ErrUserNotFound)
}

func TestUsers_LikedSongsAreASet(t *testing.T) {
	ctx := context.Background()
	s := New()
	u := &models.User{Username: "alice"}
	require.NoError(t, s.Users().Create(ctx, u))

	require.NoError(t, s.Users().SetLikedSong(ctx, u.ID, "happy_pop_1", true))
	require.NoError(t, s.Users().SetLikedSong(ctx, u.ID, "happy_pop_1", true))
	got, err := s.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"happy_pop_1"}, got.LikedSongs)

	require.NoError(t, s.Users().SetLikedSong(ctx, u.ID, "happy_pop_1", false))
	got, err = s.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, got.LikedSongs)
}

func TestMoods_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := New()
	uid := primitive.NewObjectID()
	base := time.Now()
	for i, label := range []string{"sad", "happy", "calm"} {
		require.NoError(t, s.Moods().Create(ctx, &models.MoodEntry{
			UserID:     uid,
			Categories: []string{label},
			Timestamp:  base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, s.Moods().Create(ctx, &models.MoodEntry{UserID: primitive.NewObjectID(), Categories: []string{"fear"}}))

	all, err := s.Moods().ListByUser(ctx, uid, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "calm", all[0].Primary())
	assert.Equal(t, "sad", all[2].Primary())

	two, err := s.Moods().ListByUser(ctx, uid, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func TestPlaylists_OwnerScopedMutations(t *testing.T) {
	ctx := context.Background()
	s := New()
	owner := primitive.NewObjectID()
	p := &models.Playlist{UserID: owner, Name: "mix", Songs: []models.Song{{ID: "a"}, {ID: "b"}}}
	require.NoError(t, s.Playlists().Create(ctx, p))

	assert.ErrorIs(t, s.Playlists().Rename(ctx, primitive.NewObjectID(), p.ID, "x"), models.ErrPlaylistNotFound)
	require.NoError(t, s.Playlists().Rename(ctx, owner, p.ID, "renamed"))

	n, err := s.Playlists().PullSong(ctx, owner, "a")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := s.Playlists().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)
	assert.Equal(t, []models.Song{{ID: "b"}}, got.Songs)

	require.NoError(t, s.Playlists().Delete(ctx, owner, p.ID))
	assert.ErrorIs(t, s.Playlists().Delete(ctx, owner, p.ID), models.ErrPlaylistNotFound)
}

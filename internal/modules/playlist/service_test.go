package playlist

import (
	"context"
	"fmt"
	"testing"

	"github.com/moodify/core/internal/models"
	"github.com/moodify/core/internal/modules/catalog"
	"github.com/moodify/core/internal/repository/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (*Service, primitive.ObjectID) {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	store := memstore.New()
	u := &models.User{Username: "alice"}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return NewService(store, cat, 5, zap.NewNop()), u.ID
}

func happyPop(ids ...string) *CreateDTO {
	refs := make([]SongRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, SongRef{ID: id})
	}
	return &CreateDTO{Name: "Sunny", Mood: "happy", Genre: "pop", Songs: refs}
}

func TestCreate_StoresCatalogCopies(t *testing.T) {
	svc, uid := newTestService(t)

	p, err := svc.Create(context.Background(), uid, happyPop("happy-pop-1", "happy-pop-4", "happy-pop-1"))
	require.NoError(t, err)
	require.Len(t, p.Songs, 2)
	assert.Equal(t, "Good as Hell", p.Songs[0].Name)
	assert.Equal(t, "Pharrell Williams", p.Songs[1].Artist)
	assert.Equal(t, "pop", p.Genre)
}

func TestCreate_Validation(t *testing.T) {
	svc, uid := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, uid, happyPop())
	assert.ErrorIs(t, err, models.ErrEmptyPlaylist)

	_, err = svc.Create(ctx, uid, happyPop("sad-pop-1"))
	assert.ErrorIs(t, err, models.ErrSongNotInCatalog)

	dto := happyPop("happy-pop-1")
	dto.Mood = "hangry"
	_, err = svc.Create(ctx, uid, dto)
	assert.ErrorIs(t, err, models.ErrInvalidMood)

	dto = happyPop("happy-pop-1")
	dto.Genre = "polka"
	_, err = svc.Create(ctx, uid, dto)
	assert.ErrorIs(t, err, models.ErrValidation)

	dto = happyPop("happy-pop-1")
	dto.Name = "  "
	_, err = svc.Create(ctx, uid, dto)
	assert.ErrorIs(t, err, models.ErrValidation)

	lists, err := svc.List(ctx, uid)
	require.NoError(t, err)
	assert.Empty(t, lists, "rejected saves must not write")
}

func TestCreate_AnyGenreWhenEmpty(t *testing.T) {
	svc, uid := newTestService(t)
	dto := &CreateDTO{Name: "Mixed", Mood: "happy", Songs: []SongRef{{ID: "happy-pop-2"}, {ID: "happy-rock-1"}}}

	p, err := svc.Create(context.Background(), uid, dto)
	require.NoError(t, err)
	assert.Len(t, p.Songs, 2)
	assert.Empty(t, p.Genre)
}

func TestCreate_LimitPerUser(t *testing.T) {
	svc, uid := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		dto := happyPop("happy-pop-1")
		dto.Name = fmt.Sprintf("list %d", i)
		_, err := svc.Create(ctx, uid, dto)
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, uid, happyPop("happy-pop-1"))
	assert.ErrorIs(t, err, models.ErrPlaylistLimit)
	assert.Equal(t, "you can only save up to 5 playlists", err.Error())
}

func TestCreate_ConfiguredLimit(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	store := memstore.New()
	u := &models.User{Username: "alice"}
	require.NoError(t, store.Users().Create(context.Background(), u))
	svc := NewService(store, cat, 2, zap.NewNop())

	for i := 0; i < 2; i++ {
		dto := happyPop("happy-pop-1")
		dto.Name = fmt.Sprintf("list %d", i)
		_, err := svc.Create(context.Background(), u.ID, dto)
		require.NoError(t, err)
	}
	_, err = svc.Create(context.Background(), u.ID, happyPop("happy-pop-1"))
	assert.ErrorIs(t, err, models.ErrPlaylistLimit)
	assert.Equal(t, "you can only save up to 2 playlists", err.Error())
}

func TestGet_OwnerOnly(t *testing.T) {
	svc, uid := newTestService(t)
	ctx := context.Background()
	p, err := svc.Create(ctx, uid, happyPop("happy-pop-1"))
	require.NoError(t, err)

	got, err := svc.Get(ctx, uid, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = svc.Get(ctx, primitive.NewObjectID(), p.ID)
	assert.ErrorIs(t, err, models.ErrPlaylistNotFound)
}

func TestRenameAndDelete(t *testing.T) {
	svc, uid := newTestService(t)
	ctx := context.Background()
	p, err := svc.Create(ctx, uid, happyPop("happy-pop-1"))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Rename(ctx, uid, p.ID, " "), models.ErrValidation)
	require.NoError(t, svc.Rename(ctx, uid, p.ID, "Renamed"))
	got, err := svc.Get(ctx, uid, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)

	require.NoError(t, svc.Delete(ctx, uid, p.ID))
	assert.ErrorIs(t, svc.Delete(ctx, uid, p.ID), models.ErrPlaylistNotFound)
	assert.ErrorIs(t, svc.Rename(ctx, uid, primitive.NewObjectID(), "x"), models.ErrPlaylistNotFound)
}

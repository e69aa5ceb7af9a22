package feedback

import (
	"context"
	"strings"
	"testing"

	"github.com/moodify/core/internal/models"
	"github.com/moodify/core/internal/repository/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	u := &models.User{Username: "erin"}
	require.NoError(t, store.Users().Create(ctx, u))
	svc := NewService(store, zap.NewNop())

	rating := 4
	f, err := svc.Submit(ctx, u.ID, "", &SubmitDTO{Message: "  love the playlists ", Subject: "hi", Rating: &rating})
	require.NoError(t, err)
	assert.False(t, f.ID.IsZero())
	assert.Equal(t, "erin", f.Username, "username falls back to the user record")
	assert.Equal(t, "love the playlists", f.Message)

	entries := store.FeedbackEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, 4, *entries[0].Rating)
}

func TestSubmit_Validation(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := NewService(store, zap.NewNop())
	u := &models.User{Username: "frank"}
	require.NoError(t, store.Users().Create(ctx, u))

	bad := 9
	cases := map[string]*SubmitDTO{
		"blank":      {Message: "   "},
		"long":       {Message: strings.Repeat("x", maxMessageLen+1)},
		"rating":     {Message: "ok", Rating: &bad},
		"subjectLen": {Message: "ok", Subject: strings.Repeat("s", maxSubjectLen+1)},
	}
	for name, dto := range cases {
		_, err := svc.Submit(ctx, u.ID, "frank", dto)
		assert.ErrorIs(t, err, models.ErrValidation, name)
	}
	assert.Empty(t, store.FeedbackEntries())
}

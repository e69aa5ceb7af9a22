package mood

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moodify/core/internal/models"
	"github.com/moodify/core/internal/modules/mood/classifier"
	"github.com/moodify/core/internal/repository"
	"github.com/moodify/core/internal/repository/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fixture struct {
	svc   *Service
	store *memstore.Store
	user  *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	detector := classifier.NewDetector(classifier.NewLLMWithCompleter(nil, 0, nil))
	svc := NewService(store, detector, zap.NewNop())

	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	u := &models.User{Username: "alice", CreatedAt: clock}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return &fixture{svc: svc, store: store, user: u}
}

func TestManual_ClassifiesAndRecords(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec, err := f.svc.Manual(ctx, f.user.ID, "I feel so happy and excited today", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"happy"}, rec.Entry.Categories)
	assert.Equal(t, models.DefaultIntensity, rec.Entry.Intensity)
	assert.Equal(t, models.SourceManual, rec.Entry.Source)
	assert.Equal(t, []string{"happy"}, rec.TopMoods)

	u, err := f.store.Users().GetByID(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, "happy", u.CurrentMood)
	require.NotNil(t, u.LastMoodID)
	assert.Equal(t, rec.Entry.ID, *u.LastMoodID)
	assert.Equal(t, []string{"happy"}, u.TopMoods)
}

func TestManual_ClampsIntensity(t *testing.T) {
	f := newFixture(t)
	rec, err := f.svc.Manual(context.Background(), f.user.ID, "gloomy", 42)
	require.NoError(t, err)
	assert.Equal(t, models.MaxIntensity, rec.Entry.Intensity)
}

func TestManual_RejectsBlank(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Manual(context.Background(), f.user.ID, "   ", 3)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestManual_UnknownUser(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Manual(context.Background(), primitive.NewObjectID(), "calm", 3)
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestDetected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec, err := f.svc.Detected(ctx, f.user.ID, "Fear")
	require.NoError(t, err)
	assert.Equal(t, "fear", rec.Entry.Primary())
	assert.Equal(t, models.SourceAI, rec.Entry.Source)

	rec, err = f.svc.Detected(ctx, f.user.ID, "feeling pretty serene")
	require.NoError(t, err)
	assert.Equal(t, "calm", rec.Entry.Primary())
}

func TestTopMoodsAfterSubmissions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Oldest to newest; the aggregator sees them newest first.
	for _, label := range []string{"sad", "angry", "happy", "sad", "sad"} {
		_, err := f.svc.Record(ctx, f.user.ID, label, []string{label}, 5, models.SourceManual)
		require.NoError(t, err)
	}

	top, err := f.svc.TopMoods(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"sad", "happy", "angry"}, top)

	_, err = f.svc.TopMoods(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestRecord_RejectsUnknownLabel(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Record(context.Background(), f.user.ID, "x", []string{"hangry"}, 5, models.SourceManual)
	assert.ErrorIs(t, err, models.ErrInvalidMood)
}

func TestHistory_LimitsAndOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, d := range []string{"calm", "pumped", "gloomy"} {
		_, err := f.svc.Manual(ctx, f.user.ID, d, 5)
		require.NoError(t, err)
	}

	got, err := f.svc.History(ctx, f.user.ID, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "gloomy", got[0].Description)
	assert.Equal(t, "pumped", got[1].Description)
}

func TestClassify(t *testing.T) {
	f := newFixture(t)
	label, err := f.svc.Classify(context.Background(), "so determined today")
	require.NoError(t, err)
	assert.Equal(t, "focused", label)

	_, err = f.svc.Classify(context.Background(), " ")
	assert.ErrorIs(t, err, models.ErrValidation)
}

// failingTopMoods makes the cache write fail to check the submission still succeeds.
type failingTopMoods struct {
	repository.UserRepository
}

func (failingTopMoods) SetTopMoods(context.Context, primitive.ObjectID, []string) error {
	return errors.New("write conflict")
}

func TestRecord_CacheFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.svc.users = failingTopMoods{f.store.Users()}

	rec, err := f.svc.Manual(context.Background(), f.user.ID, "gloomy", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"sad"}, rec.TopMoods)

	u, err := f.store.Users().GetByID(context.Background(), f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, u.TopMoods)
}

func TestReconcileTopMoods(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.svc.users = failingTopMoods{f.store.Users()}
	_, err := f.svc.Manual(ctx, f.user.ID, "gloomy", 5)
	require.NoError(t, err)

	f.svc.users = f.store.Users()
	n, err := f.svc.ReconcileTopMoods(ctx, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	u, err := f.store.Users().GetByID(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"sad"}, u.TopMoods)
}

package media

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/moodify/core/internal/models"
	"github.com/moodify/core/internal/modules/mood"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeAnalyzer struct {
	scores Scores
	err    error
}

func (f fakeAnalyzer) Analyze(context.Context, Kind, string, []byte) (Scores, error) {
	return f.scores, f.err
}

type fakeArchive struct {
	keys []string
	err  error
}

func (f *fakeArchive) Put(_ context.Context, key string, _ []byte, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	return "s3://bucket/" + key, nil
}

type fakeRecorder struct {
	calls      int
	err        error
	categories []string
	intensity  int
	source     models.MoodSource
}

func (f *fakeRecorder) Record(_ context.Context, userID primitive.ObjectID, _ string, categories []string, intensity int, source models.MoodSource) (*mood.Recorded, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	f.categories, f.intensity, f.source = categories, intensity, source
	return &mood.Recorded{
		Entry:    &models.MoodEntry{ID: primitive.NewObjectID(), UserID: userID, Categories: categories},
		TopMoods: categories,
	}, nil
}

func TestMapLabel(t *testing.T) {
	assert.Equal(t, models.MoodAngry, MapLabel("disgust"))
	assert.Equal(t, models.MoodHappy, MapLabel("Surprise"))
	assert.Equal(t, models.MoodFear, MapLabel("fear"))
	assert.Equal(t, models.MoodNeutral, MapLabel("contempt"))
}

func TestDominant(t *testing.T) {
	assert.Equal(t, models.MoodAngry, Dominant(Fold(Scores{"angry": 10, "disgust": 10, "sad": 15})))
	assert.Equal(t, models.MoodHappy, Dominant(map[string]float64{"sad": 2, "happy": 2}))
	assert.Equal(t, models.MoodNeutral, Dominant(nil))
}

func TestAnalyze_RecordsAndArchives(t *testing.T) {
	rec := &fakeRecorder{}
	archive := &fakeArchive{}
	svc := NewService(fakeAnalyzer{scores: Scores{"sad": 80, "neutral": 20}}, archive, rec, zap.NewNop())
	uid := primitive.NewObjectID()

	res, err := svc.Analyze(context.Background(), uid, Upload{Kind: KindImage, Filename: "Selfie.PNG", Payload: []byte("x")})
	require.NoError(t, err)
	assert.Equal(t, models.MoodSad, res.Mood)
	assert.Equal(t, []string{models.MoodSad}, rec.categories)
	assert.Equal(t, 8, rec.intensity)
	assert.Equal(t, models.SourceMedia, rec.source)
	require.Len(t, archive.keys, 1)
	assert.True(t, strings.HasPrefix(archive.keys[0], "media/"+uid.Hex()+"/"))
	assert.True(t, strings.HasSuffix(archive.keys[0], ".png"))
	assert.Equal(t, archive.keys[0], res.ArchiveKey)
}

func TestAnalyze_ArchiveFailureIsNotFatal(t *testing.T) {
	svc := NewService(fakeAnalyzer{scores: Scores{"happy": 1}}, &fakeArchive{err: errors.New("denied")}, &fakeRecorder{}, zap.NewNop())

	res, err := svc.Analyze(context.Background(), primitive.NewObjectID(), Upload{Kind: KindImage, Filename: "a.jpg", Payload: []byte("x")})
	require.NoError(t, err)
	assert.Empty(t, res.ArchiveKey)
	assert.Equal(t, models.MoodHappy, res.Mood)
}

func TestAnalyze_Unavailable(t *testing.T) {
	svc := NewService(nil, nil, &fakeRecorder{}, zap.NewNop())
	_, err := svc.Analyze(context.Background(), primitive.NewObjectID(), Upload{Payload: []byte("x")})
	assert.ErrorIs(t, err, models.ErrUnavailable)

	svc = NewService(fakeAnalyzer{err: errors.New("timeout")}, nil, &fakeRecorder{}, zap.NewNop())
	_, err = svc.Analyze(context.Background(), primitive.NewObjectID(), Upload{Kind: KindVideo, Payload: []byte("x")})
	assert.ErrorIs(t, err, models.ErrUnavailable)
}

func TestAnalyze_NoEmotionDetected(t *testing.T) {
	for name, scores := range map[string]Scores{
		"empty": {},
		"zero":  {"happy": 0, "sad": 0},
	} {
		t.Run(name, func(t *testing.T) {
			rec := &fakeRecorder{}
			archive := &fakeArchive{}
			svc := NewService(fakeAnalyzer{scores: scores}, archive, rec, zap.NewNop())

			_, err := svc.Analyze(context.Background(), primitive.NewObjectID(), Upload{Kind: KindImage, Filename: "a.jpg", Payload: []byte("x")})
			assert.ErrorIs(t, err, models.ErrValidation)
			assert.Zero(t, rec.calls)
			assert.Empty(t, archive.keys)
		})
	}
}

func TestAnalyze_RecordFailureSkipsArchive(t *testing.T) {
	rec := &fakeRecorder{err: models.ErrUserNotFound}
	archive := &fakeArchive{}
	svc := NewService(fakeAnalyzer{scores: Scores{"happy": 3}}, archive, rec, zap.NewNop())

	_, err := svc.Analyze(context.Background(), primitive.NewObjectID(), Upload{Kind: KindImage, Filename: "a.jpg", Payload: []byte("x")})
	assert.ErrorIs(t, err, models.ErrUserNotFound)
	assert.Equal(t, 1, rec.calls)
	assert.Empty(t, archive.keys)
}

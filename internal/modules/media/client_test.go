package media

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	appcfg "github.com/moodify/core/internal/config"
	"github.com/moodify/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func emotionServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request, payload []byte)) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, _, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		payload, _ := io.ReadAll(f)
		handler(w, r, payload)
	}))
	t.Cleanup(srv.Close)
	return NewClient(appcfg.EmotionConfig{BaseURL: srv.URL + "/"})
}

func TestClient_Image(t *testing.T) {
	c := emotionServer(t, func(w http.ResponseWriter, r *http.Request, payload []byte) {
		assert.Equal(t, "/analyze-image", r.URL.Path)
		assert.Equal(t, "png-bytes", string(payload))
		_, _ = io.WriteString(w, `{"top_emotions": [["sad", 70.5], ["fear", 20], ["neutral", 9.5]]}`)
	})

	scores, err := c.Analyze(context.Background(), KindImage, "face.png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, Scores{"sad": 70.5, "fear": 20, "neutral": 9.5}, scores)
}

func TestClient_ImageBareLabel(t *testing.T) {
	c := emotionServer(t, func(w http.ResponseWriter, _ *http.Request, _ []byte) {
		_, _ = io.WriteString(w, `{"top_emotions": "surprise"}`)
	})

	scores, err := c.Analyze(context.Background(), KindImage, "face.jpg", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, Scores{"surprise": 1}, scores)
}

func TestClient_NoFace(t *testing.T) {
	c := emotionServer(t, func(w http.ResponseWriter, _ *http.Request, _ []byte) {
		_, _ = io.WriteString(w, `{"top_emotions": []}`)
	})

	scores, err := c.Analyze(context.Background(), KindImage, "face.jpg", []byte("x"))
	require.NoError(t, err)
	assert.Empty(t, scores)

	svc := NewService(c, nil, &fakeRecorder{}, zap.NewNop())
	_, err = svc.Analyze(context.Background(), primitive.NewObjectID(), Upload{Kind: KindImage, Filename: "face.jpg", Payload: []byte("x")})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestClient_Video(t *testing.T) {
	c := emotionServer(t, func(w http.ResponseWriter, r *http.Request, _ []byte) {
		assert.Equal(t, "/analyze-video", r.URL.Path)
		_, _ = io.WriteString(w, `{"weighted_emotions": {"angry": 12.5, "disgust": 3}}`)
	})

	scores, err := c.Analyze(context.Background(), KindVideo, "clip.mp4", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, Scores{"angry": 12.5, "disgust": 3}, scores)
}

func TestClient_ServiceError(t *testing.T) {
	c := emotionServer(t, func(w http.ResponseWriter, _ *http.Request, _ []byte) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error": "no face"}`)
	})

	_, err := c.Analyze(context.Background(), KindImage, "face.png", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no face")
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("", "video/mp4")
	assert.True(t, ok)
	assert.Equal(t, KindVideo, k)

	k, ok = ParseKind("IMAGE", "application/octet-stream")
	assert.True(t, ok)
	assert.Equal(t, KindImage, k)

	_, ok = ParseKind("", "application/pdf")
	assert.False(t, ok)
}

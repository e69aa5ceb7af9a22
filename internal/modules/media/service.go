package media

import (
	"context"
	"fmt"
	"math"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/moodify/core/internal/models"
	"github.com/moodify/core/internal/modules/mood"
	"github.com/moodify/core/internal/pkg/objectstore"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type recorder interface {
	Record(ctx context.Context, userID primitive.ObjectID, description string, categories []string, intensity int, source models.MoodSource) (*mood.Recorded, error)
}

type Upload struct {
	Kind        Kind
	Filename    string
	ContentType string
	Payload     []byte
}

type Result struct {
	Mood       string             `json:"mood"`
	Emotions   map[string]float64 `json:"emotions"`
	MoodID     string             `json:"moodId"`
	TopMoods   []string           `json:"topMoods"`
	ArchiveKey string             `json:"archiveKey,omitempty"`
}

type Service struct {
	analyzer Analyzer
	archive  objectstore.Store
	moods    recorder
	log      *zap.Logger
}

// NewService wires media analysis. A nil analyzer disables the feature; a nil
// archive skips object storage.
func NewService(analyzer Analyzer, archive objectstore.Store, moods recorder, log *zap.Logger) *Service {
	return &Service{analyzer: analyzer, archive: archive, moods: moods, log: log.Named("media")}
}

func (s *Service) Enabled() bool { return s.analyzer != nil }

func (s *Service) Analyze(ctx context.Context, userID primitive.ObjectID, up Upload) (*Result, error) {
	if s.analyzer == nil {
		return nil, fmt.Errorf("%w: media analysis is not configured", models.ErrUnavailable)
	}
	if len(up.Payload) == 0 {
		return nil, fmt.Errorf("%w: file is empty", models.ErrValidation)
	}

	scores, err := s.analyzer.Analyze(ctx, up.Kind, up.Filename, up.Payload)
	if err != nil {
		s.log.Warn("emotion analysis failed", zap.String("kind", string(up.Kind)), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrUnavailable, err)
	}
	folded := Fold(scores)
	if totalWeight(folded) <= 0 {
		return nil, fmt.Errorf("%w: no emotion detected in the upload", models.ErrValidation)
	}
	label := Dominant(folded)

	rec, err := s.moods.Record(ctx, userID, "media:"+string(up.Kind), []string{label}, intensity(folded, label), models.SourceMedia)
	if err != nil {
		return nil, err
	}

	res := &Result{Mood: label, Emotions: folded}
	if s.archive != nil {
		key := archiveKey(userID, up.Filename)
		if _, err := s.archive.Put(ctx, key, up.Payload, up.ContentType); err != nil {
			s.log.Warn("archive upload", zap.String("key", key), zap.Error(err))
		} else {
			res.ArchiveKey = key
		}
	}
	res.MoodID = rec.Entry.ID.Hex()
	res.TopMoods = rec.TopMoods
	return res, nil
}

// intensity scales the dominant share of the total weight onto 1..10.
func intensity(folded map[string]float64, label string) int {
	total := totalWeight(folded)
	if total <= 0 {
		return models.DefaultIntensity
	}
	return models.ClampIntensity(int(math.Round(folded[label] / total * models.MaxIntensity)))
}

func totalWeight(folded map[string]float64) float64 {
	var total float64
	for _, v := range folded {
		total += v
	}
	return total
}

func archiveKey(userID primitive.ObjectID, filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(filename, "\\", "/"))))
	if len(ext) > 8 {
		ext = ""
	}
	return "media/" + userID.Hex() + "/" + uuid.NewString() + ext
}

package mood

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/moodify/core/internal/models"
	"github.com/moodify/core/internal/modules/mood/classifier"
	"github.com/moodify/core/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	maxDescriptionLen = 2000
	defaultHistory    = 10
	maxHistory        = 100
)

type Service struct {
	users    repository.UserRepository
	moods    repository.MoodRepository
	detector *classifier.Detector
	log      *zap.Logger
	now      func() time.Time
}

func NewService(store repository.Store, detector *classifier.Detector, log *zap.Logger) *Service {
	return &Service{
		users:    store.Users(),
		moods:    store.Moods(),
		detector: detector,
		log:      log.Named("mood"),
		now:      time.Now,
	}
}

// Recorded is the outcome of a mood submission.
type Recorded struct {
	Entry    *models.MoodEntry
	TopMoods []string
}

// Manual classifies a typed description with the synonym table and records it.
func (s *Service) Manual(ctx context.Context, userID primitive.ObjectID, description string, intensity int) (*Recorded, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("%w: mood description is required", models.ErrValidation)
	}
	if len(description) > maxDescriptionLen {
		return nil, fmt.Errorf("%w: mood description is too long", models.ErrValidation)
	}
	return s.Record(ctx, userID, description, classifier.Classify(description), intensity, models.SourceManual)
}

// Detected records a label produced by an external classifier. Free text that is
// not a label is classified here first.
func (s *Service) Detected(ctx context.Context, userID primitive.ObjectID, detected string) (*Recorded, error) {
	detected = strings.TrimSpace(detected)
	if detected == "" {
		return nil, fmt.Errorf("%w: detectedMood is required", models.ErrValidation)
	}
	label := strings.ToLower(detected)
	if !models.IsKnownMood(label) {
		label = s.detector.Detect(ctx, detected)
	}
	return s.Record(ctx, userID, detected, []string{label}, 0, models.SourceAI)
}

// Classify maps free text to a single label without recording anything.
func (s *Service) Classify(ctx context.Context, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%w: input is required", models.ErrValidation)
	}
	if len(input) > maxDescriptionLen {
		return "", fmt.Errorf("%w: input is too long", models.ErrValidation)
	}
	return s.detector.Detect(ctx, input), nil
}

// Record stores a mood entry, stamps it on the user and refreshes the cached top moods.
// The cache refresh is best effort; the entry is the source of truth.
func (s *Service) Record(ctx context.Context, userID primitive.ObjectID, description string, categories []string, intensity int, source models.MoodSource) (*Recorded, error) {
	for _, c := range categories {
		if !models.IsKnownMood(c) {
			return nil, fmt.Errorf("%w: %q", models.ErrInvalidMood, c)
		}
	}
	if len(categories) == 0 {
		categories = []string{models.MoodNeutral}
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	entry := &models.MoodEntry{
		UserID:      userID,
		Description: description,
		Categories:  categories,
		Intensity:   models.ClampIntensity(intensity),
		Source:      source,
		Timestamp:   s.now().UTC(),
	}
	if err := s.moods.Create(ctx, entry); err != nil {
		return nil, err
	}
	if err := s.users.RecordMood(ctx, userID, entry); err != nil {
		s.log.Warn("stamp current mood", zap.String("user_id", userID.Hex()), zap.Error(err))
	}

	top, err := s.RefreshTopMoods(ctx, userID)
	if err != nil {
		s.log.Warn("refresh top moods", zap.String("user_id", userID.Hex()), zap.Error(err))
	}
	return &Recorded{Entry: entry, TopMoods: top}, nil
}

// TopMoods recomputes and caches the top moods of an existing user.
func (s *Service) TopMoods(ctx context.Context, userID primitive.ObjectID) ([]string, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.RefreshTopMoods(ctx, userID)
}

// RefreshTopMoods recomputes the top three labels from the full history and caches them
// on the user. The computed list is returned even when caching fails.
func (s *Service) RefreshTopMoods(ctx context.Context, userID primitive.ObjectID) ([]string, error) {
	entries, err := s.moods.ListByUser(ctx, userID, 0)
	if err != nil {
		return []string{}, err
	}
	top := classifier.TopMoods(entries, classifier.DefaultTopN)
	if err := s.users.SetTopMoods(ctx, userID, top); err != nil {
		s.log.Warn("persist top moods", zap.String("user_id", userID.Hex()), zap.Error(err))
	}
	return top, nil
}

// History returns the user's latest entries, newest first.
func (s *Service) History(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.MoodEntry, error) {
	switch {
	case limit <= 0:
		limit = defaultHistory
	case limit > maxHistory:
		limit = maxHistory
	}
	return s.moods.ListByUser(ctx, userID, limit)
}

// ReconcileTopMoods recomputes the cache for every user active since the cutoff,
// healing updates that failed after their mood entry was written.
func (s *Service) ReconcileTopMoods(ctx context.Context, since time.Time) (int, error) {
	ids, err := s.users.ListActiveSince(ctx, since)
	if err != nil {
		return 0, err
	}
	done := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		entries, err := s.moods.ListByUser(ctx, id, 0)
		if err != nil {
			s.log.Warn("reconcile: list moods", zap.String("user_id", id.Hex()), zap.Error(err))
			continue
		}
		if err := s.users.SetTopMoods(ctx, id, classifier.TopMoods(entries, classifier.DefaultTopN)); err != nil {
			s.log.Warn("reconcile: set top moods", zap.String("user_id", id.Hex()), zap.Error(err))
			continue
		}
		done++
	}
	return done, nil
}

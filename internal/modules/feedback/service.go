package feedback

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/moodify/core/internal/models"
	"github.com/moodify/core/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	maxMessageLen = 4000
	maxSubjectLen = 200
)

type Service struct {
	users    repository.UserRepository
	feedback repository.FeedbackRepository
	log      *zap.Logger
	now      func() time.Time
}

func NewService(store repository.Store, log *zap.Logger) *Service {
	return &Service{
		users:    store.Users(),
		feedback: store.Feedback(),
		log:      log.Named("feedback"),
		now:      time.Now,
	}
}

// Submit stores a feedback message. username may be empty, in which case it
// is read from the user record.
func (s *Service) Submit(ctx context.Context, userID primitive.ObjectID, username string, dto *SubmitDTO) (*models.Feedback, error) {
	message := strings.TrimSpace(dto.Message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", models.ErrValidation)
	}
	if utf8.RuneCountInString(message) > maxMessageLen {
		return nil, fmt.Errorf("%w: message is too long", models.ErrValidation)
	}
	subject := strings.TrimSpace(dto.Subject)
	if utf8.RuneCountInString(subject) > maxSubjectLen {
		return nil, fmt.Errorf("%w: subject is too long", models.ErrValidation)
	}
	if dto.Rating != nil && (*dto.Rating < 1 || *dto.Rating > 5) {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", models.ErrValidation)
	}

	if username == "" {
		u, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		username = u.Username
	}

	f := &models.Feedback{
		UserID:      userID,
		Username:    username,
		Message:     message,
		Subject:     subject,
		Rating:      dto.Rating,
		SubmittedAt: s.now().UTC(),
	}
	if err := s.feedback.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("store feedback: %w", err)
	}
	s.log.Info("feedback received", zap.String("user_id", userID.Hex()), zap.String("subject", subject))
	return f, nil
}

package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/moodify/core/internal/models"
	"github.com/moodify/core/internal/pkg/jwt"
	"github.com/moodify/core/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	users  repository.UserRepository
	issuer *jwt.Issuer
	log    *zap.Logger
	cost   int
	now    func() time.Time
}

func NewService(users repository.UserRepository, issuer *jwt.Issuer, log *zap.Logger) *Service {
	return &Service{
		users:  users,
		issuer: issuer,
		log:    log.Named("user"),
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
	}
}

// Signup creates an account with a bcrypt-hashed password.
func (s *Service) Signup(ctx context.Context, dto *SignupDTO) (*models.User, error) {
	username := normalizeUsername(dto.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", models.ErrValidation)
	}
	hash, err := hashPassword(dto.Password, s.cost)
	if err != nil {
		return nil, err
	}
	now := s.now()
	u := &models.User{
		Username:     username,
		Password:     hash,
		CreatedAt:    now,
		LastActivity: &now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("user signed up", zap.String("user_id", u.ID.Hex()))
	return u, nil
}

// Login verifies credentials and issues a session token.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, dto *LoginDTO) (*LoginResponse, error) {
	u, err := s.users.GetByUsername(ctx, normalizeUsername(dto.Username))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(dto.Password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	token, expires, err := s.issuer.Sign(u.ID.Hex(), u.Username)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	if err := s.users.Touch(ctx, u.ID, s.now()); err != nil {
		s.log.Warn("record login activity", zap.String("user_id", u.ID.Hex()), zap.Error(err))
	}

	return &LoginResponse{
		UserID:    u.ID.Hex(),
		Username:  u.Username,
		JoinDate:  u.CreatedAt,
		TopMoods:  u.TopMoods,
		Token:     token,
		ExpiresAt: expires,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfile applies a username and/or password change. It reports false when
// the submitted values equal the stored ones.
func (s *Service) UpdateProfile(ctx context.Context, id primitive.ObjectID, dto *UpdateUserDTO) (bool, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return false, err
	}

	var update models.UserUpdate
	if name := normalizeUsername(dto.Username); name != "" && name != u.Username {
		taken, err := s.usernameTaken(ctx, name)
		if err != nil {
			return false, err
		}
		if taken {
			return false, models.ErrUsernameTaken
		}
		update.Username = &name
	}
	if dto.Password != "" && !samePassword(u.Password, dto.Password) {
		hashed, err := hashPassword(dto.Password, s.cost)
		if err != nil {
			return false, err
		}
		update.PasswordHash = &hashed
	}

	if update.Empty() {
		return false, nil
	}
	if err := s.users.Update(ctx, id, update); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) usernameTaken(ctx context.Context, username string) (bool, error) {
	_, err := s.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, models.ErrUserNotFound):
		return false, nil
	default:
		return false, err
	}
}

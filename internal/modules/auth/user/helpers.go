package user

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/unicode/norm"

	"github.com/moodify/core/internal/models"
)

// bcrypt only reads the first 72 bytes of a password.
const maxPasswordBytes = 72

func hashPassword(plain string, cost int) (string, error) {
	if len(plain) > maxPasswordBytes {
		return "", fmt.Errorf("%w: password must be at most %d bytes", models.ErrValidation, maxPasswordBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func samePassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// normalizeUsername trims and NFC-normalizes so composed and decomposed forms
// of the same name collide on the unique index.
func normalizeUsername(raw string) string {
	return norm.NFC.String(strings.TrimSpace(raw))
}

func toProfile(u *models.User) profileResponse {
	return profileResponse{
		UserID:       u.ID.Hex(),
		Username:     u.Username,
		JoinDate:     u.CreatedAt,
		LastActivity: u.LastActivity,
		CurrentMood:  u.CurrentMood,
		TopMoods:     u.TopMoods,
		LikedSongs:   u.LikedSongs,
	}
}

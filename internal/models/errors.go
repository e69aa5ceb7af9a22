package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrPlaylistNotFound   = errors.New("playlist not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("user mismatch")
	ErrInvalidID          = errors.New("invalid id")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidMood        = errors.New("invalid mood")
	ErrEmptyPlaylist      = errors.New("please select at least one song")
	ErrSongNotInCatalog   = errors.New("song is not in the catalog for this mood and genre")
	ErrPlaylistLimit      = errors.New("playlist limit reached")
	ErrUnavailable        = errors.New("service unavailable")
)

// PlaylistLimitError reports the configured per-user playlist cap. It matches ErrPlaylistLimit.
type PlaylistLimitError struct {
	Max int
}

func (e *PlaylistLimitError) Error() string {
	return fmt.Sprintf("you can only save up to %d playlists", e.Max)
}

func (e *PlaylistLimitError) Is(target error) bool { return target == ErrPlaylistLimit }

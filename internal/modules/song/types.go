package song

import (
	"time"

	"github.com/moodify/core/internal/models"
)

type LikeDTO struct {
	UserID string `json:"userId"`
	SongID string `json:"songId" binding:"required"`
	Liked  *bool  `json:"liked"`
}

type RemoveDTO struct {
	UserID string `json:"userId"`
	SongID string `json:"songId" binding:"required"`
}

type LibrarySong struct {
	models.Song
	PlaylistID    string    `json:"playlistId"`
	PlaylistName  string    `json:"playlistName"`
	PlaylistMood  string    `json:"playlistMood"`
	PlaylistGenre string    `json:"playlistGenre,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type LibraryResponse struct {
	Songs        []LibrarySong `json:"songs"`
	LikedSongIDs []string      `json:"likedSongIds"`
}

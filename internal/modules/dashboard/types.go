package dashboard

import (
	"time"

	"github.com/moodify/core/internal/models"
)

type RecentDTO struct {
	UserID string `json:"userId"`
	Limit  int    `json:"limit"`
}

type PlaylistSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Tracks    int       `json:"tracks"`
	Mood      string    `json:"mood"`
	Genre     string    `json:"genre,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type MoodSummary struct {
	ID         string            `json:"id"`
	Categories []string          `json:"categories"`
	Intensity  int               `json:"intensity"`
	Timestamp  time.Time         `json:"timestamp"`
	Source     models.MoodSource `json:"source"`
}

type MoodInsights struct {
	CurrentMood string        `json:"currentMood,omitempty"`
	RecentMoods []MoodSummary `json:"recentMoods"`
	TopMoods    []string      `json:"topMoods"`
}

type Stats struct {
	TotalPlaylists   int64 `json:"totalPlaylists"`
	TotalMoodEntries int64 `json:"totalMoodEntries"`
	LikedSongs       int   `json:"likedSongs"`
}

type Overview struct {
	Username        string            `json:"username"`
	LastActive      *time.Time        `json:"lastActive"`
	RecentPlaylists []PlaylistSummary `json:"recentPlaylists"`
	MoodInsights    MoodInsights      `json:"moodInsights"`
	Stats           Stats             `json:"stats"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Username      string              `bson:"username" json:"username"`
	Password      string              `bson:"password" json:"-"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	LastActivity  *time.Time          `bson:"lastActivity,omitempty" json:"lastActivity,omitempty"`
	CurrentMood   string              `bson:"currentMood,omitempty" json:"currentMood,omitempty"`
	LastMoodID    *primitive.ObjectID `bson:"lastMoodId,omitempty" json:"lastMoodId,omitempty"`
	MoodTimestamp *time.Time          `bson:"moodTimestamp,omitempty" json:"moodTimestamp,omitempty"`
	TopMoods      []string            `bson:"topMoods" json:"topMoods"`
	LikedSongs    []string            `bson:"likedSongs" json:"likedSongs"`
}

// Normalize fills the slice fields older documents may lack.
func (u *User) Normalize() {
	if u.TopMoods == nil {
		u.TopMoods = []string{}
	}
	if u.LikedSongs == nil {
		u.LikedSongs = []string{}
	}
}

// UserUpdate carries the optional profile changes; nil fields are left untouched.
type UserUpdate struct {
	Username     *string
	PasswordHash *string
}

func (u UserUpdate) Empty() bool {
	return u.Username == nil && u.PasswordHash == nil
}

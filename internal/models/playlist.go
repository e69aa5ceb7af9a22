package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Song is embedded in playlists and in the catalog.
type Song struct {
	ID     string `bson:"id" json:"id" yaml:"id"`
	Name   string `bson:"name" json:"name" yaml:"name"`
	Artist string `bson:"artist" json:"artist" yaml:"artist"`
	Link   string `bson:"link" json:"link" yaml:"link"`
}

type Playlist struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	Mood      string             `bson:"mood" json:"mood"`
	Genre     string             `bson:"genre,omitempty" json:"genre,omitempty"`
	Songs     []Song             `bson:"songs" json:"songs"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

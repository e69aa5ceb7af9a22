package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Feedback struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Username    string             `bson:"username" json:"username"`
	Message     string             `bson:"message" json:"message"`
	Subject     string             `bson:"subject,omitempty" json:"subject,omitempty"`
	Rating      *int               `bson:"rating,omitempty" json:"rating,omitempty"`
	SubmittedAt time.Time          `bson:"submittedAt" json:"submittedAt"`
}

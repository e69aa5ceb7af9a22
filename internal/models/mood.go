package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mood labels. The base set is what the language model and the emotion detector emit;
// the extended labels come from the synonym table.
const (
	MoodHappy     = "happy"
	MoodSad       = "sad"
	MoodAngry     = "angry"
	MoodNeutral   = "neutral"
	MoodFear      = "fear"
	MoodEnergetic = "energetic"
	MoodCalm      = "calm"
	MoodFocused   = "focused"
)

var BaseMoods = []string{MoodHappy, MoodSad, MoodAngry, MoodNeutral, MoodFear}

var ExtendedMoods = []string{MoodHappy, MoodSad, MoodEnergetic, MoodCalm, MoodFocused}

// AllMoods is the union of both label sets.
var AllMoods = []string{MoodHappy, MoodSad, MoodAngry, MoodNeutral, MoodFear, MoodEnergetic, MoodCalm, MoodFocused}

func IsKnownMood(label string) bool {
	for _, m := range AllMoods {
		if m == label {
			return true
		}
	}
	return false
}

func IsBaseMood(label string) bool {
	for _, m := range BaseMoods {
		if m == label {
			return true
		}
	}
	return false
}

type MoodSource string

const (
	SourceManual MoodSource = "manual"
	SourceAI     MoodSource = "ai"
	SourceMedia  MoodSource = "media"
)

const (
	MinIntensity     = 1
	MaxIntensity     = 10
	DefaultIntensity = 5
)

// ClampIntensity maps 0 to the default and pins everything else into 1..10.
func ClampIntensity(v int) int {
	switch {
	case v == 0:
		return DefaultIntensity
	case v < MinIntensity:
		return MinIntensity
	case v > MaxIntensity:
		return MaxIntensity
	}
	return v
}

// MoodEntry is one recorded mood submission. Categories[0] is the primary label.
type MoodEntry struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Description string             `bson:"description" json:"description"`
	Categories  []string           `bson:"categories" json:"categories"`
	Intensity   int                `bson:"intensity" json:"intensity"`
	Source      MoodSource         `bson:"source" json:"source"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
}

// Primary returns the first category, or neutral for a malformed entry.
func (m MoodEntry) Primary() string {
	if len(m.Categories) == 0 {
		return MoodNeutral
	}
	return m.Categories[0]
}

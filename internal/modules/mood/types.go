package mood

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type ManualDTO struct {
	UserID          string    `json:"userId"`
	MoodDescription string    `json:"moodDescription" binding:"required"`
	Intensity       Intensity `json:"intensity"`
}

type DetectedDTO struct {
	UserID       string `json:"userId"`
	DetectedMood string `json:"detectedMood" binding:"required"`
}

type TopMoodsDTO struct {
	UserID string `json:"userId"`
}

type ClassifyDTO struct {
	Input string `json:"input" binding:"required"`
}

type historyQuery struct {
	UserID string `form:"userId"`
	Limit  int    `form:"limit"`
}

// Intensity accepts a JSON number or a numeric string. A string that does not
// parse reads as unset and falls back to the default intensity.
type Intensity int

func (i *Intensity) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*i = 0
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*i = 0
			return nil
		}
		*i = Intensity(math.Trunc(f))
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*i = Intensity(math.Trunc(f))
	return nil
}

package media

import (
	"sort"
	"strings"

	"github.com/moodify/core/internal/models"
)

var detectorLabels = map[string]string{
	"happy":    models.MoodHappy,
	"surprise": models.MoodHappy,
	"sad":      models.MoodSad,
	"angry":    models.MoodAngry,
	"disgust":  models.MoodAngry,
	"fear":     models.MoodFear,
	"neutral":  models.MoodNeutral,
}

// MapLabel folds a detector label into the base mood set.
func MapLabel(label string) string {
	if m, ok := detectorLabels[strings.ToLower(strings.TrimSpace(label))]; ok {
		return m
	}
	return models.MoodNeutral
}

// Fold sums raw detector scores per base mood.
func Fold(scores Scores) map[string]float64 {
	out := make(map[string]float64, len(scores))
	for label, score := range scores {
		out[MapLabel(label)] += score
	}
	return out
}

// Dominant picks the highest scoring mood; ties go to the base-set order.
func Dominant(folded map[string]float64) string {
	if len(folded) == 0 {
		return models.MoodNeutral
	}
	moods := make([]string, 0, len(folded))
	for m := range folded {
		moods = append(moods, m)
	}
	sort.SliceStable(moods, func(i, j int) bool {
		if folded[moods[i]] != folded[moods[j]] {
			return folded[moods[i]] > folded[moods[j]]
		}
		return rank(moods[i]) < rank(moods[j])
	})
	return moods[0]
}

func rank(mood string) int {
	for i, m := range models.BaseMoods {
		if m == mood {
			return i
		}
	}
	return len(models.BaseMoods)
}

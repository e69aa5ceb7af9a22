package classifier

import (
	"testing"

	"github.com/moodify/core/internal/models"
	"github.com/stretchr/testify/assert"
)

func entries(labels ...string) []models.MoodEntry {
	out := make([]models.MoodEntry, 0, len(labels))
	for _, l := range labels {
		out = append(out, models.MoodEntry{Categories: []string{l}})
	}
	return out
}

func TestTopMoods(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   []string
	}{
		{"majority first", []string{"sad", "sad", "happy", "angry", "sad"}, []string{"sad", "happy", "angry"}},
		{"ties keep first seen", []string{"calm", "happy", "happy", "calm", "fear"}, []string{"calm", "happy", "fear"}},
		{"truncates to three", []string{"a", "b", "c", "d", "d"}, []string{"d", "a", "b"}},
		{"fewer than three", []string{"happy"}, []string{"happy"}},
		{"empty", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TopMoods(entries(tt.labels...), DefaultTopN))
		})
	}
}

func TestTopMoods_UsesPrimaryLabel(t *testing.T) {
	in := []models.MoodEntry{
		{Categories: []string{"calm", "happy"}},
		{Categories: []string{"happy"}},
		{Categories: []string{"calm"}},
	}
	assert.Equal(t, []string{"calm", "happy"}, TopMoods(in, 3))
}

func TestTopLabels_Properties(t *testing.T) {
	labels := []string{"sad", "happy", "sad", "fear", "fear", "fear", "calm", "happy"}
	top := TopLabels(labels, 3)

	counts := map[string]int{}
	for _, l := range labels {
		counts[l]++
	}
	assert.Len(t, top, 3)
	for i, label := range top {
		assert.Contains(t, labels, label)
		if i > 0 {
			assert.GreaterOrEqual(t, counts[top[i-1]], counts[label])
		}
	}
}

package classifier

import (
	"sort"

	"github.com/moodify/core/internal/models"
)

const DefaultTopN = 3

// TopMoods counts the primary label of each entry and returns the n most frequent.
// Entries are expected newest first; equal counts keep the order in which a label
// was first seen, so the more recent mood wins a tie.
func TopMoods(entries []models.MoodEntry, n int) []string {
	labels := make([]string, 0, len(entries))
	for _, e := range entries {
		labels = append(labels, e.Primary())
	}
	return TopLabels(labels, n)
}

// TopLabels is TopMoods over bare labels.
func TopLabels(labels []string, n int) []string {
	if n <= 0 {
		n = DefaultTopN
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, label := range labels {
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}
	return order
}

// Package classifier turns free-text mood descriptions into mood labels and
// aggregates a user's history into favourite moods.
package classifier

import (
	"regexp"
	"strings"

	"github.com/moodify/core/internal/models"
)

type synonymRow struct {
	label    string
	synonyms []string
}

// Table order is the output order when several rows match.
var synonymTable = []synonymRow{
	{models.MoodHappy, []string{"joyful", "excited", "cheerful", "upbeat", "elated"}},
	{models.MoodSad, []string{"melancholy", "down", "blue", "gloomy", "depressed"}},
	{models.MoodEnergetic, []string{"pumped", "active", "lively", "dynamic", "vigorous"}},
	{models.MoodCalm, []string{"relaxed", "peaceful", "tranquil", "serene", "mellow"}},
	{models.MoodFocused, []string{"concentrated", "determined", "productive", "studious"}},
}

type fallbackRule struct {
	label   string
	pattern *regexp.Regexp
}

// Checked in order; the first hit wins.
var fallbackRules = []fallbackRule{
	{models.MoodHappy, regexp.MustCompile(`\b(great|amazing|awesome|fantastic|wonderful|love|loving|glad|thrilled|ecstatic|delighted)\b`)},
	{models.MoodSad, regexp.MustCompile(`\b(terrible|awful|horrible|miserable|lonely|heartbroken|hopeless|cry|crying)\b`)},
	{models.MoodFear, regexp.MustCompile(`\b(fear|fearful|afraid|scared|anxious|nervous|worried|terrified|panic|panicking|frightened)\b`)},
	{models.MoodAngry, regexp.MustCompile(`\b(angry|mad|furious|annoyed|irritated|rage|hate|pissed)\b`)},
}

// Classify returns the mood labels found in text, in table order.
// It never returns an empty slice: unmatched text yields ["neutral"].
func Classify(text string) []string {
	lowered := strings.ToLower(text)

	var matched []string
	for _, row := range synonymTable {
		if rowMatches(lowered, row) {
			matched = append(matched, row.label)
		}
	}
	if len(matched) > 0 {
		return matched
	}

	for _, rule := range fallbackRules {
		if rule.pattern.MatchString(lowered) {
			return []string{rule.label}
		}
	}
	return []string{models.MoodNeutral}
}

// Primary returns the first label Classify would produce.
func Primary(text string) string {
	return Classify(text)[0]
}

func rowMatches(lowered string, row synonymRow) bool {
	if strings.Contains(lowered, row.label) {
		return true
	}
	for _, syn := range row.synonyms {
		if strings.Contains(lowered, syn) {
			return true
		}
	}
	return false
}

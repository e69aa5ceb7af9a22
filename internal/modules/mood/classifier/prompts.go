package classifier

import (
	"strings"

	"github.com/moodify/core/internal/models"
)

func systemPrompt() string {
	return "You are a mood classifier. Read the user's message and respond with ONLY ONE WORD from: " +
		strings.Join(models.BaseMoods, ", ") +
		". Do not explain, do not add punctuation."
}

func userPrompt(input string) string {
	return "Classify the mood of this message:\n\n" + input
}

// parseLabel accepts replies like "Happy." or "**sad**" and rejects anything
// outside the base label set.
func parseLabel(raw string) (string, bool) {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	cleaned = strings.TrimFunc(cleaned, func(r rune) bool {
		return !(r >= 'a' && r <= 'z')
	})
	if models.IsBaseMood(cleaned) {
		return cleaned, true
	}
	return "", false
}

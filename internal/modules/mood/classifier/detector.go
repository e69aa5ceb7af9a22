package classifier

import (
	"context"
	"strings"
)

// Detector picks a single label for a free-text input: the language model when
// one is configured, the synonym table otherwise.
type Detector struct {
	llm *LLM
}

func NewDetector(llm *LLM) *Detector {
	return &Detector{llm: llm}
}

func (d *Detector) Detect(ctx context.Context, text string) string {
	if d.llm.Enabled() {
		return d.llm.Classify(ctx, text)
	}
	if label, ok := parseLabel(text); ok && strings.TrimSpace(text) != "" {
		return label
	}
	return Primary(text)
}

// UsesModel reports whether Detect calls out to a language model.
func (d *Detector) UsesModel() bool {
	return d.llm.Enabled()
}

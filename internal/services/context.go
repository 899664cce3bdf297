package services

import (
	"fmt"
	"strings"

	"github.com/avolkova/reviewbrain/internal/models"
)

// BuildContextBlock formats retrieved reviews into a prompt context
// block, preserving input order. The boolean reports whether a block is
// present; zero records yield no block, which is distinct from an empty
// one so the caller can pick the no-context prompt path.
func BuildContextBlock(records []models.ReviewRecord) (string, bool) {
	if len(records) == 0 {
		return "", false
	}

	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, fmt.Sprintf("Review (Score: %d/5): %s", r.Score, r.Text))
	}

	return strings.Join(lines, "\n\n"), true
}

package models

import (
	"errors"
	"fmt"
	"strings"
)

// Default filter settings for review retrieval.
const (
	DefaultMaxResults    = 5
	DefaultMinScore      = 4
	DefaultMinTextLength = 50
)

// ErrInvalidFilter marks filter validation failures so the API layer can
// map them to a client error instead of a server error.
var ErrInvalidFilter = errors.New("invalid search filter")

// SearchFilter is the input configuration for one retrieval request.
// Construct it with NewSearchFilter and override fields before use;
// the retrieval pipeline never mutates it.
type SearchFilter struct {
	Query            string
	MaxResults       int
	MinScore         int // 0 disables the minimum-score clause
	MinTextLength    int // 0 disables the minimum-length clause
	Keyword          string
	ExcludeAnonymous bool
}

// NewSearchFilter returns a filter for the given query with default limits.
func NewSearchFilter(query string) SearchFilter {
	return SearchFilter{
		Query:            query,
		MaxResults:       DefaultMaxResults,
		MinScore:         DefaultMinScore,
		MinTextLength:    DefaultMinTextLength,
		ExcludeAnonymous: true,
	}
}

// Validate rejects out-of-range filter values rather than clamping them.
func (f SearchFilter) Validate() error {
	if strings.TrimSpace(f.Query) == "" {
		return fmt.Errorf("%w: query is required", ErrInvalidFilter)
	}
	if f.MaxResults <= 0 {
		return fmt.Errorf("%w: max_results must be positive", ErrInvalidFilter)
	}
	if f.MinScore < 0 || f.MinScore > 5 {
		return fmt.Errorf("%w: min_score must be between 0 and 5", ErrInvalidFilter)
	}
	if f.MinTextLength < 0 {
		return fmt.Errorf("%w: min_text_length must not be negative", ErrInvalidFilter)
	}
	return nil
}

// ReviewRecord is one retrieved review row. The review_length and
// score_category columns are computed by the database; the label
// functions below are the canonical definitions those projections
// must match.
type ReviewRecord struct {
	Score         int     `json:"score"`
	Summary       string  `json:"summary"`
	Text          string  `json:"text"`
	Distance      float64 `json:"distance"`
	ReviewLength  string  `json:"review_length"`
	ScoreCategory string  `json:"score_category"`
}

const (
	ReviewLengthDetailed = "Detailed Review"
	ReviewLengthShort    = "Short Review"

	ScoreCategoryHigh   = "High Score"
	ScoreCategoryMedium = "Medium Score"
	ScoreCategoryLow    = "Low Score"
)

// ReviewLengthLabel classifies review text by length. The boundary is
// exclusive: exactly 100 characters is still a short review.
func ReviewLengthLabel(text string) string {
	if len(text) > 100 {
		return ReviewLengthDetailed
	}
	return ReviewLengthShort
}

// ScoreCategoryLabel bands a 0-5 review score. The medium band is
// inclusive on both ends (2..3).
func ScoreCategoryLabel(score int) string {
	switch {
	case score >= 4:
		return ScoreCategoryHigh
	case score >= 2:
		return ScoreCategoryMedium
	default:
		return ScoreCategoryLow
	}
}

package models

import "time"

// QueryLog records one handled query for usage analytics. Answers are
// never stored, only the query text and request metrics.
type QueryLog struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	QueryText      string    `json:"query_text" gorm:"not null"`
	Source         string    `json:"source"` // 'form' or 'api'
	ResultsCount   int       `json:"results_count"`
	ResponseTimeMs int       `json:"response_time_ms"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// internal/retrieval/executor.go
package retrieval

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/avolkova/reviewbrain/internal/models"
)

// ErrRetrieval classifies connection and query execution failures. The
// answer path recovers from it by falling back to an uncontextualized
// prompt; the API path surfaces it.
var ErrRetrieval = errors.New("review retrieval failed")

// Executor runs built search statements against the review store and
// maps rows into ReviewRecord values. It does not retry.
type Executor struct {
	db      *gorm.DB
	builder *Builder
	logger  *logrus.Logger
}

func NewExecutor(db *gorm.DB, builder *Builder, logger *logrus.Logger) *Executor {
	return &Executor{
		db:      db,
		builder: builder,
		logger:  logger,
	}
}

// Search executes the hybrid search for the filter and returns records
// ordered best match first. The row cursor is scoped to this call and
// released on every exit path.
func (e *Executor) Search(ctx context.Context, filter models.SearchFilter) ([]models.ReviewRecord, error) {
	stmt, params := e.builder.Build(filter)

	rows, err := e.db.WithContext(ctx).Raw(stmt, params...).Rows()
	if err != nil {
		return nil, fmt.Errorf("%w: execute search: %v", ErrRetrieval, err)
	}
	defer rows.Close()

	var records []models.ReviewRecord
	for rows.Next() {
		var r models.ReviewRecord
		// Column order is fixed by the builder projection.
		if err := rows.Scan(&r.Score, &r.Summary, &r.Text, &r.Distance, &r.ReviewLength, &r.ScoreCategory); err != nil {
			return nil, fmt.Errorf("%w: scan review row: %v", ErrRetrieval, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read review rows: %v", ErrRetrieval, err)
	}

	e.logger.WithFields(logrus.Fields{
		"query":   filter.Query,
		"results": len(records),
	}).Debug("Review search completed")

	return records, nil
}

package retrieval

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"

	"github.com/avolkova/reviewbrain/internal/models"
)

// Runs against a real review store with the embedding procedure
// installed. Skipped unless DATABASE_URL is set.
func TestExecutor_Integration(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	db, err := gorm.Open(sqlserver.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	executor := NewExecutor(db, NewBuilder("text-embedding-ada-002"), logrus.New())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	records, err := executor.Search(ctx, models.NewSearchFilter("best coffee"))
	require.NoError(t, err)

	for i, r := range records {
		assert.Equal(t, models.ReviewLengthLabel(r.Text), r.ReviewLength, "record %d", i)
		assert.Equal(t, models.ScoreCategoryLabel(r.Score), r.ScoreCategory, "record %d", i)
		assert.GreaterOrEqual(t, r.Score, models.DefaultMinScore, "record %d", i)
		if i > 0 {
			assert.LessOrEqual(t, records[i-1].Distance, r.Distance, "results ordered by distance")
		}
	}
}

// internal/seeder/loader.go
package seeder

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/avolkova/reviewbrain/internal/models"
)

// Loader imports review rows from a CSV export into the reviews table.
// Embeddings are computed by the store, not here.
type Loader struct {
	db        *gorm.DB
	logger    *logrus.Logger
	batchSize int
	dryRun    bool
}

func NewLoader(db *gorm.DB, logger *logrus.Logger, batchSize int, dryRun bool) *Loader {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Loader{
		db:        db,
		logger:    logger,
		batchSize: batchSize,
		dryRun:    dryRun,
	}
}

// Load reads the CSV at path and inserts its rows in batches. The
// header row must contain Score, Summary, Text and UserId columns in
// any order. Returns the number of rows loaded (or counted in dry-run).
func (l *Loader) Load(ctx context.Context, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open reviews file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return 0, err
	}

	var (
		batch []models.Review
		total int
	)

	for {
		select {
		case <-ctx.Done():
			return total, ctx.Err()
		default:
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return total, fmt.Errorf("read row %d: %w", total+1, err)
		}

		review, err := rowToReview(record, columns)
		if err != nil {
			l.logger.WithError(err).WithField("row", total+1).Warn("Skipping malformed review row")
			continue
		}

		batch = append(batch, review)
		total++

		if len(batch) >= l.batchSize {
			if err := l.flush(batch); err != nil {
				return total - len(batch), err
			}
			batch = batch[:0]

			if total%1000 == 0 {
				l.logger.WithField("loaded", total).Info("Seeding progress")
			}
		}
	}

	if len(batch) > 0 {
		if err := l.flush(batch); err != nil {
			return total - len(batch), err
		}
	}

	l.logger.WithFields(logrus.Fields{
		"loaded":  total,
		"dry_run": l.dryRun,
	}).Info("Review seeding completed")

	return total, nil
}

func (l *Loader) flush(batch []models.Review) error {
	if l.dryRun {
		return nil
	}
	if err := l.db.CreateInBatches(batch, l.batchSize).Error; err != nil {
		return fmt.Errorf("insert review batch: %w", err)
	}
	return nil
}

type columnIndexes struct {
	score   int
	summary int
	text    int
	userID  int
}

func mapColumns(header []string) (columnIndexes, error) {
	idx := columnIndexes{score: -1, summary: -1, text: -1, userID: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "score":
			idx.score = i
		case "summary":
			idx.summary = i
		case "text":
			idx.text = i
		case "userid", "user_id":
			idx.userID = i
		}
	}
	if idx.score < 0 || idx.summary < 0 || idx.text < 0 || idx.userID < 0 {
		return idx, fmt.Errorf("header is missing one of Score, Summary, Text, UserId: %v", header)
	}
	return idx, nil
}

func rowToReview(record []string, idx columnIndexes) (models.Review, error) {
	last := idx.score
	for _, i := range []int{idx.summary, idx.text, idx.userID} {
		if i > last {
			last = i
		}
	}
	if len(record) <= last {
		return models.Review{}, fmt.Errorf("row has %d fields, need at least %d", len(record), last+1)
	}

	score, err := strconv.Atoi(strings.TrimSpace(record[idx.score]))
	if err != nil {
		return models.Review{}, fmt.Errorf("parse score %q: %w", record[idx.score], err)
	}
	if score < 0 || score > 5 {
		return models.Review{}, fmt.Errorf("score %d out of range", score)
	}

	return models.Review{
		Score:   score,
		Summary: record[idx.summary],
		Text:    record[idx.text],
		UserID:  record[idx.userID],
	}, nil
}

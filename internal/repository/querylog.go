package repository

import (
	"github.com/avolkova/reviewbrain/internal/models"
	"gorm.io/gorm"
)

// QueryLogRepository persists per-request usage records.
type QueryLogRepository interface {
	Create(entry *models.QueryLog) error
	GetRecent(limit int) ([]models.QueryLog, error)
}

type queryLogRepository struct {
	db *gorm.DB
}

func NewQueryLogRepository(db *gorm.DB) QueryLogRepository {
	return &queryLogRepository{db: db}
}

func (r *queryLogRepository) Create(entry *models.QueryLog) error {
	return r.db.Create(entry).Error
}

func (r *queryLogRepository) GetRecent(limit int) ([]models.QueryLog, error) {
	var entries []models.QueryLog
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

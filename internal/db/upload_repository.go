package db

import (
	"github.com/tuifinancial/finserv/internal/models"
	"gorm.io/gorm"
)

type UploadRepository struct {
	database *gorm.DB
}

func NewUploadRepository(database *gorm.DB) *UploadRepository {
	return &UploadRepository{database: database}
}

func (repo *UploadRepository) Create(record *models.UploadHistory) error {
	return repo.database.Create(record).Error
}

func (repo *UploadRepository) ListNewestFirst() ([]models.UploadHistory, error) {
	records := make([]models.UploadHistory, 0)
	if err := repo.database.
		Order("upload_date DESC").
		Order("id DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

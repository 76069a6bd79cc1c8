package db

import (
	"errors"

	"github.com/tuifinancial/finserv/internal/models"
	"gorm.io/gorm"
)

type PeriodRepository struct {
	database *gorm.DB
}

func NewPeriodRepository(database *gorm.DB) *PeriodRepository {
	return &PeriodRepository{database: database}
}

// FindByIdentity looks up the period with the same canonical identity.
// Returns nil without error when no such period exists.
func (repo *PeriodRepository) FindByIdentity(periodType models.PeriodType, year int, month *int, quarter *int) (*models.FinancialPeriod, error) {
	query := repo.database.
		Where("period_type = ? AND year = ?", periodType, year)
	if month != nil {
		query = query.Where("month = ?", *month)
	}
	if quarter != nil {
		query = query.Where("quarter = ?", *quarter)
	}

	var period models.FinancialPeriod
	if err := query.First(&period).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &period, nil
}

func (repo *PeriodRepository) FindByID(periodID uint) (*models.FinancialPeriod, error) {
	var period models.FinancialPeriod
	if err := repo.database.First(&period, periodID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &period, nil
}

// ListNewestFirst orders periods by year, then month, then quarter, all
// descending, so the most recent reporting window comes first.
func (repo *PeriodRepository) ListNewestFirst() ([]models.FinancialPeriod, error) {
	periods := make([]models.FinancialPeriod, 0)
	if err := repo.database.
		Order("year DESC").
		Order("month DESC").
		Order("quarter DESC").
		Find(&periods).Error; err != nil {
		return nil, err
	}
	return periods, nil
}

// CreateIngestion materializes a period, its data rows, and the success
// audit record in one transaction. Partial writes are never observable: any
// failure rolls the whole batch back.
func (repo *PeriodRepository) CreateIngestion(period *models.FinancialPeriod, rows []models.FinancialData, history *models.UploadHistory) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(period).Error; err != nil {
			return err
		}
		for index := range rows {
			rows[index].PeriodID = period.ID
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		history.PeriodID = &period.ID
		return tx.Create(history).Error
	})
}

// SoftDeleteWithData flags every data row of the period as deleted and then
// removes the period itself. The ON DELETE CASCADE on financial_data backs
// this up at the storage level.
func (repo *PeriodRepository) SoftDeleteWithData(periodID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.FinancialData{}).
			Where("period_id = ?", periodID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Delete(&models.FinancialPeriod{}, periodID).Error
	})
}

// ListData returns the rows of one period, excluding soft-deleted rows.
func (repo *PeriodRepository) ListData(periodID uint) ([]models.FinancialData, error) {
	rows := make([]models.FinancialData, 0)
	if err := repo.database.
		Where("period_id = ? AND is_deleted = ?", periodID, false).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/tuifinancial/finserv/internal/models"
	"gorm.io/gorm"
)

type IngestionPeriodRepository interface {
	PeriodLookup
	FindByID(periodID uint) (*models.FinancialPeriod, error)
	ListNewestFirst() ([]models.FinancialPeriod, error)
	ListData(periodID uint) ([]models.FinancialData, error)
	CreateIngestion(period *models.FinancialPeriod, rows []models.FinancialData, history *models.UploadHistory) error
	SoftDeleteWithData(periodID uint) error
}

type UploadAuditRepository interface {
	Create(record *models.UploadHistory) error
	ListNewestFirst() ([]models.UploadHistory, error)
}

// IngestionService orchestrates spreadsheet validation, period resolution,
// and the atomic materialization of a period with its rows and audit trail.
type IngestionService struct {
	periods  IngestionPeriodRepository
	uploads  UploadAuditRepository
	resolver *PeriodResolver
	now      func() time.Time
}

func NewIngestionService(periods IngestionPeriodRepository, uploads UploadAuditRepository) *IngestionService {
	return &IngestionService{
		periods:  periods,
		uploads:  uploads,
		resolver: NewPeriodResolver(periods),
		now:      time.Now,
	}
}

type IngestInput struct {
	Filename   string
	Contents   []byte
	PeriodType string
	Year       int
	Month      int
	Quarter    int
}

type IngestResult struct {
	PeriodID      uint              `json:"period_id"`
	PeriodType    models.PeriodType `json:"period_type"`
	Year          int               `json:"year"`
	Month         *int              `json:"month"`
	Quarter       *int              `json:"quarter"`
	RowsProcessed int               `json:"rows_processed"`
}

// Ingest runs the full pipeline for one upload attempt. Every failure past
// the role check leaves a best-effort failed audit record; the audit write
// runs outside the ingestion transaction and its own failure is logged,
// never surfaced.
func (service *IngestionService) Ingest(actor models.User, input IngestInput) (*IngestResult, error) {
	if !Authorize(actor.Role, ActionUploadFinancials) {
		return nil, ErrManagerRoleRequired
	}

	result, err := service.ingest(actor, input)
	if err != nil {
		service.recordFailure(actor, input.Filename, err)
		return nil, err
	}
	return result, nil
}

func (service *IngestionService) ingest(actor models.User, input IngestInput) (*IngestResult, error) {
	if !AcceptedUploadExtension(input.Filename) {
		return nil, NewValidationError("only spreadsheet files (.xlsx, .xlsm, .csv) are allowed")
	}

	table, err := ParseUpload(input.Filename, input.Contents)
	if errors.Is(err, ErrEmptyFile) {
		return nil, NewValidationError("file is empty")
	}
	if err != nil {
		return nil, err
	}

	rows, err := ValidateFinancialTable(table)
	if err != nil {
		return nil, err
	}

	periodType, err := models.ParsePeriodType(input.PeriodType)
	if err != nil {
		return nil, NewValidationError("invalid period type: must be monthly or quarterly")
	}

	period, err := service.resolver.Resolve(PeriodParams{
		Type:    periodType,
		Year:    input.Year,
		Month:   input.Month,
		Quarter: input.Quarter,
	})
	if err != nil {
		return nil, err
	}

	existing, err := service.resolver.CheckDuplicate(period)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, NewValidationError("period already exists: id=%d", existing.ID)
	}

	period.UploadedBy = actor.ID
	history := models.UploadHistory{
		Filename:      input.Filename,
		UploadedBy:    actor.ID,
		UploadDate:    service.now(),
		Status:        models.UploadStatusSuccess,
		RowsProcessed: len(rows),
	}
	if err := service.periods.CreateIngestion(period, rows, &history); err != nil {
		// Two uploads of the same period can both pass the duplicate
		// check before either commits; the unique identity index is the
		// backstop that turns the loser into a caller error.
		if isPeriodIdentityConflict(err) {
			return nil, NewValidationError("period already exists")
		}
		return nil, err
	}

	return &IngestResult{
		PeriodID:      period.ID,
		PeriodType:    period.PeriodType,
		Year:          period.Year,
		Month:         period.Month,
		Quarter:       period.Quarter,
		RowsProcessed: len(rows),
	}, nil
}

func (service *IngestionService) recordFailure(actor models.User, filename string, cause error) {
	record := models.UploadHistory{
		Filename:     filename,
		UploadedBy:   actor.ID,
		UploadDate:   service.now(),
		Status:       models.UploadStatusFailed,
		ErrorMessage: cause.Error(),
	}
	if err := service.uploads.Create(&record); err != nil {
		log.Printf("failure audit write skipped for %s: %v", filename, err)
	}
}

// isPeriodIdentityConflict reports whether err is the unique-index violation
// raised when two uploads race for the same period identity. The only unique
// constraint reachable from the ingestion transaction is that index, so the
// translated duplicate-key error is unambiguous here; the index name covers
// drivers that do not translate.
func isPeriodIdentityConflict(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "idx_financial_periods_identity")
}

func (service *IngestionService) ListPeriods() ([]models.FinancialPeriod, error) {
	return service.periods.ListNewestFirst()
}

// GetPeriodData returns the period and its rows, soft-deleted rows excluded.
func (service *IngestionService) GetPeriodData(periodID uint) (*models.FinancialPeriod, []models.FinancialData, error) {
	period, err := service.periods.FindByID(periodID)
	if err != nil {
		return nil, nil, err
	}
	if period == nil {
		return nil, nil, ErrPeriodNotFound
	}

	rows, err := service.periods.ListData(periodID)
	if err != nil {
		return nil, nil, err
	}
	return period, rows, nil
}

// DeletePeriod soft-deletes the period's rows and removes the period.
func (service *IngestionService) DeletePeriod(actor models.User, periodID uint) error {
	if !Authorize(actor.Role, ActionDeleteFinancials) {
		return ErrManagerRoleRequired
	}

	period, err := service.periods.FindByID(periodID)
	if err != nil {
		return err
	}
	if period == nil {
		return ErrPeriodNotFound
	}
	return service.periods.SoftDeleteWithData(periodID)
}

func (service *IngestionService) ListUploadHistory() ([]models.UploadHistory, error) {
	return service.uploads.ListNewestFirst()
}

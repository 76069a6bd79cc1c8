package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/tuifinancial/finserv/internal/models"
	"gorm.io/gorm"
)

func openTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(filepath.Join(t.TempDir(), "finserv-db-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return database
}

func TestOpenSQLiteEnablesForeignKeys(t *testing.T) {
	database := openTestDatabase(t)

	var enabled int
	if err := database.Raw("PRAGMA foreign_keys").Scan(&enabled).Error; err != nil {
		t.Fatalf("read foreign_keys pragma: %v", err)
	}
	if enabled != 1 {
		t.Fatalf("expected foreign_keys pragma to be 1, got %d", enabled)
	}
}

func TestPeriodDeleteRunsReferentialActions(t *testing.T) {
	database := openTestDatabase(t)
	repositories := NewRepositories(database)

	user := models.User{
		Email:        "manager@example.com",
		FullName:     "Test Manager",
		PasswordHash: "irrelevant",
		Role:         models.RoleManager,
		CreatedAt:    time.Now(),
	}
	if err := repositories.Users.Create(&user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	month := 3
	period := models.FinancialPeriod{
		PeriodType: models.PeriodMonthly,
		Year:       2025,
		Month:      &month,
		StartDate:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		UploadedBy: user.ID,
	}
	rows := []models.FinancialData{
		{Revenue: 100, Cash: 10},
		{Revenue: 200, Cash: 20},
	}
	history := models.UploadHistory{
		Filename:      "march.csv",
		UploadedBy:    user.ID,
		UploadDate:    time.Now(),
		Status:        models.UploadStatusSuccess,
		RowsProcessed: len(rows),
	}
	if err := repositories.Periods.CreateIngestion(&period, rows, &history); err != nil {
		t.Fatalf("create ingestion: %v", err)
	}

	if err := repositories.Periods.SoftDeleteWithData(period.ID); err != nil {
		t.Fatalf("delete period: %v", err)
	}

	var surviving int64
	if err := database.Model(&models.FinancialData{}).Count(&surviving).Error; err != nil {
		t.Fatalf("count data rows: %v", err)
	}
	if surviving != 0 {
		t.Fatalf("expected the cascade to remove all data rows, got %d", surviving)
	}

	// The audit record outlives its period with the reference cleared.
	var audit models.UploadHistory
	if err := database.First(&audit, history.ID).Error; err != nil {
		t.Fatalf("load audit record: %v", err)
	}
	if audit.PeriodID != nil {
		t.Fatalf("expected audit period reference to be null, got %d", *audit.PeriodID)
	}
}

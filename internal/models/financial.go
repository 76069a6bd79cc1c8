package models

import (
	"fmt"
	"strings"
	"time"
)

type PeriodType string

const (
	PeriodMonthly   PeriodType = "monthly"
	PeriodQuarterly PeriodType = "quarterly"
)

func ParsePeriodType(raw string) (PeriodType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "monthly":
		return PeriodMonthly, nil
	case "quarterly":
		return PeriodQuarterly, nil
	default:
		return "", fmt.Errorf("unknown period type %q", raw)
	}
}

// FinancialPeriod is one reporting window. Exactly one of Month or Quarter
// is set depending on PeriodType; the window is half-open [StartDate, EndDate).
type FinancialPeriod struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	PeriodType PeriodType `gorm:"not null" json:"period_type"`
	Year       int        `gorm:"not null" json:"year"`
	Month      *int       `json:"month"`
	Quarter    *int       `json:"quarter"`
	StartDate  time.Time  `gorm:"not null" json:"start_date"`
	EndDate    time.Time  `gorm:"not null" json:"end_date"`
	UploadedBy uint       `gorm:"not null" json:"uploaded_by"`
	CreatedAt  time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null" json:"updated_at"`
}

// FinancialData is one spreadsheet row of line items tied to a period.
// IsDeleted is a soft-delete marker: flagged rows stay in storage but are
// excluded from every read path.
type FinancialData struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	PeriodID uint `gorm:"not null;index" json:"period_id"`

	Revenue           float64 `json:"revenue"`
	CostOfGoodsSold   float64 `json:"cost_of_goods_sold"`
	GrossProfit       float64 `json:"gross_profit"`
	OperatingExpenses float64 `json:"operating_expenses"`
	EBITDA            float64 `gorm:"column:ebitda" json:"ebitda"`
	NetProfit         float64 `json:"net_profit"`

	CurrentAssets      float64 `json:"current_assets"`
	TotalAssets        float64 `json:"total_assets"`
	Inventory          float64 `json:"inventory"`
	Cash               float64 `json:"cash"`
	AccountsReceivable float64 `json:"accounts_receivable"`
	CurrentLiabilities float64 `json:"current_liabilities"`
	ShareholdersEquity float64 `json:"shareholders_equity"`

	IsDeleted bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (FinancialData) TableName() string { return "financial_data" }

const (
	UploadStatusSuccess = "success"
	UploadStatusFailed  = "failed"
)

// UploadHistory records one ingestion attempt. PeriodID is nil when the
// attempt failed before a period existed; it is the only trace such an
// attempt leaves behind.
type UploadHistory struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Filename      string    `gorm:"not null" json:"filename"`
	UploadedBy    uint      `gorm:"not null" json:"uploaded_by"`
	UploadDate    time.Time `gorm:"not null" json:"upload_date"`
	PeriodID      *uint     `json:"period_id"`
	Status        string    `gorm:"not null" json:"status"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	RowsProcessed int       `gorm:"not null;default:0" json:"rows_processed"`
}

func (UploadHistory) TableName() string { return "upload_history" }

package services

import (
	"strconv"
	"strings"

	"github.com/tuifinancial/finserv/internal/models"
)

// RequiredColumns is the fixed upload template schema: income-statement
// line items followed by balance-sheet line items.
var RequiredColumns = []string{
	"revenue",
	"cost_of_goods_sold",
	"gross_profit",
	"operating_expenses",
	"ebitda",
	"net_profit",
	"current_assets",
	"total_assets",
	"inventory",
	"cash",
	"accounts_receivable",
	"current_liabilities",
	"shareholders_equity",
}

// ValidateFinancialTable checks the table against the required schema and
// coerces every required column to numbers. The checks run in a fixed order
// and the first violated condition is reported: missing columns, then zero
// data rows, then non-numeric values, then missing values.
func ValidateFinancialTable(table *Table) ([]models.FinancialData, error) {
	columnIndex := make(map[string]int, len(table.Columns))
	for index, name := range table.Columns {
		columnIndex[name] = index
	}

	missing := make([]string, 0)
	for _, name := range RequiredColumns {
		if _, exists := columnIndex[name]; !exists {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, NewValidationError("missing fields: %s", strings.Join(missing, ", "))
	}

	if len(table.Rows) == 0 {
		return nil, NewValidationError("no data rows")
	}

	coerced := make([]map[string]float64, len(table.Rows))
	hasMissingValues := false
	for _, name := range RequiredColumns {
		index := columnIndex[name]
		for rowNumber, row := range table.Rows {
			cell := ""
			if index < len(row) {
				cell = strings.TrimSpace(row[index])
			}
			if cell == "" {
				hasMissingValues = true
				continue
			}

			value, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, NewValidationError("field '%s' contains non-numeric values", name)
			}
			if coerced[rowNumber] == nil {
				coerced[rowNumber] = make(map[string]float64, len(RequiredColumns))
			}
			coerced[rowNumber][name] = value
		}
	}
	if hasMissingValues {
		return nil, NewValidationError("missing values present")
	}

	rows := make([]models.FinancialData, len(coerced))
	for rowNumber, values := range coerced {
		for name, value := range values {
			setFinancialField(&rows[rowNumber], name, value)
		}
	}
	return rows, nil
}

func setFinancialField(row *models.FinancialData, name string, value float64) {
	switch name {
	case "revenue":
		row.Revenue = value
	case "cost_of_goods_sold":
		row.CostOfGoodsSold = value
	case "gross_profit":
		row.GrossProfit = value
	case "operating_expenses":
		row.OperatingExpenses = value
	case "ebitda":
		row.EBITDA = value
	case "net_profit":
		row.NetProfit = value
	case "current_assets":
		row.CurrentAssets = value
	case "total_assets":
		row.TotalAssets = value
	case "inventory":
		row.Inventory = value
	case "cash":
		row.Cash = value
	case "accounts_receivable":
		row.AccountsReceivable = value
	case "current_liabilities":
		row.CurrentLiabilities = value
	case "shareholders_equity":
		row.ShareholdersEquity = value
	}
}

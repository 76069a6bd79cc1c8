package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/tuifinancial/finserv/internal/services"
	"github.com/xuri/excelize/v2"
)

const templateSheetName = "Financial Data"

// DownloadTemplate serves a generated workbook with the required columns
// and one zero-filled example row.
func (handler *Handler) DownloadTemplate(c *fiber.Ctx) error {
	workbook := excelize.NewFile()
	defer workbook.Close()

	if err := workbook.SetSheetName(workbook.GetSheetName(0), templateSheetName); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build template")
	}

	for index, column := range services.RequiredColumns {
		headerCell, err := excelize.CoordinatesToCellName(index+1, 1)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to build template")
		}
		if err := workbook.SetCellValue(templateSheetName, headerCell, column); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to build template")
		}

		valueCell, err := excelize.CoordinatesToCellName(index+1, 2)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to build template")
		}
		if err := workbook.SetCellValue(templateSheetName, valueCell, 0.0); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to build template")
		}
	}

	buffer, err := workbook.WriteToBuffer()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build template")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "financial_template.xlsx"))
	return c.Send(buffer.Bytes())
}

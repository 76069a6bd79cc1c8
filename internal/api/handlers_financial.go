package api

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tuifinancial/finserv/internal/services"
)

func (handler *Handler) Upload(c *fiber.Ctx) error {
	actor, err := handler.currentUser(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "file is required")
	}
	defer file.Close()

	contents, err := io.ReadAll(file)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "error processing file")
	}

	input := services.IngestInput{
		Filename:   fileHeader.Filename,
		Contents:   contents,
		PeriodType: formOrQuery(c, "period_type", "monthly"),
	}
	if input.Year, err = intParam(c, "year"); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid year")
	}
	if input.Month, err = intParam(c, "month"); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid month")
	}
	if input.Quarter, err = intParam(c, "quarter"); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid quarter")
	}

	result, err := handler.ingestion.Ingest(actor, input)
	if err != nil {
		return handler.respondIngestionError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":        "financial data uploaded successfully",
		"period_id":      result.PeriodID,
		"period_type":    result.PeriodType,
		"year":           result.Year,
		"month":          result.Month,
		"quarter":        result.Quarter,
		"rows_processed": result.RowsProcessed,
	})
}

func (handler *Handler) ListPeriods(c *fiber.Ctx) error {
	periods, err := handler.ingestion.ListPeriods()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load periods")
	}
	return c.JSON(periods)
}

func (handler *Handler) GetPeriodData(c *fiber.Ctx) error {
	periodID, err := c.ParamsInt("id")
	if err != nil || periodID <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid period id")
	}

	period, rows, err := handler.ingestion.GetPeriodData(uint(periodID))
	if err != nil {
		if errors.Is(err, services.ErrPeriodNotFound) {
			return apiError(c, fiber.StatusNotFound, "period not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to load period data")
	}

	return c.JSON(fiber.Map{
		"period": period,
		"data":   rows,
	})
}

func (handler *Handler) DeletePeriod(c *fiber.Ctx) error {
	actor, err := handler.currentUser(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	periodID, err := c.ParamsInt("id")
	if err != nil || periodID <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid period id")
	}

	if err := handler.ingestion.DeletePeriod(actor, uint(periodID)); err != nil {
		switch {
		case errors.Is(err, services.ErrManagerRoleRequired):
			return apiError(c, fiber.StatusForbidden, "only managers can delete financial data")
		case errors.Is(err, services.ErrPeriodNotFound):
			return apiError(c, fiber.StatusNotFound, "period not found")
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to delete period")
		}
	}

	return c.JSON(fiber.Map{"message": "period deleted successfully"})
}

func (handler *Handler) ListUploadHistory(c *fiber.Ctx) error {
	records, err := handler.ingestion.ListUploadHistory()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load upload history")
	}
	return c.JSON(records)
}

func (handler *Handler) respondIngestionError(c *fiber.Ctx, err error) error {
	validationError := &services.ValidationError{}
	switch {
	case errors.Is(err, services.ErrManagerRoleRequired):
		return apiError(c, fiber.StatusForbidden, "only managers can upload financial data")
	case errors.As(err, &validationError):
		return apiError(c, fiber.StatusBadRequest, validationError.Message)
	default:
		return apiError(c, fiber.StatusInternalServerError, "error processing file")
	}
}

func formOrQuery(c *fiber.Ctx, key string, fallback string) string {
	value := strings.TrimSpace(c.FormValue(key))
	if value == "" {
		value = strings.TrimSpace(c.Query(key))
	}
	if value == "" {
		return fallback
	}
	return value
}

func intParam(c *fiber.Ctx, key string) (int, error) {
	value := formOrQuery(c, key, "")
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}

package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"demandai/forecast"
	"demandai/models"
	"demandai/store"
)

// HandleForecast runs the forecasting engine over the posted records, falling
// back to the stored dataset when the request body carries none.
// POST /api/v1/forecast
func HandleForecast(c *fiber.Ctx) error {
	var req models.ForecastRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}

	records := req.Data
	if len(records) == 0 {
		stored, err := store.FetchAll(c.Context())
		if err != nil {
			log.Printf("Error fetching sales records for forecast: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Database error"})
		}
		if len(stored) == 0 {
			// No data yet; an empty result lets the frontend render an
			// empty chart instead of an error state.
			return c.JSON(models.ForecastResult{
				Dates:     []string{},
				Yhat:      []float64{},
				YhatLower: []float64{},
				YhatUpper: []float64{},
				Trend:     []float64{},
			})
		}
		records = stored
	}

	horizon := req.Periods
	if horizon <= 0 {
		horizon = forecast.DefaultHorizon
	}

	result, err := forecast.Forecast(records, horizon, forecast.ParseFrequency(req.Freq))
	if err != nil {
		if errors.Is(err, forecast.ErrInsufficientData) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": err.Error()})
		}
		log.Printf("Forecast computation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	return c.JSON(result)
}

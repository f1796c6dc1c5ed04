package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demandai/models"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Post("/api/v1/forecast", HandleForecast)
	app.Post("/api/v1/inventory", HandleInventoryPlan)
	app.Get("/api/v1/product-stats", HandleProductStats)
	app.Post("/api/v1/upload", HandleUpload)
	return app
}

func sampleRecords(days int) []models.SalesRecord {
	start, _ := time.Parse(time.DateOnly, "2024-01-01")
	records := make([]models.SalesRecord, 0, days)
	for i := 0; i < days; i++ {
		records = append(records, models.SalesRecord{
			Date:      models.NewDate(start.AddDate(0, 0, i)),
			Product:   "Widget",
			Region:    "North",
			UnitsSold: float64(50 + i),
			Price:     10,
			Inventory: 400,
		})
	}
	return records
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (int, []byte) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func TestForecastHandlerInlineData(t *testing.T) {
	app := newTestApp()

	code, body := postJSON(t, app, "/api/v1/forecast", models.ForecastRequest{
		Data:    sampleRecords(10),
		Periods: 5,
		Freq:    "D",
	})
	require.Equal(t, 200, code)

	var result models.ForecastResult
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Len(t, result.Dates, 15)
	assert.Len(t, result.Yhat, 15)
	assert.Equal(t, "2024-01-01", result.Dates[0])
	assert.Equal(t, "2024-01-15", result.Dates[14])
}

func TestForecastHandlerInsufficientData(t *testing.T) {
	app := newTestApp()

	code, body := postJSON(t, app, "/api/v1/forecast", models.ForecastRequest{
		Data:    sampleRecords(3),
		Periods: 5,
	})
	assert.Equal(t, 400, code)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, "error", envelope["status"])
}

func TestForecastHandlerBadJSON(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/api/v1/forecast", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestInventoryHandlerInlineData(t *testing.T) {
	app := newTestApp()

	code, body := postJSON(t, app, "/api/v1/inventory", models.InventoryRequest{
		Data:       sampleRecords(4),
		LeadTime:   5,
		ServiceLvl: 0.95,
	})
	require.Equal(t, 200, code)

	var plans []models.InventoryPlan
	require.NoError(t, json.Unmarshal(body, &plans))
	require.Len(t, plans, 1)
	assert.Equal(t, "Widget", plans[0].Product)
	assert.Greater(t, plans[0].ReorderPoint, 0.0)
	assert.Equal(t, 400.0, plans[0].CurrentStockLevel)
}

func TestInventoryHandlerBadJSON(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/api/v1/inventory", bytes.NewReader([]byte("[broken")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestProductStatsHandlerRequiresName(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("GET", "/api/v1/product-stats", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestUploadHandlerMissingFile(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/api/v1/upload", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestUploadHandlerRejectsBadExtension(t *testing.T) {
	app := newTestApp()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "report.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("not a spreadsheet"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/v1/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestDashboardRouteNotFound(t *testing.T) {
	app := fiber.New()
	// dashboard route not registered here; expect 404
	req := httptest.NewRequest("GET", "/api/v1/dashboard", nil)
	resp, _ := app.Test(req)
	assert.Equal(t, 404, resp.StatusCode)
}

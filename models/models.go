package models

import (
	"fmt"
	"strings"
	"time"
)

// --- Canonical sales record ---

// Date is a calendar date that marshals as YYYY-MM-DD. Sales data is daily;
// carrying a bare date avoids timezone noise in grouping keys.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date in UTC.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(time.DateOnly)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = NewDate(t)
			return nil
		}
	}
	return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
}

// SalesRecord is one canonical per-day, per-product, per-region observation.
// Records are produced by the ingestion layer (which owns all tolerant
// coercion) and are never mutated by the engines.
type SalesRecord struct {
	Date      Date    `json:"date"`
	Product   string  `json:"product"`
	Region    string  `json:"region"`
	UnitsSold float64 `json:"units_sold"`
	Price     float64 `json:"price"`
	Inventory float64 `json:"inventory"`
}

// Revenue is units times price for this record.
func (r SalesRecord) Revenue() float64 {
	return r.UnitsSold * r.Price
}

// --- Forecasting ---

type ForecastRequest struct {
	Data    []SalesRecord `json:"data"`
	Periods int           `json:"periods"`
	Freq    string        `json:"freq"`
}

// ForecastResult holds parallel series, one entry per historical-plus-future
// date, ascending. Field names follow the chart contract the frontend plots.
type ForecastResult struct {
	Dates     []string  `json:"ds"`
	Yhat      []float64 `json:"yhat"`
	YhatLower []float64 `json:"yhat_lower"`
	YhatUpper []float64 `json:"yhat_upper"`
	Trend     []float64 `json:"trend"`
}

// --- Inventory planning ---

type InventoryRequest struct {
	Data        []SalesRecord `json:"data"`
	LeadTime    int           `json:"lead_time"`
	ServiceLvl  float64       `json:"service_level"`
	HoldingCost float64       `json:"holding_cost"`
}

// InventoryPlan is the replenishment plan for one product.
type InventoryPlan struct {
	Product           string  `json:"product"`
	ReorderPoint      float64 `json:"reorder_point"`
	SafetyStock       float64 `json:"safety_stock"`
	CurrentStockLevel float64 `json:"current_stock_level"`
	CurrentStatus     string  `json:"current_stock_status"`
	EOQ               float64 `json:"eoq"`
}

// --- Dashboard aggregates ---

// TrendPoint is one dated entry in the dashboard sales chart. Forecast is a
// synthetic jittered value, not a model output.
type TrendPoint struct {
	Label    string  `json:"name"`
	Sales    float64 `json:"sales"`
	Forecast float64 `json:"forecast"`
}

// ProductShare is a product's contribution to a region's demand.
type ProductShare struct {
	Product string `json:"product"`
	Units   int    `json:"units"`
}

// RegionDemand is a region's total demand with its per-product breakdown,
// products sorted by units descending.
type RegionDemand struct {
	Region   string         `json:"region"`
	Demand   int            `json:"demand"`
	Products []ProductShare `json:"products"`
}

type DashboardStats struct {
	TotalRevenue    float64        `json:"total_revenue"`
	ActiveForecasts int            `json:"active_forecasts"`
	AvgAccuracy     float64        `json:"avg_accuracy"`
	StockRiskCount  int            `json:"stock_risk_count"`
	SalesTrend      []TrendPoint   `json:"sales_trend"`
	RegionDemand    []RegionDemand `json:"region_demand"`
}

// DailyTrendPoint is one day of a product's revenue/units history.
type DailyTrendPoint struct {
	Date  string  `json:"date"`
	Sales float64 `json:"sales"`
	Units int     `json:"units"`
}

// RegionalUnits is a product's units sold in one region.
type RegionalUnits struct {
	Region string `json:"region"`
	Units  int    `json:"units"`
}

type ProductStats struct {
	Product           string            `json:"product"`
	TotalRevenue      float64           `json:"total_revenue"`
	TotalUnits        int               `json:"total_units"`
	CurrentStock      float64           `json:"current_stock"`
	StockStatus       string            `json:"stock_status"`
	DailyTrend        []DailyTrendPoint `json:"daily_trend"`
	RegionalBreakdown []RegionalUnits   `json:"regional_breakdown"`
}

// --- Notifications & history ---

type Notification struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// ArchivedBatch summarizes one archived upload batch in the history view.
type ArchivedBatch struct {
	ArchivedAt   time.Time `json:"archived_at"`
	RecordCount  int       `json:"record_count"`
	TotalRevenue float64   `json:"total_revenue"`
}

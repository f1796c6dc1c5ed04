package inventory

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demandai/models"
)

func rec(date, product string, units, stock float64) models.SalesRecord {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		panic(err)
	}
	return models.SalesRecord{
		Date:      models.NewDate(t),
		Product:   product,
		Region:    "North",
		UnitsSold: units,
		Price:     10,
		Inventory: stock,
	}
}

func TestPlanEmptyInput(t *testing.T) {
	plans := Plan(nil, DefaultParams())
	assert.Empty(t, plans)
	assert.NotNil(t, plans)
}

func TestPlanConstantUsage(t *testing.T) {
	// Constant usage: no variability, so safety stock collapses to zero
	// and the reorder point is pure lead-time demand.
	records := []models.SalesRecord{
		rec("2024-01-01", "Widget", 100, 600),
		rec("2024-01-02", "Widget", 100, 600),
		rec("2024-01-03", "Widget", 100, 600),
		rec("2024-01-04", "Widget", 100, 600),
	}

	plans := Plan(records, Params{LeadTimeDays: 5, ServiceLevel: 0.95, HoldingCostRate: 0.2})
	require.Len(t, plans, 1)

	p := plans[0]
	assert.Equal(t, "Widget", p.Product)
	assert.Equal(t, 0.0, p.SafetyStock)
	assert.Equal(t, 500.0, p.ReorderPoint)
	assert.Equal(t, 600.0, p.CurrentStockLevel)
	assert.Equal(t, StatusOK, p.CurrentStatus)
}

func TestPlanLowStatus(t *testing.T) {
	records := []models.SalesRecord{
		rec("2024-01-01", "Widget", 100, 400),
		rec("2024-01-02", "Widget", 100, 400),
	}

	plans := Plan(records, Params{LeadTimeDays: 5, ServiceLevel: 0.95, HoldingCostRate: 0.2})
	require.Len(t, plans, 1)

	// Stock 400 < reorder point 500, but safety stock is 0.
	assert.Equal(t, StatusLow, plans[0].CurrentStatus)
}

func TestPlanCriticalBeatsLow(t *testing.T) {
	// High variability makes safety stock large; stock below safety stock
	// must classify Critical even though it is also below the reorder point.
	records := []models.SalesRecord{
		rec("2024-01-01", "Widget", 10, 100),
		rec("2024-01-02", "Widget", 100, 100),
	}

	params := Params{LeadTimeDays: 4, ServiceLevel: 0.95, HoldingCostRate: 0.2}
	plans := Plan(records, params)
	require.Len(t, plans, 1)

	p := plans[0]
	stdDev := math.Sqrt(math.Pow(10-55, 2) + math.Pow(100-55, 2)) // sample std dev, n-1 = 1
	wantSafety := 1.645 * stdDev * 2
	assert.InDelta(t, wantSafety, p.SafetyStock, 0.01)
	assert.Greater(t, p.SafetyStock, p.CurrentStockLevel)
	assert.Equal(t, StatusCritical, p.CurrentStatus)
}

func TestPlanSingleRecordHasZeroStdDev(t *testing.T) {
	records := []models.SalesRecord{rec("2024-01-01", "Widget", 42, 500)}

	plans := Plan(records, DefaultParams())
	require.Len(t, plans, 1)
	assert.Equal(t, 0.0, plans[0].SafetyStock)
	assert.Equal(t, 42.0*5, plans[0].ReorderPoint)
}

func TestPlanEOQ(t *testing.T) {
	records := []models.SalesRecord{
		rec("2024-01-01", "Widget", 10, 500),
		rec("2024-01-02", "Widget", 10, 500),
	}

	plans := Plan(records, Params{LeadTimeDays: 5, ServiceLevel: 0.95, HoldingCostRate: 0.2})
	require.Len(t, plans, 1)

	want := math.Sqrt(2 * 10 * 365 * 50 / 0.2)
	assert.InDelta(t, want, plans[0].EOQ, 0.01)
}

func TestPlanZeroHoldingCostDisablesEOQ(t *testing.T) {
	records := []models.SalesRecord{rec("2024-01-01", "Widget", 10, 500)}

	plans := Plan(records, Params{LeadTimeDays: 5, ServiceLevel: 0.95, HoldingCostRate: 0})
	require.Len(t, plans, 1)
	assert.Equal(t, 0.0, plans[0].EOQ)
}

func TestPlanSkipsEmptyProductNames(t *testing.T) {
	records := []models.SalesRecord{
		rec("2024-01-01", "", 10, 100),
		rec("2024-01-01", "Widget", 10, 100),
	}

	plans := Plan(records, DefaultParams())
	require.Len(t, plans, 1)
	assert.Equal(t, "Widget", plans[0].Product)
}

func TestPlanFirstSeenOrderAndLatestStock(t *testing.T) {
	records := []models.SalesRecord{
		rec("2024-01-03", "Beta", 10, 111),
		rec("2024-01-01", "Alpha", 10, 999),
		rec("2024-01-05", "Beta", 10, 222),
		rec("2024-01-02", "Alpha", 10, 333),
	}

	plans := Plan(records, DefaultParams())
	require.Len(t, plans, 2)

	assert.Equal(t, "Beta", plans[0].Product)
	assert.Equal(t, 222.0, plans[0].CurrentStockLevel)
	assert.Equal(t, "Alpha", plans[1].Product)
	assert.Equal(t, 333.0, plans[1].CurrentStockLevel)
}

func TestPlanDoesNotMutateInput(t *testing.T) {
	records := []models.SalesRecord{
		rec("2024-01-05", "Widget", 10, 100),
		rec("2024-01-01", "Widget", 20, 200),
	}

	Plan(records, DefaultParams())

	assert.Equal(t, "2024-01-05", records[0].Date.String())
	assert.Equal(t, "2024-01-01", records[1].Date.String())
}

// Package inventory derives per-product replenishment plans (safety stock,
// reorder point, economic order quantity) from historical demand variability.
package inventory

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"demandai/models"
)

const (
	// serviceZScore approximates a 95% one-sided service level. The
	// requested service level is accepted for API compatibility but does
	// not vary the z-score; this is a known approximation carried over
	// from the planning spreadsheet the metrics were validated against.
	serviceZScore = 1.645

	// orderCostPerOrder is the fixed cost assumed per replenishment order,
	// in currency units.
	orderCostPerOrder = 50.0

	daysPerYear = 365
)

// Stock status classifications based on safety stock and reorder point.
// The dashboard uses a separate fixed-threshold classification; the two
// policies are intentionally distinct.
const (
	StatusOK       = "OK"
	StatusLow      = "Low"
	StatusCritical = "Critical"
)

// Params tunes the planning run.
type Params struct {
	LeadTimeDays    int
	ServiceLevel    float64
	HoldingCostRate float64
}

// DefaultParams matches the planning defaults: 5-day lead time, 95% service
// level, 20% annual holding cost rate.
func DefaultParams() Params {
	return Params{LeadTimeDays: 5, ServiceLevel: 0.95, HoldingCostRate: 0.2}
}

// Plan computes one InventoryPlan per distinct non-empty product, in first-seen
// order. Input records are not modified. An empty input yields an empty slice.
func Plan(records []models.SalesRecord, p Params) []models.InventoryPlan {
	byProduct := make(map[string][]models.SalesRecord)
	var order []string
	for _, r := range records {
		if r.Product == "" {
			continue
		}
		if _, seen := byProduct[r.Product]; !seen {
			order = append(order, r.Product)
		}
		byProduct[r.Product] = append(byProduct[r.Product], r)
	}

	plans := make([]models.InventoryPlan, 0, len(order))
	for _, product := range order {
		plans = append(plans, planProduct(product, byProduct[product], p))
	}
	return plans
}

func planProduct(product string, recs []models.SalesRecord, p Params) models.InventoryPlan {
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Date.Before(recs[j].Date.Time) })

	usage := make([]float64, len(recs))
	for i, r := range recs {
		usage[i] = r.UnitsSold
	}

	dailyUsage := stat.Mean(usage, nil)

	var stdDevUsage float64
	if len(usage) > 1 {
		stdDevUsage = stat.StdDev(usage, nil)
	}

	safetyStock := serviceZScore * stdDevUsage * math.Sqrt(float64(p.LeadTimeDays))
	reorderPoint := dailyUsage*float64(p.LeadTimeDays) + safetyStock

	// Latest record wins; the stable sort keeps insertion order on date ties.
	currentStock := recs[len(recs)-1].Inventory

	status := StatusOK
	if currentStock < reorderPoint {
		status = StatusLow
	}
	if currentStock < safetyStock {
		status = StatusCritical
	}

	var eoq float64
	if p.HoldingCostRate > 0 {
		annualDemand := dailyUsage * daysPerYear
		eoq = math.Sqrt(2 * annualDemand * orderCostPerOrder / p.HoldingCostRate)
	}

	return models.InventoryPlan{
		Product:           product,
		ReorderPoint:      round2(reorderPoint),
		SafetyStock:       round2(safetyStock),
		CurrentStockLevel: currentStock,
		CurrentStatus:     status,
		EOQ:               round2(eoq),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

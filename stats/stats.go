// Package stats computes dashboard-level rollups and per-product detail views
// over canonical sales records.
package stats

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"demandai/models"
)

const (
	// accuracyPlaceholder is an illustrative figure shown on the dashboard
	// until real forecast backtesting exists. It is not computed from data.
	accuracyPlaceholder = 94.2

	// stockRiskThreshold flags a product as at-risk when its latest
	// recorded inventory falls below this many units.
	stockRiskThreshold = 150.0

	// Fixed thresholds for the per-product detail view. These are a
	// separate policy from the inventory engine's safety-stock-based
	// classification and deliberately stay that way.
	productCriticalThreshold = 50.0
	productLowThreshold      = 150.0
)

// Jitter produces the perturbation factor applied to the mock forecast line
// in the sales trend chart. Inject a deterministic one in tests.
type Jitter func() float64

// DefaultJitter returns a uniform factor in [-0.1, +0.1).
func DefaultJitter() Jitter {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return func() float64 {
		return (rng.Float64() - 0.5) * 0.2
	}
}

// ZeroJitter leaves the mock forecast equal to the actual value.
func ZeroJitter() float64 { return 0 }

// Dashboard computes the dashboard aggregates. An empty input yields a zeroed
// struct with empty (non-nil) slices.
func Dashboard(records []models.SalesRecord, jitter Jitter) models.DashboardStats {
	stats := models.DashboardStats{
		SalesTrend:   []models.TrendPoint{},
		RegionDemand: []models.RegionDemand{},
	}
	if len(records) == 0 {
		return stats
	}
	if jitter == nil {
		jitter = DefaultJitter()
	}

	var totalRevenue float64
	productsSeen := make(map[string]bool)
	for _, r := range records {
		totalRevenue += r.Revenue()
		productsSeen[r.Product] = true
	}
	stats.TotalRevenue = round2(totalRevenue)
	stats.ActiveForecasts = len(productsSeen)
	stats.AvgAccuracy = accuracyPlaceholder

	for _, latest := range latestByProduct(records) {
		if latest.Inventory < stockRiskThreshold {
			stats.StockRiskCount++
		}
	}

	stats.SalesTrend = salesTrend(records, jitter)
	stats.RegionDemand = regionDemand(records)
	return stats
}

// salesTrend groups revenue by date ascending. The forecast value is the
// actual revenue perturbed by the jitter factor; it is regenerated on every
// call and only exists so the chart has a second line.
func salesTrend(records []models.SalesRecord, jitter Jitter) []models.TrendPoint {
	revenueByDate := make(map[time.Time]float64)
	for _, r := range records {
		revenueByDate[r.Date.Time] += r.Revenue()
	}

	dates := make([]time.Time, 0, len(revenueByDate))
	for d := range revenueByDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	trend := make([]models.TrendPoint, 0, len(dates))
	for _, d := range dates {
		actual := revenueByDate[d]
		trend = append(trend, models.TrendPoint{
			Label:    d.Format("Jan 02"),
			Sales:    round2(actual),
			Forecast: round2(actual * (1 + jitter())),
		})
	}
	return trend
}

// regionDemand groups units by (region, product), rolls up per region, keeps
// only products with positive units sorted descending, and sorts regions by
// total demand descending. Ties keep alphabetical order.
func regionDemand(records []models.SalesRecord) []models.RegionDemand {
	type key struct{ region, product string }
	units := make(map[key]float64)
	for _, r := range records {
		units[key{r.Region, r.Product}] += r.UnitsSold
	}

	perRegion := make(map[string][]models.ProductShare)
	totals := make(map[string]float64)
	for k, u := range units {
		totals[k.region] += u
		if u > 0 {
			perRegion[k.region] = append(perRegion[k.region], models.ProductShare{
				Product: k.product,
				Units:   int(u),
			})
		}
	}

	regions := make([]string, 0, len(totals))
	for region := range totals {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	demand := make([]models.RegionDemand, 0, len(regions))
	for _, region := range regions {
		products := perRegion[region]
		sort.SliceStable(products, func(i, j int) bool {
			if products[i].Units != products[j].Units {
				return products[i].Units > products[j].Units
			}
			return products[i].Product < products[j].Product
		})
		if products == nil {
			products = []models.ProductShare{}
		}
		demand = append(demand, models.RegionDemand{
			Region:   region,
			Demand:   int(totals[region]),
			Products: products,
		})
	}
	sort.SliceStable(demand, func(i, j int) bool { return demand[i].Demand > demand[j].Demand })
	return demand
}

// ProductDetail computes the detail view for one product. An unmatched name
// yields a stub with status "Unknown" and empty sequences.
func ProductDetail(records []models.SalesRecord, product string) models.ProductStats {
	var matched []models.SalesRecord
	for _, r := range records {
		if r.Product == product {
			matched = append(matched, r)
		}
	}

	stats := models.ProductStats{
		Product:           product,
		StockStatus:       "Unknown",
		DailyTrend:        []models.DailyTrendPoint{},
		RegionalBreakdown: []models.RegionalUnits{},
	}
	if len(matched) == 0 {
		return stats
	}

	var totalRevenue, totalUnits float64
	for _, r := range matched {
		totalRevenue += r.Revenue()
		totalUnits += r.UnitsSold
	}
	stats.TotalRevenue = round2(totalRevenue)
	stats.TotalUnits = int(totalUnits)

	latest := matched[0]
	for _, r := range matched[1:] {
		if !r.Date.Before(latest.Date.Time) {
			latest = r
		}
	}
	stats.CurrentStock = latest.Inventory
	stats.StockStatus = fixedThresholdStatus(latest.Inventory)

	stats.DailyTrend = dailyTrend(matched)
	stats.RegionalBreakdown = regionalBreakdown(matched)
	return stats
}

// fixedThresholdStatus is the dashboard's stock-health policy. It is not the
// same classification the inventory engine derives from safety stock.
func fixedThresholdStatus(stock float64) string {
	switch {
	case stock < productCriticalThreshold:
		return "Critical"
	case stock < productLowThreshold:
		return "Low"
	default:
		return "Good"
	}
}

func dailyTrend(records []models.SalesRecord) []models.DailyTrendPoint {
	type daily struct{ revenue, units float64 }
	byDate := make(map[time.Time]daily)
	for _, r := range records {
		d := byDate[r.Date.Time]
		d.revenue += r.Revenue()
		d.units += r.UnitsSold
		byDate[r.Date.Time] = d
	}

	dates := make([]time.Time, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	trend := make([]models.DailyTrendPoint, 0, len(dates))
	for _, d := range dates {
		trend = append(trend, models.DailyTrendPoint{
			Date:  d.Format(time.DateOnly),
			Sales: byDate[d].revenue,
			Units: int(byDate[d].units),
		})
	}
	return trend
}

func regionalBreakdown(records []models.SalesRecord) []models.RegionalUnits {
	byRegion := make(map[string]float64)
	for _, r := range records {
		byRegion[r.Region] += r.UnitsSold
	}

	regions := make([]string, 0, len(byRegion))
	for region := range byRegion {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	breakdown := make([]models.RegionalUnits, 0, len(regions))
	for _, region := range regions {
		breakdown = append(breakdown, models.RegionalUnits{
			Region: region,
			Units:  int(byRegion[region]),
		})
	}
	return breakdown
}

// latestByProduct returns each product's chronologically-latest record; on
// date ties the later record in input order wins.
func latestByProduct(records []models.SalesRecord) map[string]models.SalesRecord {
	latest := make(map[string]models.SalesRecord)
	for _, r := range records {
		cur, ok := latest[r.Product]
		if !ok || !r.Date.Before(cur.Date.Time) {
			latest[r.Product] = r
		}
	}
	return latest
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Package forecast fits an additive trend-plus-seasonality model to daily
// demand and projects it forward. The model mirrors a decomposable
// time-series forecaster: linear trend, yearly Fourier seasonality, and an
// uncertainty band calibrated on in-sample residuals.
package forecast

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"demandai/models"
)

// ErrInsufficientData is returned when fewer than MinObservations distinct
// dates remain after aggregation.
var ErrInsufficientData = errors.New("not enough data points for forecasting")

const (
	// MinObservations is the minimum number of distinct observation dates.
	MinObservations = 5

	// DefaultHorizon is the number of future periods projected when the
	// caller does not specify one.
	DefaultHorizon = 30

	// yearlyPeriodDays is the seasonality period in days.
	yearlyPeriodDays = 365.25

	// maxFourierOrder caps the yearly seasonality resolution.
	maxFourierOrder = 10

	// ridgeLambda regularizes the seasonal coefficients so short series
	// still yield a well-conditioned fit.
	ridgeLambda = 1.0

	// intervalZ converts the residual standard deviation into an 80%
	// uncertainty band.
	intervalZ = 1.2815515655446004
)

// Frequency is the calendar step used when extending the date index.
type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

// ParseFrequency accepts both the long names and the single-letter aliases
// used by older clients ("D", "W", "M"). Unknown values default to daily.
func ParseFrequency(s string) Frequency {
	switch s {
	case "W", "w", "weekly":
		return Weekly
	case "M", "m", "monthly":
		return Monthly
	default:
		return Daily
	}
}

func (f Frequency) step(t time.Time) time.Time {
	switch f {
	case Weekly:
		return t.AddDate(0, 0, 7)
	case Monthly:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

type observation struct {
	date   time.Time
	demand float64
}

// Forecast aggregates units sold by date, fits the model, and evaluates it
// over the historical dates plus horizon future steps. Output slices are
// parallel and share one entry per date, ascending.
func Forecast(records []models.SalesRecord, horizon int, freq Frequency) (*models.ForecastResult, error) {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}

	obs := aggregateByDate(records)
	if len(obs) < MinObservations {
		err := fmt.Errorf("%w: need at least %d distinct dates, got %d", ErrInsufficientData, MinObservations, len(obs))
		log.Printf("Forecasting error: %v", err)
		return nil, err
	}

	m := fit(obs)

	dates := extendDates(obs, horizon, freq)

	result := &models.ForecastResult{
		Dates:     make([]string, len(dates)),
		Yhat:      make([]float64, len(dates)),
		YhatLower: make([]float64, len(dates)),
		YhatUpper: make([]float64, len(dates)),
		Trend:     make([]float64, len(dates)),
	}

	for i, d := range dates {
		trend, seasonal := m.components(d)
		yhat := trend + seasonal
		result.Dates[i] = d.Format(time.DateOnly)
		result.Yhat[i] = sanitize(yhat)
		result.YhatLower[i] = sanitize(yhat - intervalZ*m.residualStd)
		result.YhatUpper[i] = sanitize(yhat + intervalZ*m.residualStd)
		result.Trend[i] = sanitize(trend)
	}

	return result, nil
}

// aggregateByDate sums demand per distinct calendar date, ascending. Dates
// with no records are left out of the series entirely; gaps are not
// zero-filled.
func aggregateByDate(records []models.SalesRecord) []observation {
	totals := make(map[time.Time]float64)
	for _, r := range records {
		totals[r.Date.Time] += r.UnitsSold
	}

	obs := make([]observation, 0, len(totals))
	for d, y := range totals {
		obs = append(obs, observation{date: d, demand: y})
	}
	sort.Slice(obs, func(i, j int) bool { return obs[i].date.Before(obs[j].date) })
	return obs
}

func extendDates(obs []observation, horizon int, freq Frequency) []time.Time {
	dates := make([]time.Time, 0, len(obs)+horizon)
	for _, o := range obs {
		dates = append(dates, o.date)
	}
	cursor := obs[len(obs)-1].date
	for i := 0; i < horizon; i++ {
		cursor = freq.step(cursor)
		dates = append(dates, cursor)
	}
	return dates
}

// model is a fitted additive model. beta holds the intercept, the slope on
// scaled time, then sin/cos pairs for each Fourier order.
type model struct {
	origin      time.Time
	timeScale   float64
	order       int
	beta        []float64
	residualStd float64
}

func fit(obs []observation) *model {
	n := len(obs)
	m := &model{
		origin: obs[0].date,
		order:  fourierOrder(n),
	}
	m.timeScale = obs[n-1].date.Sub(m.origin).Hours() / 24
	if m.timeScale == 0 {
		m.timeScale = 1
	}

	p := 2 + 2*m.order
	x := mat.NewDense(n, p, nil)
	y := mat.NewVecDense(n, nil)
	for i, o := range obs {
		x.SetRow(i, m.features(o.date))
		y.SetVec(i, o.demand)
	}

	// Ridge-regularized normal equations. Trend terms carry a negligible
	// penalty; seasonal terms carry ridgeLambda.
	var xtx mat.Dense
	xtx.Mul(x.T(), x)
	for j := 0; j < p; j++ {
		lambda := ridgeLambda
		if j < 2 {
			lambda = 1e-8
		}
		xtx.Set(j, j, xtx.At(j, j)+lambda)
	}

	var xty mat.VecDense
	xty.MulVec(x.T(), y)

	var beta mat.VecDense
	if err := beta.SolveVec(&xtx, &xty); err != nil {
		// Singular despite regularization; fall back to a flat trend at
		// the mean demand.
		log.Printf("forecast: ridge solve failed, falling back to mean model: %v", err)
		m.beta = make([]float64, p)
		m.beta[0] = stat.Mean(rawDemand(obs), nil)
	} else {
		m.beta = make([]float64, p)
		for j := 0; j < p; j++ {
			m.beta[j] = beta.AtVec(j)
		}
	}

	residuals := make([]float64, n)
	for i, o := range obs {
		trend, seasonal := m.components(o.date)
		residuals[i] = o.demand - trend - seasonal
	}
	if n > 1 {
		m.residualStd = stat.StdDev(residuals, nil)
	}
	return m
}

// fourierOrder scales the seasonal resolution down with sample size so the
// design matrix never has more meaningful columns than observations.
func fourierOrder(n int) int {
	order := (n - 3) / 2
	if order > maxFourierOrder {
		order = maxFourierOrder
	}
	if order < 1 {
		order = 1
	}
	return order
}

func (m *model) features(d time.Time) []float64 {
	days := d.Sub(m.origin).Hours() / 24
	row := make([]float64, 2+2*m.order)
	row[0] = 1
	row[1] = days / m.timeScale
	for k := 1; k <= m.order; k++ {
		angle := 2 * math.Pi * float64(k) * days / yearlyPeriodDays
		row[2*k] = math.Sin(angle)
		row[2*k+1] = math.Cos(angle)
	}
	return row
}

func (m *model) components(d time.Time) (trend, seasonal float64) {
	row := m.features(d)
	trend = m.beta[0] + m.beta[1]*row[1]
	for j := 2; j < len(row); j++ {
		seasonal += m.beta[j] * row[j]
	}
	return trend, seasonal
}

func rawDemand(obs []observation) []float64 {
	ys := make([]float64, len(obs))
	for i, o := range obs {
		ys[i] = o.demand
	}
	return ys
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

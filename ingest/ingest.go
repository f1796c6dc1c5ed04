// Package ingest turns uploaded tabular sales files (CSV or Excel) into
// canonical sales records. All tolerant coercion lives here: fuzzy column-name
// resolution, per-field defaults, and numeric fallbacks. Downstream engines
// receive fully normalized records and never re-coerce.
package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"demandai/models"
)

// Defaults substituted when a field is missing or unparseable.
const (
	UnknownProduct = "Unknown Product"
	UnknownRegion  = "Unknown Region"
)

// columnAliases maps each canonical field to its accepted header aliases, in
// priority order. Matching is loose containment over trimmed, lowercased
// headers, so "Transaction Date " matches the date aliases.
var columnAliases = map[string][]string{
	"date":       {"date", "time", "period", "day", "txn_date", "transaction_date"},
	"product":    {"product", "item", "sku", "product_name", "model", "name"},
	"region":     {"region", "location", "area", "zone", "city", "state", "country", "store"},
	"units_sold": {"units_sold", "units", "sold", "sales", "quantity", "qty", "demand", "volume"},
	"price":      {"price", "selling_price", "unit_price", "cost", "amount", "revenue", "value"},
	"inventory":  {"inventory", "stock", "stock_level", "on_hand", "qty_on_hand"},
}

var dateLayouts = []string{
	time.DateOnly,
	"2006/01/02",
	"01/02/2006",
	"02-01-2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ParseUpload dispatches on the file extension. Only .csv, .xlsx and .xls are
// accepted.
func ParseUpload(filename string, data []byte) ([]models.SalesRecord, error) {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		return ParseCSV(bytes.NewReader(data))
	case strings.HasSuffix(lower, ".xlsx"), strings.HasSuffix(lower, ".xls"):
		return ParseXLSX(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported file type %q, expected csv or excel", filename)
	}
}

// ParseCSV reads a CSV stream (UTF-8 BOM tolerated) into canonical records.
func ParseCSV(r io.Reader) ([]models.SalesRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return fromRows(rows)
}

// ParseXLSX reads the first sheet of an Excel workbook into canonical records.
func ParseXLSX(r io.Reader) ([]models.SalesRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return fromRows(rows)
}

func fromRows(rows [][]string) ([]models.SalesRecord, error) {
	if len(rows) == 0 {
		return []models.SalesRecord{}, nil
	}

	cols := resolveColumns(rows[0])
	today := models.NewDate(time.Now())

	records := make([]models.SalesRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		records = append(records, models.SalesRecord{
			Date:      coerceDate(cell(row, cols, "date"), today),
			Product:   coerceString(cell(row, cols, "product"), UnknownProduct),
			Region:    coerceString(cell(row, cols, "region"), UnknownRegion),
			UnitsSold: coerceFloat(cell(row, cols, "units_sold")),
			Price:     coerceFloat(cell(row, cols, "price")),
			Inventory: coerceFloat(cell(row, cols, "inventory")),
		})
	}
	return records, nil
}

// resolveColumns maps canonical field names to column indices using the alias
// table. The first alias that matches any header wins, so alias priority
// beats header position.
func resolveColumns(header []string) map[string]int {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	cols := make(map[string]int)
	for field, aliases := range columnAliases {
		for _, alias := range aliases {
			idx := -1
			for i, h := range normalized {
				if strings.Contains(h, alias) {
					idx = i
					break
				}
			}
			if idx >= 0 {
				cols[field] = idx
				break
			}
		}
	}
	return cols
}

func cell(row []string, cols map[string]int, field string) string {
	idx, ok := cols[field]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func coerceDate(raw string, fallback models.Date) models.Date {
	if raw == "" {
		return fallback
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return models.NewDate(t)
		}
	}
	return fallback
}

func coerceString(raw, fallback string) string {
	if raw == "" || strings.EqualFold(raw, "nan") {
		return fallback
	}
	return raw
}

func coerceFloat(raw string) float64 {
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

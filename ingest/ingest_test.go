package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"demandai/models"
)

func TestParseCSVCanonicalHeaders(t *testing.T) {
	csv := "date,product,region,units_sold,price,inventory\n" +
		"2024-01-01,Widget,North,10,2.5,300\n" +
		"2024-01-02,Gadget,South,20,5,150\n"

	records, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "2024-01-01", records[0].Date.String())
	assert.Equal(t, "Widget", records[0].Product)
	assert.Equal(t, "North", records[0].Region)
	assert.Equal(t, 10.0, records[0].UnitsSold)
	assert.Equal(t, 2.5, records[0].Price)
	assert.Equal(t, 300.0, records[0].Inventory)
	assert.Equal(t, "Gadget", records[1].Product)
}

func TestParseCSVAliasHeaders(t *testing.T) {
	csv := "Transaction Date,Item,Location,Qty,Unit Price,Stock\n" +
		"2024-03-05,Lamp,West,7,19.99,88\n"

	records, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "2024-03-05", r.Date.String())
	assert.Equal(t, "Lamp", r.Product)
	assert.Equal(t, "West", r.Region)
	assert.Equal(t, 7.0, r.UnitsSold)
	assert.Equal(t, 19.99, r.Price)
	assert.Equal(t, 88.0, r.Inventory)
}

func TestParseCSVStripsBOM(t *testing.T) {
	csv := "\ufeffdate,product,region,units_sold,price,inventory\n" +
		"2024-01-01,Widget,North,10,2,300\n"

	records, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2024-01-01", records[0].Date.String())
}

func TestParseCSVCoercionDefaults(t *testing.T) {
	csv := "date,product,region,units_sold,price,inventory\n" +
		"not-a-date,,nan,abc,-5,\n"

	records, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	today := models.NewDate(time.Now())
	assert.Equal(t, today.String(), r.Date.String())
	assert.Equal(t, UnknownProduct, r.Product)
	assert.Equal(t, UnknownRegion, r.Region)
	assert.Equal(t, 0.0, r.UnitsSold) // unparseable
	assert.Equal(t, 0.0, r.Price)     // negative clamps to zero
	assert.Equal(t, 0.0, r.Inventory)
}

func TestParseCSVThousandsSeparators(t *testing.T) {
	csv := "date,product,region,units_sold,price,inventory\n" +
		"2024-01-01,Widget,North,\"1,250\",10,\"3,000\"\n"

	records, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1250.0, records[0].UnitsSold)
	assert.Equal(t, 3000.0, records[0].Inventory)
}

func TestParseCSVSkipsBlankRows(t *testing.T) {
	csv := "date,product,region,units_sold,price,inventory\n" +
		"2024-01-01,Widget,North,10,2,300\n" +
		",,,,,\n" +
		"2024-01-02,Widget,North,12,2,290\n"

	records, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestParseCSVHeaderOnly(t *testing.T) {
	records, err := ParseCSV(strings.NewReader("date,product,region,units_sold,price,inventory\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)
}

func TestParseCSVAlternateDateLayouts(t *testing.T) {
	csv := "date,product,region,units_sold,price,inventory\n" +
		"2024/02/03,Widget,North,1,1,1\n" +
		"02/03/2024,Widget,North,1,1,1\n"

	records, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2024-02-03", records[0].Date.String())
	assert.Equal(t, "2024-02-03", records[1].Date.String())
}

func TestParseUploadRejectsUnknownExtension(t *testing.T) {
	_, err := ParseUpload("data.pdf", []byte("whatever"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestParseUploadDispatchesCSV(t *testing.T) {
	data := []byte("date,product,region,units_sold,price,inventory\n2024-01-01,Widget,North,10,2,300\n")

	records, err := ParseUpload("sales.CSV", data)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestParseXLSXRoundTrip(t *testing.T) {
	f := excelize.NewFile()
	headers := []string{"Date", "Product", "Region", "Units Sold", "Price", "Inventory"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", cell, h))
	}
	row := []interface{}{"2024-01-01", "Widget", "North", 10, 2.5, 300}
	for i, v := range row {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", cell, v))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	records, err := ParseXLSX(buf)
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "2024-01-01", r.Date.String())
	assert.Equal(t, "Widget", r.Product)
	assert.Equal(t, "North", r.Region)
	assert.Equal(t, 10.0, r.UnitsSold)
	assert.Equal(t, 2.5, r.Price)
	assert.Equal(t, 300.0, r.Inventory)
}

func TestParseXLSXRejectsGarbage(t *testing.T) {
	_, err := ParseUpload("sales.xlsx", []byte("this is not a zip archive"))
	assert.Error(t, err)
}

package handlers

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"demandai/ingest"
	"demandai/store"
)

// lowStockAlertThreshold triggers the post-upload inventory warning.
const lowStockAlertThreshold = 50.0

// HandleUpload ingests a CSV or Excel file, replaces the current dataset with
// its records (clean-slate policy), and logs notifications for the upload and
// any critically low stock it contains.
// POST /api/v1/upload
func HandleUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Missing file upload"})
	}

	name := strings.ToLower(fileHeader.Filename)
	if !strings.HasSuffix(name, ".csv") && !strings.HasSuffix(name, ".xlsx") && !strings.HasSuffix(name, ".xls") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid file type. Please upload a CSV or Excel file."})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening uploaded file %s: %v", fileHeader.Filename, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not read uploaded file"})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("Error reading uploaded file %s: %v", fileHeader.Filename, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not read uploaded file"})
	}

	records, err := ingest.ParseUpload(fileHeader.Filename, data)
	if err != nil {
		log.Printf("Upload parse error for %s: %v", fileHeader.Filename, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": fmt.Sprintf("Error processing file: %v", err)})
	}

	ctx := c.Context()

	// Uploads replace the dataset; the previous batch lands in the archive.
	if err := store.Clear(ctx); err != nil {
		log.Printf("Error archiving previous dataset: %v", err)
	}

	if err := store.InsertRecords(ctx, records); err != nil {
		log.Printf("Error inserting uploaded records: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to save uploaded data"})
	}

	var totalRevenue float64
	lowStock := make([]string, 0)
	for _, r := range records {
		totalRevenue += r.Revenue()
		if r.Inventory < lowStockAlertThreshold {
			lowStock = append(lowStock, r.Product)
		}
	}

	if err := store.AddNotification(ctx, "Data Upload Success",
		fmt.Sprintf("Successfully uploaded %d records. Total revenue processed: %.0f.", len(records), totalRevenue),
		"success"); err != nil {
		log.Printf("Error adding upload notification: %v", err)
	}

	if len(lowStock) > 0 {
		msg := "Critical stock levels for: " + strings.Join(lowStock[:min(3, len(lowStock))], ", ")
		if extra := len(lowStock) - 3; extra > 0 {
			msg += fmt.Sprintf(" and %d others.", extra)
		}
		if err := store.AddNotification(ctx, "Inventory Alert", msg, "warning"); err != nil {
			log.Printf("Error adding inventory alert: %v", err)
		}
	}

	return c.JSON(fiber.Map{"message": "Data uploaded and saved to database successfully", "count": len(records)})
}

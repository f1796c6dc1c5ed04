package handlers

import (
	"log"
	"sort"

	"github.com/gofiber/fiber/v2"

	"demandai/stats"
	"demandai/store"
)

// HandleDashboard returns the dashboard aggregates for the stored dataset.
// GET /api/v1/dashboard
func HandleDashboard(c *fiber.Ctx) error {
	records, err := store.FetchAll(c.Context())
	if err != nil {
		log.Printf("Error fetching sales records for dashboard: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Database error"})
	}

	return c.JSON(stats.Dashboard(records, stats.DefaultJitter()))
}

// HandleProductStats returns the detail view for one product.
// GET /api/v1/product-stats?product_name=...
func HandleProductStats(c *fiber.Ctx) error {
	productName := c.Query("product_name")
	if productName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "product_name is required"})
	}

	records, err := store.FetchAll(c.Context())
	if err != nil {
		log.Printf("Error fetching sales records for product stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Database error"})
	}

	return c.JSON(stats.ProductDetail(records, productName))
}

// HandleListProducts returns the distinct product names, sorted.
// GET /api/v1/products
func HandleListProducts(c *fiber.Ctx) error {
	records, err := store.FetchAll(c.Context())
	if err != nil {
		log.Printf("Error fetching sales records for product list: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Database error"})
	}

	seen := make(map[string]bool)
	products := make([]string, 0)
	for _, r := range records {
		if r.Product != "" && !seen[r.Product] {
			seen[r.Product] = true
			products = append(products, r.Product)
		}
	}
	sort.Strings(products)

	return c.JSON(products)
}

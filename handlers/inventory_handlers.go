package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"demandai/inventory"
	"demandai/models"
	"demandai/store"
)

// HandleInventoryPlan runs the inventory planning engine.
// POST /api/v1/inventory
func HandleInventoryPlan(c *fiber.Ctx) error {
	var req models.InventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}

	records := req.Data
	if len(records) == 0 {
		stored, err := store.FetchAll(c.Context())
		if err != nil {
			log.Printf("Error fetching sales records for inventory plan: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Database error"})
		}
		if len(stored) == 0 {
			return c.JSON([]models.InventoryPlan{})
		}
		records = stored
	}

	params := inventory.DefaultParams()
	if req.LeadTime > 0 {
		params.LeadTimeDays = req.LeadTime
	}
	if req.ServiceLvl > 0 {
		params.ServiceLevel = req.ServiceLvl
	}
	if req.HoldingCost > 0 {
		params.HoldingCostRate = req.HoldingCost
	}

	return c.JSON(inventory.Plan(records, params))
}

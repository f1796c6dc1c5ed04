package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"demandai/store"
)

// HandleGetNotifications returns the notification log, newest first.
// GET /api/v1/notifications
func HandleGetNotifications(c *fiber.Ctx) error {
	notifications, err := store.Notifications(c.Context())
	if err != nil {
		log.Printf("Error fetching notifications: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Database error"})
	}
	return c.JSON(notifications)
}

// HandleMarkNotificationsRead flags all notifications as read.
// POST /api/v1/notifications/read
func HandleMarkNotificationsRead(c *fiber.Ctx) error {
	if err := store.MarkNotificationsRead(c.Context()); err != nil {
		log.Printf("Error marking notifications read: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Database error"})
	}
	return c.JSON(fiber.Map{"status": "success"})
}

// HandleClearNotifications empties the notification log.
// POST /api/v1/notifications/clear
func HandleClearNotifications(c *fiber.Ctx) error {
	if err := store.ClearNotifications(c.Context()); err != nil {
		log.Printf("Error clearing notifications: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Database error"})
	}
	return c.JSON(fiber.Map{"status": "success"})
}

// HandleGetHistory returns summaries of archived upload batches.
// GET /api/v1/history
func HandleGetHistory(c *fiber.Ctx) error {
	history, err := store.ArchivedHistory(c.Context())
	if err != nil {
		log.Printf("Error fetching archived history: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Database error"})
	}
	return c.JSON(history)
}

// HandleClearData archives the current dataset and empties the store.
// POST /api/v1/clear-data
func HandleClearData(c *fiber.Ctx) error {
	ctx := c.Context()
	if err := store.Clear(ctx); err != nil {
		log.Printf("Error clearing sales data: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to clear data"})
	}

	if err := store.AddNotification(ctx, "Data Cleared",
		"All sales data has been cleared and archived to history.", "info"); err != nil {
		log.Printf("Error adding clear-data notification: %v", err)
	}

	return c.JSON(fiber.Map{"status": "success"})
}

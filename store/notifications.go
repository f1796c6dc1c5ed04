package store

import (
	"context"
	"fmt"

	"demandai/database"
	"demandai/models"
)

// AddNotification appends one entry to the notification log.
func AddNotification(ctx context.Context, title, message, notificationType string) error {
	_, err := database.GetDB().Exec(ctx,
		"INSERT INTO notifications (title, message, notification_type) VALUES ($1, $2, $3)",
		title, message, notificationType,
	)
	if err != nil {
		return fmt.Errorf("failed to add notification: %w", err)
	}
	return nil
}

// Notifications returns the log, newest first.
func Notifications(ctx context.Context) ([]models.Notification, error) {
	query := `
		SELECT id, title, message, notification_type, is_read, created_at
		FROM notifications
		ORDER BY created_at DESC, id DESC
	`
	rows, err := database.GetDB().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]models.Notification, 0)
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkNotificationsRead flags every notification as read.
func MarkNotificationsRead(ctx context.Context) error {
	_, err := database.GetDB().Exec(ctx, "UPDATE notifications SET is_read = TRUE WHERE is_read = FALSE")
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// ClearNotifications empties the notification log.
func ClearNotifications(ctx context.Context) error {
	if _, err := database.GetDB().Exec(ctx, "DELETE FROM notifications"); err != nil {
		return fmt.Errorf("failed to clear notifications: %w", err)
	}
	return nil
}

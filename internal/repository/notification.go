package repository

import (
	"context"
	"fmt"

	"github.com/tournevent/fulfillment/internal/entity"
	"github.com/tournevent/fulfillment/pkg/storage/postgres"
)

type NotificationRepository struct {
	db *postgres.Postgres
}

func NewNotificationRepository(db *postgres.Postgres) *NotificationRepository {
	return &NotificationRepository{db}
}

func (r *NotificationRepository) SaveNotification(ctx context.Context, n *entity.Notification) error {
	const op = "repository.notification.SaveNotification"

	query := r.db.Builder.
		Insert("notifications").
		Columns("notification_id", "customer_id", "order_id", "status", "created_at").
		Values(n.ID, n.CustomerID, n.OrderID, n.Status, n.CreatedAt)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("%s: building query: %w", op, err)
	}

	if _, err := r.db.Pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("%s: exec: %w", op, err)
	}

	return nil
}

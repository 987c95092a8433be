// Package repository implements the persistence interfaces over PostgreSQL.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/tournevent/fulfillment/internal/entity"
	"github.com/tournevent/fulfillment/pkg/storage/postgres"
)

type OrderRepository struct {
	db *postgres.Postgres
}

func NewOrderRepository(db *postgres.Postgres) *OrderRepository {
	return &OrderRepository{db}
}

func (r *OrderRepository) GetOrder(ctx context.Context, orderID string) (*entity.Order, error) {
	const op = "repository.order.GetOrder"

	query := r.db.Builder.
		Select("order_id", "customer_id", "status",
			"ship_name", "ship_phone", "ship_address", "ship_city",
			"ship_area", "ship_post_code", "ship_country", "created_at").
		From("orders").
		Where(squirrel.Eq{"order_id": orderID}).
		Limit(1)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	order := &entity.Order{}
	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(
		&order.ID,
		&order.CustomerID,
		&order.Status,
		&order.Destination.Name,
		&order.Destination.Phone,
		&order.Destination.AddressLine,
		&order.Destination.City,
		&order.Destination.Area,
		&order.Destination.PostalCode,
		&order.Destination.CountryCode,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrOrderNotFound
		}
		return nil, fmt.Errorf("%s: query row: %w", op, err)
	}

	return order, nil
}

func (r *OrderRepository) ListLineItems(ctx context.Context, orderID string) ([]entity.LineItem, error) {
	const op = "repository.order.ListLineItems"

	query := r.db.Builder.
		Select("item_id", "order_id", "product_id", "vendor_id",
			"quantity", "unit_price", "status", "COALESCE(shipping_id, '')").
		From("line_items").
		Where(squirrel.Eq{"order_id": orderID}).
		OrderBy("item_id")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	var items []entity.LineItem
	for rows.Next() {
		var item entity.LineItem
		if err = rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.VendorID,
			&item.Quantity,
			&item.UnitPrice,
			&item.Status,
			&item.ShippingID,
		); err != nil {
			return nil, fmt.Errorf("%s: row scan: %w", op, err)
		}
		items = append(items, item)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows final error: %w", op, rows.Err())
	}

	return items, nil
}

func (r *OrderRepository) SetVendorShipment(ctx context.Context, orderID, vendorID, trackingNo string) error {
	const op = "repository.order.SetVendorShipment"

	query := r.db.Builder.
		Update("line_items").
		Set("shipping_id", trackingNo).
		Set("status", entity.LineItemShipped).
		Where(squirrel.Eq{"order_id": orderID, "vendor_id": vendorID})

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("%s: building query: %w", op, err)
	}

	tag, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("%s: exec: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: order %s vendor %s: %w", op, orderID, vendorID, entity.ErrDataNotFound)
	}

	return nil
}

func (r *OrderRepository) MarkShipmentCancelled(ctx context.Context, orderID, trackingNo string) error {
	const op = "repository.order.MarkShipmentCancelled"

	query := r.db.Builder.
		Update("line_items").
		Set("status", entity.LineItemCancelled).
		Where(squirrel.Eq{"order_id": orderID, "shipping_id": trackingNo})

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("%s: building query: %w", op, err)
	}

	if _, err := r.db.Pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("%s: exec: %w", op, err)
	}

	return nil
}

func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, status entity.OrderStatus) error {
	const op = "repository.order.UpdateOrderStatus"

	query := r.db.Builder.
		Update("orders").
		Set("status", status).
		Where(squirrel.Eq{"order_id": orderID})

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("%s: building query: %w", op, err)
	}

	tag, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("%s: exec: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: order %s: %w", op, orderID, entity.ErrOrderNotFound)
	}

	return nil
}

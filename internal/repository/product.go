package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/tournevent/fulfillment/internal/entity"
	"github.com/tournevent/fulfillment/pkg/storage/postgres"
)

type ProductRepository struct {
	db *postgres.Postgres
}

func NewProductRepository(db *postgres.Postgres) *ProductRepository {
	return &ProductRepository{db}
}

func (r *ProductRepository) GetProducts(ctx context.Context, ids []string) (map[string]entity.Product, error) {
	const op = "repository.product.GetProducts"

	products := make(map[string]entity.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	query := r.db.Builder.
		Select("product_id", "name", "COALESCE(weight, 0)").
		From("products").
		Where(squirrel.Eq{"product_id": ids})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p entity.Product
		if err = rows.Scan(&p.ID, &p.Name, &p.Weight); err != nil {
			return nil, fmt.Errorf("%s: row scan: %w", op, err)
		}
		products[p.ID] = p
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows final error: %w", op, rows.Err())
	}

	return products, nil
}

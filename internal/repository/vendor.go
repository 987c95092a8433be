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

type VendorRepository struct {
	db *postgres.Postgres
}

func NewVendorRepository(db *postgres.Postgres) *VendorRepository {
	return &VendorRepository{db}
}

func (r *VendorRepository) GetProfile(ctx context.Context, vendorID string) (*entity.VendorProfile, error) {
	const op = "repository.vendor.GetProfile"

	query := r.db.Builder.
		Select("vendor_id", "store_name", "owner_name", "phone",
			"COALESCE(location, '')",
			"COALESCE(house, '')", "COALESCE(building, '')", "COALESCE(area, '')",
			"COALESCE(city, '')", "COALESCE(post_code, '')").
		From("vendors").
		Where(squirrel.Eq{"vendor_id": vendorID}).
		Limit(1)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	profile := &entity.VendorProfile{}
	origin := entity.OriginAddress{}
	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(
		&profile.ID,
		&profile.StoreName,
		&profile.OwnerName,
		&profile.Phone,
		&profile.Location,
		&origin.House,
		&origin.Building,
		&origin.Area,
		&origin.City,
		&origin.PostalCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrVendorNotFound
		}
		return nil, fmt.Errorf("%s: query row: %w", op, err)
	}

	// An all-empty structured address means the vendor only ever entered the
	// free-text location.
	if origin != (entity.OriginAddress{}) {
		profile.Origin = &origin
	}

	return profile, nil
}

package readstore

import (
	"context"

	"velostore/internal/infra"
	"velostore/internal/infra/db"
	"velostore/internal/pkg/pgconv"
	"velostore/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ProductReadStore struct {
	db db.DBTX
}

func NewProductReadStore(dbtx db.DBTX) *ProductReadStore {
	return &ProductReadStore{db: dbtx}
}

func (r *ProductReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	const q = `
		SELECT id, name, list_price_cents, rent_price_cents, is_rentable
		FROM products
		WHERE id = $1`

	var (
		snap      shared.ProductSnapshot
		rentPrice pgtype.Int8
	)
	err := r.db.QueryRow(ctx, q, pgconv.UUIDToPgtype(id)).Scan(
		&snap.ID, &snap.Name, &snap.ListPriceCents, &rentPrice, &snap.IsRentable,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product by ID", err)
	}
	snap.RentPriceCents = pgconv.Int64PtrFromPgtype(rentPrice)
	return &snap, nil
}

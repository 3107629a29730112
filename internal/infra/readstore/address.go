package readstore

import (
	"context"

	"velostore/internal/infra"
	"velostore/internal/infra/db"
	"velostore/internal/pkg/pgconv"
	"velostore/internal/usecase/shared"

	"github.com/google/uuid"
)

type AddressReadStore struct {
	db db.DBTX
}

func NewAddressReadStore(dbtx db.DBTX) *AddressReadStore {
	return &AddressReadStore{db: dbtx}
}

func (r *AddressReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.AddressSnapshot, error) {
	const q = `SELECT id, customer_id FROM addresses WHERE id = $1`

	var snap shared.AddressSnapshot
	err := r.db.QueryRow(ctx, q, pgconv.UUIDToPgtype(id)).Scan(&snap.ID, &snap.CustomerID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("address not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find address by ID", err)
	}
	return &snap, nil
}

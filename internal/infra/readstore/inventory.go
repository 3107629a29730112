package readstore

import (
	"context"

	"velostore/internal/domain/inventory"
	"velostore/internal/infra"
	"velostore/internal/infra/db"
	"velostore/internal/pkg/config"
	"velostore/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type InventoryReadStore struct {
	db                    db.DBTX
	maintenanceLocationID int16
}

func NewInventoryReadStore(dbtx db.DBTX, cfg config.RentalConfig) *InventoryReadStore {
	return &InventoryReadStore{db: dbtx, maintenanceLocationID: cfg.MaintenanceLocationID}
}

// SnapshotByProduct is the unlocked availability rollup: physical units across
// locations, units parked at the maintenance location and quantities on rental
// orders that are still out.
func (r *InventoryReadStore) SnapshotByProduct(ctx context.Context, productID uuid.UUID) (*inventory.Snapshot, error) {
	const q = `
		SELECT (SELECT COUNT(*) FROM product_assets a
		         WHERE a.product_id = p.id) AS total_physical,
		       (SELECT COUNT(*) FROM product_assets a
		         WHERE a.product_id = p.id AND a.location_id = $2) AS maintenance,
		       (SELECT COALESCE(SUM(l.quantity), 0) FROM rental_order_lines l
		          JOIN rental_orders ro ON ro.id = l.rental_order_id
		         WHERE l.product_id = p.id
		           AND ro.status IN ('Active', 'Confirmed', 'Preparing', 'Delivered',
		                             'Overdue', 'Cancel Requested', 'Return Requested')) AS renting
		FROM products p
		WHERE p.id = $1`

	var total, maintenance, renting int64
	err := r.db.QueryRow(ctx, q, pgconv.UUIDToPgtype(productID), r.maintenanceLocationID).
		Scan(&total, &maintenance, &renting)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to compute availability", err)
	}

	snap := inventory.NewSnapshot(productID, int32(total), int32(maintenance), int32(renting))
	return &snap, nil
}

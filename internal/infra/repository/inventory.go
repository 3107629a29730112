package repository

import (
	"context"

	"velostore/internal/infra"
	"velostore/internal/infra/db"
	"velostore/internal/pkg/config"
	"velostore/internal/usecase/shared"

	"github.com/google/uuid"
)

// rentingStatuses is the set of rental order statuses that still hold stock.
const rentingStatuses = `('Active', 'Confirmed', 'Preparing', 'Delivered', 'Overdue', 'Cancel Requested', 'Return Requested')`

type InventoryRepository struct {
	maintenanceLocationID int16
}

func NewInventoryRepository(cfg config.RentalConfig) shared.InventoryRepository {
	return &InventoryRepository{maintenanceLocationID: cfg.MaintenanceLocationID}
}

// AvailableForUpdate first takes row locks on the products, then computes the
// availability rollup. The lock serializes concurrent checkouts touching the
// same products, so check-then-create cannot oversell.
func (r *InventoryRepository) AvailableForUpdate(ctx context.Context, dbtx db.DBTX, productIDs []uuid.UUID) (map[uuid.UUID]int32, error) {
	if len(productIDs) == 0 {
		return map[uuid.UUID]int32{}, nil
	}

	// Deterministic lock order avoids deadlocks between overlapping checkouts.
	const lockQ = `SELECT id FROM products WHERE id = ANY($1) ORDER BY id FOR UPDATE`
	rows, err := dbtx.Query(ctx, lockQ, productIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock product rows", err)
	}
	locked := 0
	for rows.Next() {
		locked++
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to lock product rows", err)
	}
	if locked != len(productIDs) {
		return nil, infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}

	const rollupQ = `
		SELECT p.id,
		       (SELECT COUNT(*) FROM product_assets a
		         WHERE a.product_id = p.id) AS total_physical,
		       (SELECT COUNT(*) FROM product_assets a
		         WHERE a.product_id = p.id AND a.location_id = $2) AS maintenance,
		       (SELECT COALESCE(SUM(l.quantity), 0) FROM rental_order_lines l
		          JOIN rental_orders ro ON ro.id = l.rental_order_id
		         WHERE l.product_id = p.id AND ro.status IN ` + rentingStatuses + `) AS renting
		FROM products p
		WHERE p.id = ANY($1)`

	rows, err = dbtx.Query(ctx, rollupQ, productIDs, r.maintenanceLocationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to compute product availability", err)
	}
	defer rows.Close()

	available := make(map[uuid.UUID]int32, len(productIDs))
	for rows.Next() {
		var id uuid.UUID
		var total, maintenance, renting int64
		if err := rows.Scan(&id, &total, &maintenance, &renting); err != nil {
			return nil, infra.WrapRepoErr("failed to scan availability row", err)
		}
		avail := total - maintenance - renting
		if avail < 0 {
			avail = 0
		}
		available[id] = int32(avail)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read availability rows", err)
	}
	return available, nil
}

package repository

import (
	"context"

	"velostore/internal/infra"
	"velostore/internal/infra/db"
	"velostore/internal/pkg/pgconv"
	"velostore/internal/usecase/shared"

	"github.com/google/uuid"
)

type VoucherRepository struct{}

func NewVoucherRepository() shared.VoucherRepository {
	return &VoucherRepository{}
}

// DecrementQuantity is the atomic claim on one redemption. The quantity guard
// in the WHERE clause makes the read-check-write race impossible: of N
// concurrent redeemers of a quantity-1 voucher exactly one sees RowsAffected=1.
func (r *VoucherRepository) DecrementQuantity(ctx context.Context, dbtx db.DBTX, voucherID uuid.UUID) error {
	const q = `
		UPDATE vouchers
		SET remaining_quantity = remaining_quantity - 1
		WHERE id = $1 AND remaining_quantity > 0`

	tag, err := dbtx.Exec(ctx, q, pgconv.UUIDToPgtype(voucherID))
	if err != nil {
		return infra.WrapRepoErr("failed to decrement voucher quantity", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("voucher has no remaining quantity", nil, infra.KindConflict)
	}
	return nil
}

func (r *VoucherRepository) RecordUsage(ctx context.Context, dbtx db.DBTX, usage shared.VoucherUsage) error {
	const q = `
		INSERT INTO voucher_usages (voucher_id, customer_id, sale_order_id, rental_order_id, used_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := dbtx.Exec(ctx, q,
		pgconv.UUIDToPgtype(usage.VoucherID),
		pgconv.UUIDToPgtype(usage.CustomerID),
		pgconv.UUIDPtrToPgtype(usage.SaleOrderID),
		pgconv.UUIDPtrToPgtype(usage.RentalOrderID),
		pgconv.TimeToPgtype(usage.UsedAt),
	)
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			return infra.WrapRepoErr("voucher already used by customer", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to record voucher usage", err)
	}
	return nil
}

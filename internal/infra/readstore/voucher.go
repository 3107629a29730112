package readstore

import (
	"context"
	"strings"
	"time"

	"velostore/internal/domain/voucher"
	"velostore/internal/infra"
	"velostore/internal/infra/db"
	"velostore/internal/pkg/pgconv"
	"velostore/internal/usecase/queries"
	"velostore/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type VoucherReadStore struct {
	db db.DBTX
}

func NewVoucherReadStore(dbtx db.DBTX) *VoucherReadStore {
	return &VoucherReadStore{db: dbtx}
}

const voucherColumns = `
	id, code, name, scope, discount_percent, discount_amount_cents,
	start_at, end_at, min_order_cents, remaining_quantity, active, target_rank`

type voucherRow struct {
	ID                uuid.UUID
	Code              string
	Name              string
	Scope             string
	Percent           pgtype.Int4
	AmountCents       pgtype.Int8
	StartAt           pgtype.Timestamptz
	EndAt             pgtype.Timestamptz
	MinOrderCents     int64
	RemainingQuantity int32
	Active            bool
	TargetRank        pgtype.Text
}

func scanVoucherRow(row interface{ Scan(dest ...any) error }) (*voucherRow, error) {
	var r voucherRow
	err := row.Scan(
		&r.ID, &r.Code, &r.Name, &r.Scope, &r.Percent, &r.AmountCents,
		&r.StartAt, &r.EndAt, &r.MinOrderCents, &r.RemainingQuantity, &r.Active, &r.TargetRank,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// FindByCode is case-insensitive; codes are stored upper-cased.
func (r *VoucherReadStore) FindByCode(ctx context.Context, code string) (*voucher.Voucher, error) {
	row, err := r.findRowByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	v, err := voucher.NewVoucher(
		row.ID, row.Code, row.Name, row.Scope,
		pgconv.Int32PtrFromPgtype(row.Percent),
		pgconv.Int64PtrFromPgtype(row.AmountCents),
		pgconv.TimeFromPgtype(row.StartAt),
		pgconv.TimeFromPgtype(row.EndAt),
		row.MinOrderCents, row.RemainingQuantity, row.Active,
		pgconv.StringPtrFromPgtype(row.TargetRank),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to reconstruct voucher", err)
	}
	return v, nil
}

func (r *VoucherReadStore) FindSnapshotByCode(ctx context.Context, code string) (*shared.VoucherSnapshot, error) {
	row, err := r.findRowByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return &shared.VoucherSnapshot{
		ID:                row.ID,
		Code:              row.Code,
		Name:              row.Name,
		Scope:             row.Scope,
		Percent:           pgconv.Int32PtrFromPgtype(row.Percent),
		AmountCents:       pgconv.Int64PtrFromPgtype(row.AmountCents),
		StartAt:           pgconv.TimeFromPgtype(row.StartAt),
		EndAt:             pgconv.TimeFromPgtype(row.EndAt),
		MinOrderCents:     row.MinOrderCents,
		RemainingQuantity: row.RemainingQuantity,
		Active:            row.Active,
		TargetRank:        pgconv.StringPtrFromPgtype(row.TargetRank),
	}, nil
}

func (r *VoucherReadStore) findRowByCode(ctx context.Context, code string) (*voucherRow, error) {
	q := `SELECT ` + voucherColumns + ` FROM vouchers WHERE code = $1`

	row, err := scanVoucherRow(r.db.QueryRow(ctx, q, strings.ToUpper(strings.TrimSpace(code))))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("voucher not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find voucher by code", err)
	}
	return row, nil
}

func (r *VoucherReadStore) ListRedeemable(ctx context.Context, scope *string, now time.Time) ([]*queries.VoucherView, error) {
	q := `
		SELECT ` + voucherColumns + `
		FROM vouchers
		WHERE active = TRUE
		  AND start_at <= $1 AND end_at >= $1
		  AND remaining_quantity > 0`
	args := []any{pgconv.TimeToPgtype(now)}

	if scope != nil {
		q += ` AND scope IN ($2, 'all')`
		args = append(args, strings.ToLower(*scope))
	}
	q += ` ORDER BY end_at, code`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list vouchers", err)
	}
	defer rows.Close()

	var views []*queries.VoucherView
	for rows.Next() {
		row, err := scanVoucherRow(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan voucher row", err)
		}
		views = append(views, &queries.VoucherView{
			ID:            row.ID,
			Code:          row.Code,
			Name:          row.Name,
			Scope:         row.Scope,
			Percent:       pgconv.Int32PtrFromPgtype(row.Percent),
			AmountCents:   pgconv.Int64PtrFromPgtype(row.AmountCents),
			StartAt:       pgconv.TimeFromPgtype(row.StartAt),
			EndAt:         pgconv.TimeFromPgtype(row.EndAt),
			MinOrderCents: row.MinOrderCents,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read voucher rows", err)
	}
	return views, nil
}

func (r *VoucherReadStore) UsageExists(ctx context.Context, voucherID, customerID uuid.UUID) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM voucher_usages WHERE voucher_id = $1 AND customer_id = $2)`

	var exists bool
	err := r.db.QueryRow(ctx, q, pgconv.UUIDToPgtype(voucherID), pgconv.UUIDToPgtype(customerID)).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check voucher usage", err)
	}
	return exists, nil
}

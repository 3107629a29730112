//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestCustomer(t *testing.T, db DBLike, email, rank string) uuid.UUID {
	t.Helper()

	customerID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO customers (id, email, name, rank) VALUES ($1, $2, $3, $4) ON CONFLICT (email) DO NOTHING",
		customerID, email, "Test Customer", rank)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM customers WHERE email = $1", email).Scan(&customerID)
	}

	return customerID
}

func CreateTestAddress(t *testing.T, db DBLike, customerID uuid.UUID) uuid.UUID {
	t.Helper()

	addressID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO addresses (id, customer_id, line1, city, postal_code) VALUES ($1, $2, $3, $4, $5)",
		addressID, customerID, "1 Test Street", "Testville", "00000")
	require.NoError(t, err)

	return addressID
}

func CreateTestProduct(t *testing.T, db DBLike, name string, listPriceCents int64, rentPriceCents *int64) uuid.UUID {
	t.Helper()

	productID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO products (id, name, list_price_cents, rent_price_cents, is_rentable) VALUES ($1, $2, $3, $4, $5)",
		productID, name, listPriceCents, rentPriceCents, rentPriceCents != nil)
	require.NoError(t, err)

	return productID
}

// CreateTestAssets registers count physical units for a rentable product.
// Availability counts distinct assets outside the maintenance location.
func CreateTestAssets(t *testing.T, db DBLike, productID uuid.UUID, count int, locationID int16) []string {
	t.Helper()

	ids := make([]string, count)
	for i := range count {
		ids[i] = fmt.Sprintf("AST-%s-%d", productID.String()[:8], i)
		_, err := db.Exec(context.Background(),
			"INSERT INTO product_assets (id, product_id, location_id) VALUES ($1, $2, $3)",
			ids[i], productID, locationID)
		require.NoError(t, err)
	}
	return ids
}

type VoucherFixture struct {
	Code                string
	Scope               string
	DiscountPercent     *int32
	DiscountAmountCents *int64
	MinOrderCents       int64
	RemainingQuantity   int32
	Active              bool
	TargetRank          *string
}

func CreateTestVoucher(t *testing.T, db DBLike, fixture VoucherFixture) uuid.UUID {
	t.Helper()

	voucherID := uuid.New()
	now := time.Now()
	_, err := db.Exec(context.Background(),
		`INSERT INTO vouchers (id, code, name, scope, discount_percent, discount_amount_cents,
		                       start_at, end_at, min_order_cents, remaining_quantity, active, target_rank)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		voucherID, fixture.Code, "Test Voucher "+fixture.Code, fixture.Scope,
		fixture.DiscountPercent, fixture.DiscountAmountCents,
		now.Add(-time.Hour), now.Add(24*time.Hour),
		fixture.MinOrderCents, fixture.RemainingQuantity, fixture.Active, fixture.TargetRank)
	require.NoError(t, err)

	return voucherID
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables so each subtest starts from a clean slate
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}

package shared

import (
	"context"
	"time"

	"velostore/internal/domain/cart"
	"velostore/internal/domain/order"
	"velostore/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Carts() CartRepository
	Vouchers() VoucherRepository
	SaleOrders() SaleOrderRepository
	RentalOrders() RentalOrderRepository
	Inventory() InventoryRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	ProductByID(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error)
	AddressByID(ctx context.Context, id uuid.UUID) (*AddressSnapshot, error)
	VoucherByCode(ctx context.Context, code string) (*VoucherSnapshot, error)
	VoucherUsed(ctx context.Context, voucherID, customerID uuid.UUID) (bool, error)
	ActiveCartByCustomer(ctx context.Context, customerID uuid.UUID) (*CartSnapshot, error)
	CartLineByID(ctx context.Context, lineID uuid.UUID) (*CartLineSnapshot, error)
	SaleOrderByID(ctx context.Context, id uuid.UUID) (*SaleOrderSnapshot, error)
	RentalOrderByID(ctx context.Context, id uuid.UUID) (*RentalOrderSnapshot, error)
}

type CartRepository interface {
	Create(ctx context.Context, db db.DBTX, c *cart.Cart) error
	// UpsertLine merges on the (cart, product, kind, rental days) key,
	// adding quantities when the line already exists.
	UpsertLine(ctx context.Context, db db.DBTX, line *cart.Line) (uuid.UUID, error)
	UpdateLine(ctx context.Context, db db.DBTX, line *cart.Line) error
	DeleteLine(ctx context.Context, db db.DBTX, cartID, lineID uuid.UUID) error
	Convert(ctx context.Context, db db.DBTX, c *cart.Cart) error
}

type VoucherRepository interface {
	// DecrementQuantity succeeds only while quantity remains; the caller maps
	// a CONFLICT kind to the exhausted-voucher domain error.
	DecrementQuantity(ctx context.Context, db db.DBTX, voucherID uuid.UUID) error
	RecordUsage(ctx context.Context, db db.DBTX, usage VoucherUsage) error
}

type SaleOrderRepository interface {
	Create(ctx context.Context, db db.DBTX, o *order.SaleOrder) error
	Update(ctx context.Context, db db.DBTX, o *order.SaleOrder) error
}

type RentalOrderRepository interface {
	Create(ctx context.Context, db db.DBTX, o *order.RentalOrder) error
	Update(ctx context.Context, db db.DBTX, o *order.RentalOrder) error
	UpdateLinePreparation(ctx context.Context, db db.DBTX, orderID uuid.UUID, line order.RentalLine) error
	// MarkOverdue flips every out-in-the-field order past its due date to
	// Overdue and returns how many rows changed.
	MarkOverdue(ctx context.Context, db db.DBTX, asOf time.Time) (int64, error)
}

type InventoryRepository interface {
	// AvailableForUpdate locks the touched products' stock rows and returns
	// current availability per product, so checkout's check-then-act is safe.
	AvailableForUpdate(ctx context.Context, db db.DBTX, productIDs []uuid.UUID) (map[uuid.UUID]int32, error)
}

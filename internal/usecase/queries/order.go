package queries

import (
	"context"
	"time"

	"velostore/internal/infra"
	"velostore/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound = errs.New("order not found")
	ErrOrderAccess   = errs.New("order does not belong to customer")
)

const RoleStaff = "staff"

type SaleOrderLineView struct {
	ID             uuid.UUID `json:"id"`
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	Quantity       int32     `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	SubtotalCents  int64     `json:"subtotal_cents"`
}

type SaleOrderView struct {
	ID                      uuid.UUID           `json:"id"`
	Number                  string              `json:"number"`
	CustomerID              uuid.UUID           `json:"customer_id"`
	OrderDate               time.Time           `json:"order_date"`
	Status                  string              `json:"status"`
	FreightCents            int64               `json:"freight_cents"`
	TotalDueCents           int64               `json:"total_due_cents"`
	PaymentMethod           string              `json:"payment_method"`
	Note                    *string             `json:"note,omitempty"`
	CancellationRequestedAt *time.Time          `json:"cancellation_requested_at,omitempty"`
	CancellationReason      *string             `json:"cancellation_reason,omitempty"`
	Lines                   []SaleOrderLineView `json:"lines"`
}

type RentalOrderLineView struct {
	ID              uuid.UUID `json:"id"`
	ProductID       uuid.UUID `json:"product_id"`
	ProductName     string    `json:"product_name"`
	Quantity        int32     `json:"quantity"`
	UnitPriceCents  int64     `json:"unit_price_cents"`
	RentalDays      int32     `json:"rental_days"`
	SubtotalCents   int64     `json:"subtotal_cents"`
	AssignedAssetID *string   `json:"assigned_asset_id,omitempty"`
	ConditionNotes  *string   `json:"condition_notes,omitempty"`
	EvidencePhotos  []string  `json:"evidence_photos,omitempty"`
}

type RentalOrderView struct {
	ID            uuid.UUID             `json:"id"`
	Number        string                `json:"number"`
	CustomerID    uuid.UUID             `json:"customer_id"`
	RentalDate    time.Time             `json:"rental_date"`
	DueDate       time.Time             `json:"due_date"`
	ReturnDate    *time.Time            `json:"return_date,omitempty"`
	Status        string                `json:"status"`
	StatusCode    int16                 `json:"status_code,omitempty"`
	TotalDueCents int64                 `json:"total_due_cents"`
	PaymentMethod string                `json:"payment_method"`
	Lines         []RentalOrderLineView `json:"lines"`
}

type SaleOrderListItem struct {
	ID            uuid.UUID `json:"id"`
	Number        string    `json:"number"`
	OrderDate     time.Time `json:"order_date"`
	Status        string    `json:"status"`
	TotalDueCents int64     `json:"total_due_cents"`
}

type RentalOrderListItem struct {
	ID            uuid.UUID  `json:"id"`
	Number        string     `json:"number"`
	RentalDate    time.Time  `json:"rental_date"`
	DueDate       time.Time  `json:"due_date"`
	ReturnDate    *time.Time `json:"return_date,omitempty"`
	Status        string     `json:"status"`
	TotalDueCents int64      `json:"total_due_cents"`
}

type OrderHistoryView struct {
	Sales   []*SaleOrderListItem   `json:"sales"`
	Rentals []*RentalOrderListItem `json:"rentals"`
}

type OrderReadStore interface {
	FindSaleByID(ctx context.Context, id uuid.UUID) (*SaleOrderView, error)
	FindRentalByID(ctx context.Context, id uuid.UUID) (*RentalOrderView, error)
	ListSalesByCustomer(ctx context.Context, customerID uuid.UUID) ([]*SaleOrderListItem, error)
	ListRentalsByCustomer(ctx context.Context, customerID uuid.UUID) ([]*RentalOrderListItem, error)
}

type OrderQueries interface {
	GetSale(ctx context.Context, id, actorID uuid.UUID, actorRole string) (*SaleOrderView, error)
	GetRental(ctx context.Context, id, actorID uuid.UUID, actorRole string) (*RentalOrderView, error)
	History(ctx context.Context, customerID uuid.UUID) (*OrderHistoryView, error)
}

type orderQueriesImpl struct {
	store OrderReadStore
}

func NewOrderQueries(store OrderReadStore) OrderQueries {
	return &orderQueriesImpl{store: store}
}

func (q *orderQueriesImpl) GetSale(ctx context.Context, id, actorID uuid.UUID, actorRole string) (*SaleOrderView, error) {
	view, err := q.store.FindSaleByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if actorRole != RoleStaff && view.CustomerID != actorID {
		return nil, ErrOrderAccess
	}
	return view, nil
}

func (q *orderQueriesImpl) GetRental(ctx context.Context, id, actorID uuid.UUID, actorRole string) (*RentalOrderView, error) {
	view, err := q.store.FindRentalByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if actorRole != RoleStaff && view.CustomerID != actorID {
		return nil, ErrOrderAccess
	}
	return view, nil
}

func (q *orderQueriesImpl) History(ctx context.Context, customerID uuid.UUID) (*OrderHistoryView, error) {
	sales, err := q.store.ListSalesByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	rentals, err := q.store.ListRentalsByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return &OrderHistoryView{Sales: sales, Rentals: rentals}, nil
}

package shared

import (
	"time"

	"github.com/google/uuid"
)

type ProductSnapshot struct {
	ID             uuid.UUID
	Name           string
	ListPriceCents int64
	RentPriceCents *int64
	IsRentable     bool
}

type AddressSnapshot struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
}

type VoucherSnapshot struct {
	ID                uuid.UUID
	Code              string
	Name              string
	Scope             string
	Percent           *int32
	AmountCents       *int64
	StartAt           time.Time
	EndAt             time.Time
	MinOrderCents     int64
	RemainingQuantity int32
	Active            bool
	TargetRank        *string
}

type CartSnapshot struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Status     string
	CheckedOut bool
	CreatedAt  time.Time
	ModifiedAt time.Time
	Lines      []CartLineSnapshot
}

type CartLineSnapshot struct {
	ID             uuid.UUID
	CartID         uuid.UUID
	ProductID      uuid.UUID
	Kind           string
	Quantity       int32
	UnitPriceCents int64
	RentalDays     *int32
	AddedAt        time.Time
	UpdatedAt      time.Time
}

type SaleOrderSnapshot struct {
	ID                      uuid.UUID
	CustomerID              uuid.UUID
	Number                  string
	OrderDate               time.Time
	Status                  string
	FreightCents            int64
	TotalDueCents           int64
	ShipAddressID           uuid.UUID
	PaymentMethod           string
	Note                    *string
	CancellationRequestedAt *time.Time
	CancellationReason      *string
	ModifiedAt              time.Time
	Lines                   []SaleOrderLineSnapshot
}

type SaleOrderLineSnapshot struct {
	ID             uuid.UUID
	ProductID      uuid.UUID
	Quantity       int32
	UnitPriceCents int64
}

type RentalOrderSnapshot struct {
	ID                uuid.UUID
	CustomerID        uuid.UUID
	Number            string
	RentalDate        time.Time
	DueDate           time.Time
	ReturnDate        *time.Time
	Status            string
	TotalDueCents     int64
	DeliveryAddressID uuid.UUID
	PaymentMethod     string
	ModifiedAt        time.Time
	Lines             []RentalOrderLineSnapshot
}

type RentalOrderLineSnapshot struct {
	ID              uuid.UUID
	ProductID       uuid.UUID
	Quantity        int32
	UnitPriceCents  int64
	RentalDays      int32
	AssignedAssetID *string
	ConditionNotes  *string
	EvidencePhotos  []string
}

type VoucherUsage struct {
	VoucherID     uuid.UUID
	CustomerID    uuid.UUID
	SaleOrderID   *uuid.UUID
	RentalOrderID *uuid.UUID
	UsedAt        time.Time
}

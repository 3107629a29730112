package queries

import (
	"context"

	"velostore/internal/domain/inventory"
	"velostore/internal/infra"
	"velostore/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrProductNotFound = errs.New("product not found")

type AvailabilityView struct {
	ProductID     uuid.UUID `json:"product_id"`
	TotalPhysical int32     `json:"total_physical"`
	Maintenance   int32     `json:"maintenance"`
	Renting       int32     `json:"renting"`
	Available     int32     `json:"available"`
}

type InventoryReadStore interface {
	SnapshotByProduct(ctx context.Context, productID uuid.UUID) (*inventory.Snapshot, error)
}

type InventoryQueries interface {
	GetAvailability(ctx context.Context, productID uuid.UUID) (*AvailabilityView, error)
}

type inventoryQueriesImpl struct {
	store InventoryReadStore
}

func NewInventoryQueries(store InventoryReadStore) InventoryQueries {
	return &inventoryQueriesImpl{store: store}
}

func (q *inventoryQueriesImpl) GetAvailability(ctx context.Context, productID uuid.UUID) (*AvailabilityView, error) {
	snap, err := q.store.SnapshotByProduct(ctx, productID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &AvailabilityView{
		ProductID:     snap.ProductID,
		TotalPhysical: snap.TotalPhysical,
		Maintenance:   snap.Maintenance,
		Renting:       snap.Renting,
		Available:     snap.Available,
	}, nil
}

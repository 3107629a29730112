//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"velostore/internal/domain/cart"
	"velostore/internal/pkg/clock"
	"velostore/internal/pkg/config"
	"velostore/internal/pkg/ptr"
	"velostore/internal/usecase/commands"
	"velostore/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cartNow = time.Date(2026, 5, 10, 14, 0, 0, 0, time.UTC)

func newCartUseCase(store *fakeStore) commands.CartCommands {
	cfg := config.RentalConfig{MinDays: 1, MaxDays: 30}
	return commands.NewCartUseCase(fakeUoW{store}, clock.NewMockClock(cartNow), cfg)
}

func seedProduct(store *fakeStore, listPriceCents int64, rentPriceCents *int64) uuid.UUID {
	id := uuid.New()
	store.products[id] = shared.ProductSnapshot{
		ID:             id,
		Name:           "city bike",
		ListPriceCents: listPriceCents,
		RentPriceCents: rentPriceCents,
		IsRentable:     rentPriceCents != nil,
	}
	return id
}

// indexLines mirrors the seeded cart's lines into the per-line lookup the
// update and remove paths read from.
func indexLines(store *fakeStore) {
	for _, l := range store.cart.Lines {
		store.cartLines[l.ID] = l
	}
}

func TestAddLine_BuyCreatesCartOnFirstAdd(t *testing.T) {
	store := newFakeStore()
	customerID := uuid.New()
	productID := seedProduct(store, 8000, nil)

	uc := newCartUseCase(store)
	result, err := uc.AddLine(context.Background(), customerID, commands.AddLineRequest{
		ProductID: productID,
		Kind:      "buy",
		Quantity:  2,
	})

	require.NoError(t, err)
	require.Len(t, store.createdCarts, 1)
	assert.Equal(t, store.createdCarts[0].ID(), result.CartID)
	assert.Equal(t, customerID, store.createdCarts[0].CustomerID())

	require.Len(t, store.upsertedLines, 1)
	line := store.upsertedLines[0]
	assert.Equal(t, line.ID(), result.LineID)
	assert.Equal(t, cart.KindBuy, line.Kind())
	assert.Equal(t, int32(2), line.Quantity())
	assert.Equal(t, int64(8000), line.UnitPriceCents())
	assert.Nil(t, line.RentalDays())
	assert.Equal(t, cartNow, line.AddedAt())
}

func TestAddLine_RentSnapshotsRentPrice(t *testing.T) {
	store := newFakeStore()
	customerID := uuid.New()
	productID := seedProduct(store, 220000, ptr.To(int64(3500)))
	cartID := seedCart(store, customerID)

	uc := newCartUseCase(store)
	result, err := uc.AddLine(context.Background(), customerID, commands.AddLineRequest{
		ProductID:  productID,
		Kind:       "rent",
		Quantity:   1,
		RentalDays: ptr.To(int32(7)),
	})

	require.NoError(t, err)
	assert.Equal(t, cartID, result.CartID)
	assert.Empty(t, store.createdCarts)

	require.Len(t, store.upsertedLines, 1)
	line := store.upsertedLines[0]
	assert.Equal(t, cart.KindRent, line.Kind())
	assert.Equal(t, int64(3500), line.UnitPriceCents())
	require.NotNil(t, line.RentalDays())
	assert.Equal(t, int32(7), *line.RentalDays())
}

func TestAddLine_Rejections(t *testing.T) {
	cases := []struct {
		name  string
		setup func(store *fakeStore) commands.AddLineRequest
		errIs error
	}{
		{
			name: "unknown product",
			setup: func(store *fakeStore) commands.AddLineRequest {
				return commands.AddLineRequest{ProductID: uuid.New(), Kind: "buy", Quantity: 1}
			},
			errIs: commands.ErrProductNotFound,
		},
		{
			name: "invalid kind",
			setup: func(store *fakeStore) commands.AddLineRequest {
				id := seedProduct(store, 8000, nil)
				return commands.AddLineRequest{ProductID: id, Kind: "lease", Quantity: 1}
			},
			errIs: cart.ErrInvalidKind,
		},
		{
			name: "rent of a buy-only product",
			setup: func(store *fakeStore) commands.AddLineRequest {
				id := seedProduct(store, 8000, nil)
				return commands.AddLineRequest{ProductID: id, Kind: "rent", Quantity: 1, RentalDays: ptr.To(int32(3))}
			},
			errIs: commands.ErrProductNotRentable,
		},
		{
			name: "rental days below minimum",
			setup: func(store *fakeStore) commands.AddLineRequest {
				id := seedProduct(store, 220000, ptr.To(int64(3500)))
				return commands.AddLineRequest{ProductID: id, Kind: "rent", Quantity: 1, RentalDays: ptr.To(int32(0))}
			},
			errIs: commands.ErrRentalDaysOutOfRange,
		},
		{
			name: "rental days above maximum",
			setup: func(store *fakeStore) commands.AddLineRequest {
				id := seedProduct(store, 220000, ptr.To(int64(3500)))
				return commands.AddLineRequest{ProductID: id, Kind: "rent", Quantity: 1, RentalDays: ptr.To(int32(31))}
			},
			errIs: commands.ErrRentalDaysOutOfRange,
		},
		{
			name: "rent without days",
			setup: func(store *fakeStore) commands.AddLineRequest {
				id := seedProduct(store, 220000, ptr.To(int64(3500)))
				return commands.AddLineRequest{ProductID: id, Kind: "rent", Quantity: 1}
			},
			errIs: cart.ErrRentalDaysRequired,
		},
		{
			name: "buy with days",
			setup: func(store *fakeStore) commands.AddLineRequest {
				id := seedProduct(store, 8000, nil)
				return commands.AddLineRequest{ProductID: id, Kind: "buy", Quantity: 1, RentalDays: ptr.To(int32(3))}
			},
			errIs: cart.ErrRentalDaysNotAllowed,
		},
		{
			name: "zero quantity",
			setup: func(store *fakeStore) commands.AddLineRequest {
				id := seedProduct(store, 8000, nil)
				return commands.AddLineRequest{ProductID: id, Kind: "buy", Quantity: 0}
			},
			errIs: cart.ErrInvalidQuantity,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			store := newFakeStore()
			customerID := uuid.New()
			req := c.setup(store)

			uc := newCartUseCase(store)
			result, err := uc.AddLine(context.Background(), customerID, req)

			require.ErrorIs(t, err, c.errIs)
			assert.Nil(t, result)
			assert.Empty(t, store.upsertedLines)
		})
	}
}

func TestUpdateLine(t *testing.T) {
	t.Run("updates quantity and rental days", func(t *testing.T) {
		store := newFakeStore()
		customerID := uuid.New()
		productID := uuid.New()
		seedCart(store, customerID, rentLine(uuid.Nil, productID, 1, 3500, 7))
		indexLines(store)
		lineID := store.cart.Lines[0].ID

		uc := newCartUseCase(store)
		err := uc.UpdateLine(context.Background(), customerID, lineID, commands.UpdateLineRequest{
			Quantity:   ptr.To(int32(2)),
			RentalDays: ptr.To(int32(14)),
		})

		require.NoError(t, err)
		require.Len(t, store.lineUpdates, 1)
		updated := store.lineUpdates[0]
		assert.Equal(t, int32(2), updated.Quantity())
		require.NotNil(t, updated.RentalDays())
		assert.Equal(t, int32(14), *updated.RentalDays())
		assert.Equal(t, cartNow, updated.UpdatedAt())
	})

	t.Run("rejects rental days outside policy", func(t *testing.T) {
		store := newFakeStore()
		customerID := uuid.New()
		seedCart(store, customerID, rentLine(uuid.Nil, uuid.New(), 1, 3500, 7))
		indexLines(store)
		lineID := store.cart.Lines[0].ID

		uc := newCartUseCase(store)
		err := uc.UpdateLine(context.Background(), customerID, lineID, commands.UpdateLineRequest{
			RentalDays: ptr.To(int32(45)),
		})

		require.ErrorIs(t, err, commands.ErrRentalDaysOutOfRange)
		assert.Empty(t, store.lineUpdates)
	})

	t.Run("rejects rental days on a buy line", func(t *testing.T) {
		store := newFakeStore()
		customerID := uuid.New()
		seedCart(store, customerID, buyLine(uuid.Nil, uuid.New(), 1, 8000))
		indexLines(store)
		lineID := store.cart.Lines[0].ID

		uc := newCartUseCase(store)
		err := uc.UpdateLine(context.Background(), customerID, lineID, commands.UpdateLineRequest{
			RentalDays: ptr.To(int32(5)),
		})

		require.ErrorIs(t, err, cart.ErrRentalDaysNotAllowed)
		assert.Empty(t, store.lineUpdates)
	})

	t.Run("unknown line", func(t *testing.T) {
		store := newFakeStore()
		customerID := uuid.New()
		seedCart(store, customerID)

		uc := newCartUseCase(store)
		err := uc.UpdateLine(context.Background(), customerID, uuid.New(), commands.UpdateLineRequest{
			Quantity: ptr.To(int32(2)),
		})

		require.ErrorIs(t, err, commands.ErrCartLineNotFound)
	})

	t.Run("line from another customer's cart reads as missing", func(t *testing.T) {
		store := newFakeStore()
		owner := uuid.New()
		intruder := uuid.New()
		seedCart(store, owner, buyLine(uuid.Nil, uuid.New(), 1, 8000))
		indexLines(store)
		lineID := store.cart.Lines[0].ID

		uc := newCartUseCase(store)
		err := uc.UpdateLine(context.Background(), intruder, lineID, commands.UpdateLineRequest{
			Quantity: ptr.To(int32(2)),
		})

		require.ErrorIs(t, err, commands.ErrCartLineNotFound)
		assert.Empty(t, store.lineUpdates)
	})
}

func TestRemoveLine(t *testing.T) {
	t.Run("deletes an owned line", func(t *testing.T) {
		store := newFakeStore()
		customerID := uuid.New()
		seedCart(store, customerID, buyLine(uuid.Nil, uuid.New(), 1, 8000))
		indexLines(store)
		lineID := store.cart.Lines[0].ID

		uc := newCartUseCase(store)
		err := uc.RemoveLine(context.Background(), customerID, lineID)

		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{lineID}, store.deletedLines)
	})

	t.Run("unknown line", func(t *testing.T) {
		store := newFakeStore()
		customerID := uuid.New()
		seedCart(store, customerID)

		uc := newCartUseCase(store)
		err := uc.RemoveLine(context.Background(), customerID, uuid.New())

		require.ErrorIs(t, err, commands.ErrCartLineNotFound)
		assert.Empty(t, store.deletedLines)
	})
}

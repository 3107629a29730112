//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"velostore/internal/domain/cart"
	"velostore/internal/domain/order"
	"velostore/internal/infra"
	"velostore/internal/infra/db"
	"velostore/internal/pkg/clock"
	"velostore/internal/pkg/ptr"
	"velostore/internal/usecase/commands"
	"velostore/internal/usecase/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory stand-in for the persistence layer. Reads serve
// from the seeded maps, writes append to the recorded slices, and the err
// fields let a test inject repository failures at specific points.
type fakeStore struct {
	cart         *shared.CartSnapshot
	cartLines    map[uuid.UUID]shared.CartLineSnapshot
	products     map[uuid.UUID]shared.ProductSnapshot
	addresses    map[uuid.UUID]shared.AddressSnapshot
	vouchers     map[string]shared.VoucherSnapshot
	used         map[uuid.UUID]bool
	available    map[uuid.UUID]int32
	saleOrders   map[uuid.UUID]*shared.SaleOrderSnapshot
	rentalOrders map[uuid.UUID]*shared.RentalOrderSnapshot

	saleCreateErrs   []error
	rentalCreateErrs []error
	decrementErr     error

	createdCarts  []*cart.Cart
	upsertedLines []*cart.Line
	lineUpdates   []*cart.Line
	deletedLines  []uuid.UUID
	sales         []*order.SaleOrder
	rentals       []*order.RentalOrder
	saleUpdates   []*order.SaleOrder
	rentalUpdates []*order.RentalOrder
	preparedLines []order.RentalLine
	converted     []uuid.UUID
	usages        []shared.VoucherUsage
	decrements    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		cartLines:    make(map[uuid.UUID]shared.CartLineSnapshot),
		products:     make(map[uuid.UUID]shared.ProductSnapshot),
		addresses:    make(map[uuid.UUID]shared.AddressSnapshot),
		vouchers:     make(map[string]shared.VoucherSnapshot),
		used:         make(map[uuid.UUID]bool),
		available:    make(map[uuid.UUID]int32),
		saleOrders:   make(map[uuid.UUID]*shared.SaleOrderSnapshot),
		rentalOrders: make(map[uuid.UUID]*shared.RentalOrderSnapshot),
	}
}

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

func (s *fakeStore) ProductByID(ctx context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, notFound("product")
	}
	return &p, nil
}

func (s *fakeStore) AddressByID(ctx context.Context, id uuid.UUID) (*shared.AddressSnapshot, error) {
	addr, ok := s.addresses[id]
	if !ok {
		return nil, notFound("address")
	}
	return &addr, nil
}

func (s *fakeStore) VoucherByCode(ctx context.Context, code string) (*shared.VoucherSnapshot, error) {
	v, ok := s.vouchers[code]
	if !ok {
		return nil, notFound("voucher")
	}
	return &v, nil
}

func (s *fakeStore) VoucherUsed(ctx context.Context, voucherID, customerID uuid.UUID) (bool, error) {
	return s.used[voucherID], nil
}

func (s *fakeStore) ActiveCartByCustomer(ctx context.Context, customerID uuid.UUID) (*shared.CartSnapshot, error) {
	if s.cart == nil || s.cart.CustomerID != customerID {
		return nil, notFound("active cart")
	}
	return s.cart, nil
}

func (s *fakeStore) CartLineByID(ctx context.Context, lineID uuid.UUID) (*shared.CartLineSnapshot, error) {
	line, ok := s.cartLines[lineID]
	if !ok {
		return nil, notFound("cart line")
	}
	return &line, nil
}

func (s *fakeStore) SaleOrderByID(ctx context.Context, id uuid.UUID) (*shared.SaleOrderSnapshot, error) {
	snap, ok := s.saleOrders[id]
	if !ok {
		return nil, notFound("sale order")
	}
	return snap, nil
}

func (s *fakeStore) RentalOrderByID(ctx context.Context, id uuid.UUID) (*shared.RentalOrderSnapshot, error) {
	snap, ok := s.rentalOrders[id]
	if !ok {
		return nil, notFound("rental order")
	}
	return snap, nil
}

type fakeCartRepo struct{ store *fakeStore }

func (r fakeCartRepo) Create(ctx context.Context, dbtx db.DBTX, c *cart.Cart) error {
	r.store.createdCarts = append(r.store.createdCarts, c)
	return nil
}

func (r fakeCartRepo) UpsertLine(ctx context.Context, dbtx db.DBTX, line *cart.Line) (uuid.UUID, error) {
	r.store.upsertedLines = append(r.store.upsertedLines, line)
	return line.ID(), nil
}

func (r fakeCartRepo) UpdateLine(ctx context.Context, dbtx db.DBTX, line *cart.Line) error {
	r.store.lineUpdates = append(r.store.lineUpdates, line)
	return nil
}

func (r fakeCartRepo) DeleteLine(ctx context.Context, dbtx db.DBTX, cartID, lineID uuid.UUID) error {
	r.store.deletedLines = append(r.store.deletedLines, lineID)
	return nil
}

func (r fakeCartRepo) Convert(ctx context.Context, dbtx db.DBTX, c *cart.Cart) error {
	r.store.converted = append(r.store.converted, c.ID())
	return nil
}

type fakeVoucherRepo struct{ store *fakeStore }

func (r fakeVoucherRepo) DecrementQuantity(ctx context.Context, dbtx db.DBTX, voucherID uuid.UUID) error {
	if r.store.decrementErr != nil {
		return r.store.decrementErr
	}
	r.store.decrements++
	return nil
}

func (r fakeVoucherRepo) RecordUsage(ctx context.Context, dbtx db.DBTX, usage shared.VoucherUsage) error {
	r.store.usages = append(r.store.usages, usage)
	return nil
}

type fakeSaleRepo struct{ store *fakeStore }

func (r fakeSaleRepo) Create(ctx context.Context, dbtx db.DBTX, o *order.SaleOrder) error {
	if len(r.store.saleCreateErrs) > 0 {
		err := r.store.saleCreateErrs[0]
		r.store.saleCreateErrs = r.store.saleCreateErrs[1:]
		if err != nil {
			return err
		}
	}
	r.store.sales = append(r.store.sales, o)
	return nil
}

func (r fakeSaleRepo) Update(ctx context.Context, dbtx db.DBTX, o *order.SaleOrder) error {
	r.store.saleUpdates = append(r.store.saleUpdates, o)
	return nil
}

type fakeRentalRepo struct{ store *fakeStore }

func (r fakeRentalRepo) Create(ctx context.Context, dbtx db.DBTX, o *order.RentalOrder) error {
	if len(r.store.rentalCreateErrs) > 0 {
		err := r.store.rentalCreateErrs[0]
		r.store.rentalCreateErrs = r.store.rentalCreateErrs[1:]
		if err != nil {
			return err
		}
	}
	r.store.rentals = append(r.store.rentals, o)
	return nil
}

func (r fakeRentalRepo) Update(ctx context.Context, dbtx db.DBTX, o *order.RentalOrder) error {
	r.store.rentalUpdates = append(r.store.rentalUpdates, o)
	return nil
}

func (r fakeRentalRepo) UpdateLinePreparation(ctx context.Context, dbtx db.DBTX, orderID uuid.UUID, line order.RentalLine) error {
	r.store.preparedLines = append(r.store.preparedLines, line)
	return nil
}

func (r fakeRentalRepo) MarkOverdue(ctx context.Context, dbtx db.DBTX, asOf time.Time) (int64, error) {
	return 0, nil
}

type fakeInventoryRepo struct{ store *fakeStore }

func (r fakeInventoryRepo) AvailableForUpdate(ctx context.Context, dbtx db.DBTX, productIDs []uuid.UUID) (map[uuid.UUID]int32, error) {
	out := make(map[uuid.UUID]int32, len(productIDs))
	for _, id := range productIDs {
		out[id] = r.store.available[id]
	}
	return out, nil
}

type fakeTx struct{ store *fakeStore }

func (t fakeTx) Carts() shared.CartRepository               { return fakeCartRepo{t.store} }
func (t fakeTx) Vouchers() shared.VoucherRepository         { return fakeVoucherRepo{t.store} }
func (t fakeTx) SaleOrders() shared.SaleOrderRepository     { return fakeSaleRepo{t.store} }
func (t fakeTx) RentalOrders() shared.RentalOrderRepository { return fakeRentalRepo{t.store} }
func (t fakeTx) Inventory() shared.InventoryRepository      { return fakeInventoryRepo{t.store} }
func (t fakeTx) Reads() shared.CommandReads                 { return t.store }
func (t fakeTx) DB() db.DBTX                                { return nil }

type fakeUoW struct{ store *fakeStore }

func (u fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, fakeTx{u.store})
}

func (u fakeUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u fakeUoW) CommandReads() shared.CommandReads { return u.store }

// ================================================================================
// Fixtures
// ================================================================================

var checkoutNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func buyLine(cartID, productID uuid.UUID, qty int32, unitPrice int64) shared.CartLineSnapshot {
	return shared.CartLineSnapshot{
		ID:             uuid.New(),
		CartID:         cartID,
		ProductID:      productID,
		Kind:           string(cart.KindBuy),
		Quantity:       qty,
		UnitPriceCents: unitPrice,
	}
}

func rentLine(cartID, productID uuid.UUID, qty int32, unitPrice int64, days int32) shared.CartLineSnapshot {
	return shared.CartLineSnapshot{
		ID:             uuid.New(),
		CartID:         cartID,
		ProductID:      productID,
		Kind:           string(cart.KindRent),
		Quantity:       qty,
		UnitPriceCents: unitPrice,
		RentalDays:     ptr.To(days),
	}
}

func seedCart(store *fakeStore, customerID uuid.UUID, lines ...shared.CartLineSnapshot) uuid.UUID {
	cartID := uuid.New()
	for i := range lines {
		lines[i].CartID = cartID
	}
	store.cart = &shared.CartSnapshot{
		ID:         cartID,
		CustomerID: customerID,
		Status:     string(cart.StatusActive),
		CreatedAt:  checkoutNow.Add(-time.Hour),
		ModifiedAt: checkoutNow.Add(-time.Hour),
		Lines:      lines,
	}
	return cartID
}

func seedAddress(store *fakeStore, customerID uuid.UUID) uuid.UUID {
	id := uuid.New()
	store.addresses[id] = shared.AddressSnapshot{ID: id, CustomerID: customerID}
	return id
}

func seedVoucher(store *fakeStore, code, scope string, percent *int32, amountCents *int64) uuid.UUID {
	id := uuid.New()
	store.vouchers[code] = shared.VoucherSnapshot{
		ID:                id,
		Code:              code,
		Name:              "spring promo",
		Scope:             scope,
		Percent:           percent,
		AmountCents:       amountCents,
		StartAt:           checkoutNow.Add(-24 * time.Hour),
		EndAt:             checkoutNow.Add(24 * time.Hour),
		RemainingQuantity: 5,
		Active:            true,
	}
	return id
}

// ================================================================================
// Tests
// ================================================================================

func TestCheckout_MixedCartCreatesBothOrders(t *testing.T) {
	store := newFakeStore()
	customerID := uuid.New()
	buyProduct := uuid.New()
	rentProduct := uuid.New()

	cartID := seedCart(store, customerID,
		buyLine(uuid.Nil, buyProduct, 2, 50000),     // 100000
		rentLine(uuid.Nil, rentProduct, 1, 3000, 7), // 21000
	)
	addressID := seedAddress(store, customerID)
	store.available[rentProduct] = 3

	uc := commands.NewCheckoutUseCase(fakeUoW{store}, clock.NewMockClock(checkoutNow))
	result, err := uc.Checkout(context.Background(), customerID, commands.CheckoutRequest{
		AddressID:     addressID,
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	require.NotNil(t, result.SaleOrderID)
	require.NotNil(t, result.RentalOrderID)
	assert.Equal(t, int64(0), result.DiscountCents)
	assert.Equal(t, int64(121000), result.TotalDueCents)

	require.Len(t, store.sales, 1)
	assert.Equal(t, int64(100000), store.sales[0].TotalDueCents())
	assert.Regexp(t, `^SO-20260315-`, store.sales[0].Number())

	require.Len(t, store.rentals, 1)
	assert.Equal(t, int64(21000), store.rentals[0].TotalDueCents())
	assert.Equal(t, checkoutNow.AddDate(0, 0, 7), store.rentals[0].DueDate())

	require.Len(t, store.converted, 1)
	assert.Equal(t, cartID, store.converted[0])
}

func TestCheckout_EmptyCart(t *testing.T) {
	store := newFakeStore()
	customerID := uuid.New()
	addressID := seedAddress(store, customerID)

	uc := commands.NewCheckoutUseCase(fakeUoW{store}, clock.NewMockClock(checkoutNow))

	t.Run("no active cart", func(t *testing.T) {
		_, err := uc.Checkout(context.Background(), customerID, commands.CheckoutRequest{
			AddressID: addressID, PaymentMethod: "card",
		})
		assert.ErrorIs(t, err, commands.ErrCartEmpty)
	})

	t.Run("active cart without lines", func(t *testing.T) {
		seedCart(store, customerID)
		_, err := uc.Checkout(context.Background(), customerID, commands.CheckoutRequest{
			AddressID: addressID, PaymentMethod: "card",
		})
		assert.ErrorIs(t, err, commands.ErrCartEmpty)
	})

	assert.Empty(t, store.sales)
	assert.Empty(t, store.converted)
}

func TestCheckout_AddressOwnership(t *testing.T) {
	store := newFakeStore()
	customerID := uuid.New()
	seedCart(store, customerID, buyLine(uuid.Nil, uuid.New(), 1, 10000))
	strangerAddress := seedAddress(store, uuid.New())

	uc := commands.NewCheckoutUseCase(fakeUoW{store}, clock.NewMockClock(checkoutNow))

	t.Run("address of another customer", func(t *testing.T) {
		_, err := uc.Checkout(context.Background(), customerID, commands.CheckoutRequest{
			AddressID: strangerAddress, PaymentMethod: "card",
		})
		assert.ErrorIs(t, err, commands.ErrAddressNotFound)
	})

	t.Run("unknown address", func(t *testing.T) {
		_, err := uc.Checkout(context.Background(), customerID, commands.CheckoutRequest{
			AddressID: uuid.New(), PaymentMethod: "card",
		})
		assert.ErrorIs(t, err, commands.ErrAddressNotFound)
	})

	assert.Empty(t, store.sales)
}

func TestCheckout_InsufficientStock(t *testing.T) {
	store := newFakeStore()
	customerID := uuid.New()
	rentProduct := uuid.New()
	seedCart(store, customerID, rentLine(uuid.Nil, rentProduct, 3, 3000, 5))
	addressID := seedAddress(store, customerID)
	store.available[rentProduct] = 2

	uc := commands.NewCheckoutUseCase(fakeUoW{store}, clock.NewMockClock(checkoutNow))
	_, err := uc.Checkout(context.Background(), customerID, commands.CheckoutRequest{
		AddressID: addressID, PaymentMethod: "card",
	})
	assert.ErrorIs(t, err, commands.ErrInsufficientStock)
	assert.Empty(t, store.rentals)
	assert.Empty(t, store.converted)
}

func TestCheckout_VoucherApplied(t *testing.T) {
	store := newFakeStore()
	customerID := uuid.New()
	buyProduct := uuid.New()
	rentProduct := uuid.New()
	seedCart(store, customerID,
		buyLine(uuid.Nil, buyProduct, 1, 100000),
		rentLine(uuid.Nil, rentProduct, 1, 2000, 10), // 20000
	)
	addressID := seedAddress(store, customerID)
	store.available[rentProduct] = 1
	voucherID := seedVoucher(store, "SPRING10", "all", ptr.To(int32(10)), nil)

	uc := commands.NewCheckoutUseCase(fakeUoW{store}, clock.NewMockClock(checkoutNow))
	result, err := uc.Checkout(context.Background(), customerID, commands.CheckoutRequest{
		AddressID:     addressID,
		PaymentMethod: "card",
		VoucherCode:   ptr.To("SPRING10"),
	})
	require.NoError(t, err)

	// 10% off each group: 10000 + 2000.
	assert.Equal(t, int64(12000), result.DiscountCents)
	assert.Equal(t, int64(108000), result.TotalDueCents)
	assert.Equal(t, int64(90000), store.sales[0].TotalDueCents())
	assert.Equal(t, int64(18000), store.rentals[0].TotalDueCents())

	assert.Equal(t, 1, store.decrements)
	require.Len(t, store.usages, 1)
	wantUsage := shared.VoucherUsage{
		VoucherID:     voucherID,
		CustomerID:    customerID,
		SaleOrderID:   result.SaleOrderID,
		RentalOrderID: result.RentalOrderID,
		UsedAt:        checkoutNow,
	}
	if diff := cmp.Diff(wantUsage, store.usages[0]); diff != "" {
		t.Errorf("recorded voucher usage mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckout_VoucherRejected(t *testing.T) {
	customerID := uuid.New()

	newFixture := func() (*fakeStore, uuid.UUID) {
		store := newFakeStore()
		seedCart(store, customerID, buyLine(uuid.Nil, uuid.New(), 1, 50000))
		return store, seedAddress(store, customerID)
	}

	run := func(store *fakeStore, addressID uuid.UUID, code string) error {
		uc := commands.NewCheckoutUseCase(fakeUoW{store}, clock.NewMockClock(checkoutNow))
		_, err := uc.Checkout(context.Background(), customerID, commands.CheckoutRequest{
			AddressID:     addressID,
			PaymentMethod: "card",
			VoucherCode:   ptr.To(code),
		})
		return err
	}

	t.Run("unknown code", func(t *testing.T) {
		store, addressID := newFixture()
		assert.ErrorIs(t, run(store, addressID, "NOPE"), commands.ErrInvalidVoucher)
	})

	t.Run("rent-scoped voucher on a buy-only cart", func(t *testing.T) {
		store, addressID := newFixture()
		seedVoucher(store, "RENTONLY", "rent", ptr.To(int32(10)), nil)
		assert.ErrorIs(t, run(store, addressID, "RENTONLY"), commands.ErrInvalidVoucher)
	})

	t.Run("minimum order not met", func(t *testing.T) {
		store, addressID := newFixture()
		id := seedVoucher(store, "BIGSPEND", "all", ptr.To(int32(10)), nil)
		v := store.vouchers["BIGSPEND"]
		v.MinOrderCents = 100000
		store.vouchers["BIGSPEND"] = v
		_ = id
		assert.ErrorIs(t, run(store, addressID, "BIGSPEND"), commands.ErrInvalidVoucher)
	})

	t.Run("already redeemed by this customer", func(t *testing.T) {
		store, addressID := newFixture()
		id := seedVoucher(store, "ONCE", "all", ptr.To(int32(10)), nil)
		store.used[id] = true
		assert.ErrorIs(t, run(store, addressID, "ONCE"), commands.ErrInvalidVoucher)
	})

	t.Run("quantity exhausted by a concurrent checkout", func(t *testing.T) {
		store, addressID := newFixture()
		seedVoucher(store, "LASTONE", "all", ptr.To(int32(10)), nil)
		store.decrementErr = infra.WrapRepoErr("voucher exhausted", nil, infra.KindConflict)
		assert.ErrorIs(t, run(store, addressID, "LASTONE"), commands.ErrInvalidVoucher)
	})
}

func TestCheckout_NumberCollisionRetries(t *testing.T) {
	store := newFakeStore()
	customerID := uuid.New()
	seedCart(store, customerID, buyLine(uuid.Nil, uuid.New(), 1, 10000))
	addressID := seedAddress(store, customerID)

	dup := infra.WrapRepoErr("duplicate order number", nil, infra.KindDuplicateKey)
	store.saleCreateErrs = []error{dup, dup}

	uc := commands.NewCheckoutUseCase(fakeUoW{store}, clock.NewMockClock(checkoutNow))
	result, err := uc.Checkout(context.Background(), customerID, commands.CheckoutRequest{
		AddressID: addressID, PaymentMethod: "card",
	})
	require.NoError(t, err)
	require.NotNil(t, result.SaleOrderNumber)
	require.Len(t, store.sales, 1)
}

func TestCheckout_NumberCollisionExhausted(t *testing.T) {
	store := newFakeStore()
	customerID := uuid.New()
	seedCart(store, customerID, buyLine(uuid.Nil, uuid.New(), 1, 10000))
	addressID := seedAddress(store, customerID)

	dup := infra.WrapRepoErr("duplicate order number", nil, infra.KindDuplicateKey)
	store.saleCreateErrs = []error{dup, dup, dup}

	uc := commands.NewCheckoutUseCase(fakeUoW{store}, clock.NewMockClock(checkoutNow))
	_, err := uc.Checkout(context.Background(), customerID, commands.CheckoutRequest{
		AddressID: addressID, PaymentMethod: "card",
	})
	assert.ErrorIs(t, err, commands.ErrDatabaseOperationFailed)
	assert.Empty(t, store.sales)
}

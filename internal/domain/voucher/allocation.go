package voucher

// Allocation splits one checkout-wide discount across the sale and rental
// sub-orders.
type Allocation struct {
	BuyCents  int64
	RentCents int64
}

func (a Allocation) TotalCents() int64 {
	return a.BuyCents + a.RentCents
}

// Allocate distributes a voucher discount over a mixed cart. Scoped vouchers
// only ever touch their own group, capped at that group's subtotal. For an
// `all`-scope voucher:
//   - a percentage discount applies the same rate to each group, which keeps
//     each sub-order's total equal to subtotal x (100-percent)/100;
//   - a fixed amount is taken from the buy subtotal first and only the
//     remainder spills over to the rent subtotal.
//
// The buy-first rule is deliberately asymmetric but deterministic and
// independent of presentation order.
func Allocate(d Discount, scope Scope, subtotalBuyCents, subtotalRentCents int64) Allocation {
	switch scope {
	case ScopeBuy:
		return Allocation{BuyCents: d.AmountFor(subtotalBuyCents)}
	case ScopeRent:
		return Allocation{RentCents: d.AmountFor(subtotalRentCents)}
	}

	if d.IsPercentage() {
		return Allocation{
			BuyCents:  d.AmountFor(subtotalBuyCents),
			RentCents: d.AmountFor(subtotalRentCents),
		}
	}

	buy := min64(d.AmountCents(), subtotalBuyCents)
	rent := min64(d.AmountCents()-buy, subtotalRentCents)
	return Allocation{BuyCents: buy, RentCents: rent}
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

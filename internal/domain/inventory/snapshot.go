package inventory

import "github.com/google/uuid"

// Snapshot is a derived per-product stock view. Nothing is stored: physical
// units, maintenance holds and open rentals live in their own tables and the
// availability number is recomputed on read.
type Snapshot struct {
	ProductID     uuid.UUID
	TotalPhysical int32
	Maintenance   int32
	Renting       int32
	Available     int32
}

// NewSnapshot derives availability from the raw counters, clamping at zero so
// inconsistent rows (a return recorded before the rental closed, say) never
// surface a negative number.
func NewSnapshot(productID uuid.UUID, totalPhysical, maintenance, renting int32) Snapshot {
	available := totalPhysical - maintenance - renting
	if available < 0 {
		available = 0
	}
	return Snapshot{
		ProductID:     productID,
		TotalPhysical: totalPhysical,
		Maintenance:   maintenance,
		Renting:       renting,
		Available:     available,
	}
}

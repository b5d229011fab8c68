package stockledger

import (
	"bytes"
	"fmt"
	"sort"

	"medtrack/internal/core/apperror"
	"medtrack/internal/core/id"
)

// Allocation records how many pieces one holder contributed to a movement.
type Allocation struct {
	HolderID  id.ID  `json:"holderId"`
	Reference string `json:"reference"`
	Quantity  int64  `json:"quantity"`
}

// RestoreResult reports the outcome of a restore pass.
type RestoreResult struct {
	Refills []Allocation `json:"refills"`

	// Unrestored is the part of the requested quantity that did not fit
	// back into the holders (lenient mode only; strict mode errors instead).
	Unrestored int64 `json:"unrestored"`
}

// Deduct consumes qty pieces from holders oldest-first.
//
// The deduction is all-or-nothing: if the combined remaining stock is
// short, no holder is mutated and an INSUFFICIENT_STOCK error carries
// both the requested and the available totals. qty == 0 is a no-op.
func Deduct(productID id.ID, holders []*StockHolder, qty int64) ([]Allocation, error) {
	if qty < 0 {
		return nil, apperror.NewValidation("quantity cannot be negative").
			WithDetail("quantity", qty)
	}
	if qty == 0 {
		return nil, nil
	}

	if err := checkProduct(productID, holders); err != nil {
		return nil, err
	}

	available := TotalRemaining(holders)
	if available < qty {
		return nil, apperror.NewInsufficientStock(productID.String(), qty, available)
	}

	ordered := sortFIFO(holders)

	allocations := make([]Allocation, 0, len(ordered))
	left := qty
	for _, h := range ordered {
		if left == 0 {
			break
		}
		if h.Remaining == 0 {
			continue
		}

		take := min64(h.Remaining, left)
		h.Remaining -= take
		left -= take

		allocations = append(allocations, Allocation{
			HolderID:  h.ID,
			Reference: h.Reference,
			Quantity:  take,
		})
	}

	// Unreachable after the availability check; kept as a tripwire.
	if left != 0 {
		return nil, apperror.NewInternal(
			fmt.Errorf("deduct left %d pieces unallocated for product %s", left, productID),
		)
	}

	return allocations, nil
}

// Restore puts qty pieces back into holders newest-first.
//
// Each holder accepts at most Quantity-Remaining pieces, so Remaining
// never exceeds Quantity. When the holders cannot absorb the full
// quantity, lenient mode refills what fits and reports the remainder in
// RestoreResult.Unrestored; strict mode returns RESTORE_OVERFLOW without
// mutating any holder.
func Restore(productID id.ID, holders []*StockHolder, qty int64, strict bool) (RestoreResult, error) {
	if qty < 0 {
		return RestoreResult{}, apperror.NewValidation("quantity cannot be negative").
			WithDetail("quantity", qty)
	}
	if qty == 0 {
		return RestoreResult{}, nil
	}

	if err := checkProduct(productID, holders); err != nil {
		return RestoreResult{}, err
	}

	if strict {
		capacity := int64(0)
		for _, h := range holders {
			capacity += h.Consumed()
		}
		if capacity < qty {
			return RestoreResult{}, apperror.NewRestoreOverflow(productID.String(), qty, capacity)
		}
	}

	ordered := sortFIFO(holders)

	result := RestoreResult{}
	left := qty
	for i := len(ordered) - 1; i >= 0 && left > 0; i-- {
		h := ordered[i]
		room := h.Consumed()
		if room == 0 {
			continue
		}

		put := min64(room, left)
		h.Remaining += put
		left -= put

		result.Refills = append(result.Refills, Allocation{
			HolderID:  h.ID,
			Reference: h.Reference,
			Quantity:  put,
		})
	}

	result.Unrestored = left
	return result, nil
}

// ValidateAvailability checks whether qty pieces can be deducted.
// Pure check: holders are never mutated and repeated calls give the
// same answer.
func ValidateAvailability(holders []*StockHolder, qty int64) (bool, string) {
	if qty < 0 {
		return false, fmt.Sprintf("Invalid quantity: %d", qty)
	}

	available := TotalRemaining(holders)
	if available < qty {
		return false, fmt.Sprintf("Insufficient stock. Required: %d, Available: %d", qty, available)
	}
	return true, fmt.Sprintf("Stock available. Required: %d, Available: %d", qty, available)
}

// TotalRemaining sums the unconsumed stock across holders.
func TotalRemaining(holders []*StockHolder) int64 {
	total := int64(0)
	for _, h := range holders {
		total += h.Remaining
	}
	return total
}

// sortFIFO returns holders ordered oldest-first: created_at ASC with
// id ASC as tie-break (ids are UUIDv7, so the tie-break is itself
// time-ordered and keeps equal timestamps deterministic).
func sortFIFO(holders []*StockHolder) []*StockHolder {
	ordered := make([]*StockHolder, len(holders))
	copy(ordered, holders)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
		}
		return bytes.Compare(ordered[i].ID[:], ordered[j].ID[:]) < 0
	})
	return ordered
}

// checkProduct guards against holders of another product slipping into a
// movement. The repositories fetch holders by product, so a mismatch
// means a caller bug, not a data problem.
func checkProduct(productID id.ID, holders []*StockHolder) error {
	for _, h := range holders {
		if h.ProductID != productID {
			return apperror.NewProductMismatch(productID.String(), h.ProductID.String())
		}
	}
	return nil
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

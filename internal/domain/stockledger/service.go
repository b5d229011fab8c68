package stockledger

import (
	"context"
	"fmt"

	"medtrack/internal/core/apperror"
	"medtrack/internal/core/id"
	"medtrack/internal/core/tx"
	"medtrack/internal/domain/audit"
	"medtrack/pkg/logger"
)

// Service provides stock movements over the holder ledger.
// Every mutating operation runs inside a transaction; nested calls from
// the posting engine reuse the caller's transaction.
type Service struct {
	repo      Repository
	txManager tx.Manager
	activity  audit.Recorder
}

// NewService creates a new stock ledger service.
// activity may be nil (movements are then not logged).
func NewService(repo Repository, txManager tx.Manager, activity audit.Recorder) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		activity:  activity,
	}
}

// AvailabilityCheck is the result of a non-mutating stock check.
type AvailabilityCheck struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
	Remaining int64  `json:"remaining"`
	Requested int64  `json:"requested"`
}

// OpenHolder creates a full holder row for a posted document.
func (s *Service) OpenHolder(ctx context.Context, kind HolderKind, documentID id.ID, reference string, productID id.ID, quantity int64) (*StockHolder, error) {
	if !IsValidKind(kind) {
		return nil, apperror.NewValidation("invalid holder kind").WithDetail("kind", string(kind))
	}
	if quantity <= 0 {
		return nil, apperror.NewValidation("quantity must be positive").WithDetail("quantity", quantity)
	}

	holder := NewStockHolder(kind, documentID, reference, productID, quantity)

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.CreateHolder(ctx, holder)
	})
	if err != nil {
		return nil, fmt.Errorf("open holder: %w", err)
	}

	logger.Info(ctx, "stock holder opened",
		"holder_id", holder.ID,
		"kind", holder.Kind,
		"reference", holder.Reference,
		"quantity", holder.Quantity,
	)
	return holder, nil
}

// CloseHolder removes the holder opened by a document.
// Fails with DOCUMENT_IN_USE while any of its stock has been consumed,
// so unposting cannot orphan already-distributed pieces.
func (s *Service) CloseHolder(ctx context.Context, documentID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		holder, err := s.repo.GetByDocumentForUpdate(ctx, documentID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewHolderNotFound(documentID.String())
			}
			return err
		}

		if !holder.IsUntouched() {
			return apperror.NewDocumentInUse(documentID.String(), holder.Consumed())
		}

		return s.repo.DeleteHolder(ctx, holder.ID)
	})
}

// Deduct consumes quantity pieces of a product FIFO across holders of
// the given kind. All-or-nothing: on shortage nothing is written and
// INSUFFICIENT_STOCK is returned.
func (s *Service) Deduct(ctx context.Context, kind HolderKind, productID id.ID, quantity int64) ([]Allocation, error) {
	var allocations []Allocation

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		holders, err := s.repo.GetByProductForUpdate(ctx, productID, kind)
		if err != nil {
			return fmt.Errorf("lock holders: %w", err)
		}

		allocations, err = Deduct(productID, holders, quantity)
		if err != nil {
			return err
		}

		return s.repo.UpdateRemaining(ctx, touched(holders, allocations))
	})
	if err != nil {
		return nil, err
	}

	s.recordMovement(ctx, audit.ActionUpdate, productID,
		fmt.Sprintf("Deducted %d pieces across %d holders (FIFO)", quantity, len(allocations)))

	return allocations, nil
}

// Restore puts quantity pieces of a product back, newest holders first.
// Lenient mode (strict=false) reproduces the historical behavior: when
// holders cannot absorb everything, the remainder is reported and logged
// but the operation succeeds.
func (s *Service) Restore(ctx context.Context, kind HolderKind, productID id.ID, quantity int64, strict bool) (RestoreResult, error) {
	var result RestoreResult

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		holders, err := s.repo.GetByProductForUpdate(ctx, productID, kind)
		if err != nil {
			return fmt.Errorf("lock holders: %w", err)
		}

		result, err = Restore(productID, holders, quantity, strict)
		if err != nil {
			return err
		}

		return s.repo.UpdateRemaining(ctx, touched(holders, result.Refills))
	})
	if err != nil {
		return RestoreResult{}, err
	}

	if result.Unrestored > 0 {
		logger.Warn(ctx, "restore truncated at holder capacity",
			"product_id", productID,
			"requested", quantity,
			"unrestored", result.Unrestored,
		)
	}

	s.recordMovement(ctx, audit.ActionUpdate, productID,
		fmt.Sprintf("Restored %d of %d pieces (reverse FIFO)", quantity-result.Unrestored, quantity))

	return result, nil
}

// ValidateAvailability checks whether a deduction would succeed.
// Read-only and idempotent; the answer can be stale by the time a
// deduction actually runs, which re-checks under lock.
func (s *Service) ValidateAvailability(ctx context.Context, kind HolderKind, productID id.ID, quantity int64) (AvailabilityCheck, error) {
	holders, err := s.repo.GetByProduct(ctx, productID, kind)
	if err != nil {
		return AvailabilityCheck{}, fmt.Errorf("get holders: %w", err)
	}

	ok, msg := ValidateAvailability(holders, quantity)
	return AvailabilityCheck{
		Available: ok,
		Message:   msg,
		Remaining: TotalRemaining(holders),
		Requested: quantity,
	}, nil
}

// GetProductAvailability returns remaining stock per holder kind.
func (s *Service) GetProductAvailability(ctx context.Context, productID id.ID) (map[HolderKind]int64, error) {
	totals := make(map[HolderKind]int64, 2)
	for _, kind := range []HolderKind{KindPurchaseOrder, KindPurchase} {
		total, err := s.repo.GetTotalRemaining(ctx, productID, kind)
		if err != nil {
			return nil, fmt.Errorf("total remaining %s: %w", kind, err)
		}
		totals[kind] = total
	}
	return totals, nil
}

// ListHolders returns the holders for a product in FIFO order.
func (s *Service) ListHolders(ctx context.Context, productID id.ID, kind HolderKind) ([]*StockHolder, error) {
	if !IsValidKind(kind) {
		return nil, apperror.NewValidation("invalid holder kind").WithDetail("kind", string(kind))
	}
	return s.repo.GetByProduct(ctx, productID, kind)
}

// HasConsumedStock reports whether any stock of the product was distributed.
func (s *Service) HasConsumedStock(ctx context.Context, productID id.ID) (bool, error) {
	return s.repo.HasConsumedStock(ctx, productID)
}

// GetStockSummary returns per-product ordered/remaining/used totals.
func (s *Service) GetStockSummary(ctx context.Context) ([]ProductSummary, error) {
	return s.repo.GetSummary(ctx)
}

// GetLowStock returns products whose remaining share of ordered stock is
// at or below thresholdPercent (default 20 when <= 0).
func (s *Service) GetLowStock(ctx context.Context, thresholdPercent float64) ([]ProductSummary, error) {
	if thresholdPercent <= 0 {
		thresholdPercent = 20
	}

	summary, err := s.repo.GetSummary(ctx)
	if err != nil {
		return nil, err
	}

	low := make([]ProductSummary, 0)
	for _, row := range summary {
		if row.TotalOrdered == 0 {
			continue
		}
		remainingPercent := float64(row.TotalRemaining) / float64(row.TotalOrdered) * 100
		if remainingPercent <= thresholdPercent {
			low = append(low, row)
		}
	}
	return low, nil
}

// recordMovement appends an activity entry outside the stock transaction.
func (s *Service) recordMovement(ctx context.Context, action audit.Action, productID id.ID, description string) {
	audit.Log(ctx, s.activity, audit.Entry{
		Action:      action,
		TableName:   "stock_holders",
		RecordID:    productID,
		Description: description,
	})
}

// touched filters holders down to those named in allocations.
func touched(holders []*StockHolder, allocations []Allocation) []*StockHolder {
	ids := make(map[id.ID]struct{}, len(allocations))
	for _, a := range allocations {
		ids[a.HolderID] = struct{}{}
	}

	changed := make([]*StockHolder, 0, len(ids))
	for _, h := range holders {
		if _, ok := ids[h.ID]; ok {
			changed = append(changed, h)
		}
	}
	return changed
}

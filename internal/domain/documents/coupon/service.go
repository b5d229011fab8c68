package coupon

import (
	"context"
	"fmt"
	"time"

	"medtrack/internal/core/apperror"
	"medtrack/internal/core/id"
	"medtrack/internal/core/tx"
	"medtrack/internal/domain"
	"medtrack/internal/domain/audit"
	"medtrack/pkg/logger"
	"medtrack/pkg/numerator"
)

// Service provides business operations for patient coupons.
type Service struct {
	repo      Repository
	numerator numerator.Generator
	txManager tx.Manager
	activity  audit.Recorder
}

// NewService creates a new coupon service. activity may be nil.
func NewService(
	repo Repository,
	numerator numerator.Generator,
	txManager tx.Manager,
	activity audit.Recorder,
) *Service {
	return &Service{
		repo:      repo,
		numerator: numerator,
		txManager: txManager,
		activity:  activity,
	}
}

func (s *Service) assignNumber(ctx context.Context, doc *Coupon) error {
	if doc.Number != "" {
		return nil
	}

	cfg := numerator.DefaultConfig(NumberPrefix)
	number, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: NumeratorStrategy}, time.Now())
	if err != nil {
		return fmt.Errorf("generate number: %w", err)
	}
	doc.Number = number
	return nil
}

// Create creates a single coupon.
func (s *Service) Create(ctx context.Context, doc *Coupon) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if err := s.assignNumber(ctx, doc); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, doc)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "coupon created", "id", doc.ID, "number", doc.Number)
	return nil
}

// CreateBulk validates, numbers and inserts many coupons in one
// transaction. All-or-nothing: one invalid coupon fails the batch.
func (s *Service) CreateBulk(ctx context.Context, docs []*Coupon) error {
	if len(docs) == 0 {
		return nil
	}

	for _, doc := range docs {
		if err := doc.Validate(ctx); err != nil {
			return err
		}
		if err := s.assignNumber(ctx, doc); err != nil {
			return err
		}
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.CreateBatch(ctx, docs)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "coupons created in bulk", "count", len(docs))
	return nil
}

// GetByID retrieves a coupon.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Coupon, error) {
	return s.repo.GetByID(ctx, docID)
}

// Update updates a coupon. Verified coupons cannot be modified.
func (s *Service) Update(ctx context.Context, doc *Coupon) error {
	if doc.Verified {
		return apperror.NewConflict("cannot update verified coupon, unverify first").
			WithDetail("number", doc.Number)
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	})
}

// Delete soft-deletes an unverified coupon.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	if doc.Verified {
		return apperror.NewConflict("cannot delete verified coupon, unverify first").
			WithDetail("number", doc.Number)
	}

	return s.repo.Delete(ctx, docID)
}

// Verify confirms delivery to the patient. No stock effect: stock
// movement happens through distribution transactions.
func (s *Service) Verify(ctx context.Context, docID id.ID, verifiedBy string) (*Coupon, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	if err := doc.MarkVerified(verifiedBy); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	audit.Log(ctx, s.activity, audit.Entry{
		Action:      audit.ActionVerify,
		TableName:   "patient_coupons",
		RecordID:    doc.ID,
		Description: fmt.Sprintf("Verified coupon %s", doc.Number),
		User:        verifiedBy,
	})
	return doc, nil
}

// Unverify withdraws a delivery confirmation.
func (s *Service) Unverify(ctx context.Context, docID id.ID) (*Coupon, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	if err := doc.MarkUnverified(); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	audit.Log(ctx, s.activity, audit.Entry{
		Action:      audit.ActionVerify,
		TableName:   "patient_coupons",
		RecordID:    doc.ID,
		Description: fmt.Sprintf("Unverified coupon %s", doc.Number),
	})
	return doc, nil
}

// List retrieves coupons with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Coupon], error) {
	return s.repo.List(ctx, filter)
}

// Package posting runs document post/unpost against the stock ledger.
// Posting a document applies its stock effect atomically; unposting
// reverses it. Documents describe WHAT moves, the engine decides HOW.
package posting

import (
	"context"
	"fmt"

	"medtrack/internal/core/apperror"
	"medtrack/internal/core/id"
	"medtrack/internal/core/tx"
	"medtrack/internal/domain/audit"
	"medtrack/internal/domain/stockledger"
	"medtrack/pkg/logger"
)

// Intake opens a stock holder when the document posts and closes it on
// unpost. Unposting fails with DOCUMENT_IN_USE once any of the holder's
// stock has been consumed.
type Intake struct {
	Kind      stockledger.HolderKind
	ProductID id.ID
	Quantity  int64
}

// Outflow deducts stock FIFO when the document posts and restores it
// (reverse FIFO, lenient) on unpost.
type Outflow struct {
	Kind      stockledger.HolderKind
	ProductID id.ID
	Quantity  int64
}

// Effect is a document's impact on the stock ledger.
// Documents carry a single product line, so at most one intake and one
// outflow; documents without stock effects (patient coupons) return the
// zero Effect.
type Effect struct {
	Intake  *Intake
	Outflow *Outflow
}

// Postable is a document the engine can post and unpost.
// entity.Document provides defaults for everything except
// GetDocumentType and StockEffect.
type Postable interface {
	GetID() id.ID
	GetNumber() string
	GetDocumentType() string
	IsPosted() bool
	CanPost(ctx context.Context) error
	MarkPosted()
	MarkUnposted()

	// StockEffect describes the ledger movements this document causes.
	StockEffect(ctx context.Context) (Effect, error)
}

// Engine applies document stock effects transactionally.
type Engine struct {
	stock     *stockledger.Service
	txManager tx.Manager
	activity  audit.Recorder
}

// NewEngine creates a posting engine. activity may be nil.
func NewEngine(stock *stockledger.Service, txManager tx.Manager, activity audit.Recorder) *Engine {
	return &Engine{
		stock:     stock,
		txManager: txManager,
		activity:  activity,
	}
}

// Post applies the document's stock effect and persists the posted state
// in one transaction. updateDoc saves the document row and must respect
// the transaction in ctx.
//
// Order matters: outflow before intake, so a document cannot consume the
// stock it brings in.
func (e *Engine) Post(ctx context.Context, doc Postable, updateDoc func(ctx context.Context) error) error {
	if doc.IsPosted() {
		return apperror.NewBusinessRule(
			apperror.CodeDocumentPosted,
			"Document is already posted",
		).WithDetail("document_id", doc.GetID().String())
	}

	if err := doc.CanPost(ctx); err != nil {
		return err
	}

	effect, err := doc.StockEffect(ctx)
	if err != nil {
		return err
	}

	err = e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if out := effect.Outflow; out != nil {
			if _, err := e.stock.Deduct(ctx, out.Kind, out.ProductID, out.Quantity); err != nil {
				return err
			}
		}

		if in := effect.Intake; in != nil {
			_, err := e.stock.OpenHolder(ctx, in.Kind, doc.GetID(), doc.GetNumber(), in.ProductID, in.Quantity)
			if err != nil {
				return err
			}
		}

		doc.MarkPosted()
		if err := updateDoc(ctx); err != nil {
			doc.MarkUnposted()
			return fmt.Errorf("save posted document: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "document posted",
		"type", doc.GetDocumentType(),
		"number", doc.GetNumber(),
		"document_id", doc.GetID(),
	)
	e.record(ctx, audit.ActionPost, doc, "Posted")
	return nil
}

// Unpost reverses the document's stock effect.
//
// Intake reversal fails with DOCUMENT_IN_USE when the holder has been
// consumed. Outflow reversal is lenient: stock that no longer fits back
// into its holders is logged and dropped.
func (e *Engine) Unpost(ctx context.Context, doc Postable, updateDoc func(ctx context.Context) error) error {
	if !doc.IsPosted() {
		return apperror.NewBusinessRule(
			apperror.CodeDocumentNotPosted,
			"Document is not posted",
		).WithDetail("document_id", doc.GetID().String())
	}

	effect, err := doc.StockEffect(ctx)
	if err != nil {
		return err
	}

	err = e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if effect.Intake != nil {
			if err := e.stock.CloseHolder(ctx, doc.GetID()); err != nil {
				return err
			}
		}

		if out := effect.Outflow; out != nil {
			if _, err := e.stock.Restore(ctx, out.Kind, out.ProductID, out.Quantity, false); err != nil {
				return err
			}
		}

		doc.MarkUnposted()
		if err := updateDoc(ctx); err != nil {
			doc.MarkPosted()
			return fmt.Errorf("save unposted document: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "document unposted",
		"type", doc.GetDocumentType(),
		"number", doc.GetNumber(),
		"document_id", doc.GetID(),
	)
	e.record(ctx, audit.ActionUnpost, doc, "Unposted")
	return nil
}

func (e *Engine) record(ctx context.Context, action audit.Action, doc Postable, verb string) {
	audit.Log(ctx, e.activity, audit.Entry{
		Action:      action,
		TableName:   doc.GetDocumentType(),
		RecordID:    doc.GetID(),
		Description: fmt.Sprintf("%s %s", verb, doc.GetNumber()),
	})
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/shopbill-api/internal/domain/repository"
	"github.com/sangkips/shopbill-api/internal/infrastructure/metrics"
	"github.com/sangkips/shopbill-api/pkg/apperror"
	"github.com/sirupsen/logrus"
)

type stockMove struct {
	productID uuid.UUID
	quantity  int
	reserved  bool
}

// stockJournal records every stock movement of one bill operation so the
// operation can be undone as a whole when a later step fails.
type stockJournal struct {
	products repository.ProductRepository
	log      *logrus.Entry
	moves    []stockMove
}

func newStockJournal(products repository.ProductRepository, log *logrus.Entry) *stockJournal {
	return &stockJournal{products: products, log: log}
}

// reserve takes quantity out of stock.
func (j *stockJournal) reserve(ctx context.Context, productID uuid.UUID, quantity int) error {
	if err := j.products.ReserveStock(ctx, productID, quantity); err != nil {
		return err
	}
	j.moves = append(j.moves, stockMove{productID: productID, quantity: quantity, reserved: true})
	return nil
}

// release puts quantity back. A product that no longer exists is skipped.
func (j *stockJournal) release(ctx context.Context, productID uuid.UUID, quantity int) error {
	err := j.products.ReleaseStock(ctx, productID, quantity)
	if errors.Is(err, repository.ErrProductNotFound) {
		j.log.WithField("product_id", productID).Warn("stock release skipped, product no longer exists")
		return nil
	}
	if err != nil {
		return err
	}
	j.moves = append(j.moves, stockMove{productID: productID, quantity: quantity})
	warnAboveMaximum(ctx, j.products, j.log, productID)
	return nil
}

// warnAboveMaximum logs when a release pushed stock past the product maximum.
// Releases are not capped, the maximum is advisory.
func warnAboveMaximum(ctx context.Context, products repository.ProductRepository, log *logrus.Entry, productID uuid.UUID) {
	product, err := products.GetByID(ctx, productID)
	if err != nil || product == nil {
		return
	}
	if product.Stock.Maximum > 0 && product.Stock.Current > product.Stock.Maximum {
		log.WithFields(logrus.Fields{
			"product_id": productID,
			"current":    product.Stock.Current,
			"maximum":    product.Stock.Maximum,
		}).Warn("stock above configured maximum after release")
	}
}

// rollback undoes the recorded moves newest first. It keeps going after a
// failed step and returns the first error it met.
func (j *stockJournal) rollback(ctx context.Context) error {
	if len(j.moves) == 0 {
		return nil
	}
	ctx = context.WithoutCancel(ctx)
	metrics.StockRollbacks.Inc()

	var firstErr error
	for i := len(j.moves) - 1; i >= 0; i-- {
		move := j.moves[i]
		var err error
		if move.reserved {
			err = j.products.ReleaseStock(ctx, move.productID, move.quantity)
		} else {
			err = j.products.ReserveStock(ctx, move.productID, move.quantity)
		}
		if err != nil {
			j.log.WithError(err).WithFields(logrus.Fields{
				"product_id": move.productID,
				"quantity":   move.quantity,
				"reserved":   move.reserved,
			}).Error("stock rollback step failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	j.moves = nil
	return firstErr
}

// stockError turns a stock ledger error into an application error.
func stockError(err error, productName string, requested, available int) error {
	switch {
	case errors.Is(err, repository.ErrInsufficientStock):
		metrics.StockRejections.Inc()
		return apperror.NewInsufficientStockError(fmt.Sprintf(
			"Insufficient stock for %s: requested %d, available %d", productName, requested, available))
	case errors.Is(err, repository.ErrProductNotFound):
		return apperror.NewNotFoundError("Product")
	default:
		return apperror.NewStorageError("Failed to update stock", err)
	}
}

package app

import (
	market "github.com/sc2skins/skinmarket"
	"github.com/sc2skins/skinmarket/errors"
)

// Recovery is a decorator to recover from panics in transactions, so we
// can log them as errors instead of crashing the executor.
type Recovery struct{}

var _ market.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator.
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into ErrPanic results.
func (r Recovery) Check(ctx market.Context, db market.KVStore, tx market.Tx, next market.Checker) (res *market.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

// Deliver turns panics into ErrPanic results.
func (r Recovery) Deliver(ctx market.Context, db market.KVStore, tx market.Tx, next market.Deliverer) (res *market.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}

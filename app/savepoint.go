package app

import (
	market "github.com/sc2skins/skinmarket"
	"github.com/sc2skins/skinmarket/errors"
)

// Savepoint wraps the store in a cache-wrap before running the rest of the
// chain. On Deliver the cache is written only if the handler succeeded, so
// a failure anywhere in the handler leaves no partial writes behind. On
// Check the cache is always discarded.
type Savepoint struct{}

var _ market.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

func (s Savepoint) Check(ctx market.Context, db market.KVStore, tx market.Tx, next market.Checker) (*market.CheckResult, error) {
	cdb, ok := db.(market.CacheableKVStore)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T cannot be cache-wrapped", db)
	}
	cache := cdb.CacheWrap()
	defer cache.Discard()
	return next.Check(ctx, cache, tx)
}

func (s Savepoint) Deliver(ctx market.Context, db market.KVStore, tx market.Tx, next market.Deliverer) (*market.DeliverResult, error) {
	cdb, ok := db.(market.CacheableKVStore)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T cannot be cache-wrapped", db)
	}
	cache := cdb.CacheWrap()
	res, err := next.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	cache.Write()
	return res, nil
}

package app

import (
	market "github.com/sc2skins/skinmarket"
)

// Decorators holds a chain of decorators, not yet bound to a final
// handler.
type Decorators struct {
	chain []market.Decorator
}

// ChainDecorators takes a chain of decorators. The first decorator wraps
// all the rest.
func ChainDecorators(chain ...market.Decorator) Decorators {
	return Decorators{chain: chain}
}

// WithHandler binds the chain to the given handler and returns a handler
// that applies every decorator in order before reaching it.
func (d Decorators) WithHandler(h market.Handler) market.Handler {
	res := h
	for i := len(d.chain) - 1; i >= 0; i-- {
		res = step{d: d.chain[i], next: res}
	}
	return res
}

// step binds one decorator to the rest of the chain.
type step struct {
	d    market.Decorator
	next market.Handler
}

var _ market.Handler = step{}

func (s step) Check(ctx market.Context, db market.KVStore, tx market.Tx) (*market.CheckResult, error) {
	return s.d.Check(ctx, db, tx, s.next)
}

func (s step) Deliver(ctx market.Context, db market.KVStore, tx market.Tx) (*market.DeliverResult, error) {
	return s.d.Deliver(ctx, db, tx, s.next)
}

package app

import (
	"sync"

	market "github.com/sc2skins/skinmarket"
	"github.com/sc2skins/skinmarket/errors"
)

// TxExecutor owns the store and runs every transaction through the
// decorated handler chain. A single mutex covers the whole
// validate-deliver-commit sequence, so all mutating operations are applied
// in one total order and no partial interleaving is observable.
type TxExecutor struct {
	mu      sync.Mutex
	db      market.CacheableKVStore
	handler market.Handler
	subs    []func(market.DeliverResult)
}

// NewTxExecutor builds an executor around the given store and handler. The
// handler is typically a Router wrapped in the standard decorator chain,
// see NewHandler.
func NewTxExecutor(db market.CacheableKVStore, handler market.Handler) *TxExecutor {
	return &TxExecutor{
		db:      db,
		handler: handler,
	}
}

// NewHandler wraps a router in the standard decorator chain: panic
// recovery outermost, then the savepoint giving every delivery
// all-or-nothing semantics.
func NewHandler(r *Router) market.Handler {
	return ChainDecorators(
		NewRecovery(),
		NewSavepoint(),
	).WithHandler(r)
}

// Subscribe registers a function to receive every successfully delivered
// result, in commit order. Subscribers are invoked after the transaction
// state has been committed.
func (ex *TxExecutor) Subscribe(fn func(market.DeliverResult)) {
	ex.mu.Lock()
	defer ex.mu.Unlock()
	ex.subs = append(ex.subs, fn)
}

// Check validates a transaction against current state without modifying
// it.
func (ex *TxExecutor) Check(ctx market.Context, tx market.Tx) (*market.CheckResult, error) {
	ex.mu.Lock()
	defer ex.mu.Unlock()
	return ex.handler.Check(ctx, ex.db, tx)
}

// Deliver executes a transaction. On success all of its writes are
// committed and subscribers are notified; on error the state is exactly as
// before.
func (ex *TxExecutor) Deliver(ctx market.Context, tx market.Tx) (*market.DeliverResult, error) {
	ex.mu.Lock()
	defer ex.mu.Unlock()

	res, err := ex.handler.Deliver(ctx, ex.db, tx)
	if err != nil {
		return nil, err
	}
	for _, fn := range ex.subs {
		fn(*res)
	}
	return res, nil
}

// View runs a read-only function against committed state. Writes made by
// the function are discarded.
func (ex *TxExecutor) View(fn func(db market.KVStore) error) error {
	ex.mu.Lock()
	defer ex.mu.Unlock()

	cache := ex.db.CacheWrap()
	defer cache.Discard()
	return fn(cache)
}

// InitGenesis runs all the initializers over the store, committing only if
// every one of them succeeds.
func (ex *TxExecutor) InitGenesis(opts market.Options, inits ...market.Initializer) error {
	ex.mu.Lock()
	defer ex.mu.Unlock()

	cache := ex.db.CacheWrap()
	for _, ini := range inits {
		if err := ini.FromGenesis(opts, cache); err != nil {
			cache.Discard()
			return errors.Wrap(err, "genesis initialization failed")
		}
	}
	cache.Write()
	return nil
}

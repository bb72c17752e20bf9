package app

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	skinmarket "github.com/sc2skins/skinmarket"
	"github.com/sc2skins/skinmarket/coin"
	"github.com/sc2skins/skinmarket/errors"
	"github.com/sc2skins/skinmarket/skintest"
	"github.com/sc2skins/skinmarket/store"
	"github.com/sc2skins/skinmarket/x/auth"
	"github.com/sc2skins/skinmarket/x/cash"
	"github.com/sc2skins/skinmarket/x/market"
	"github.com/sc2skins/skinmarket/x/roles"
	"github.com/sc2skins/skinmarket/x/skins"
)

// handlerFunc adapts a function to the Handler interface for tests that
// need custom delivery behavior.
type handlerFunc func(db skinmarket.KVStore) error

func (f handlerFunc) Check(ctx skinmarket.Context, db skinmarket.KVStore, tx skinmarket.Tx) (*skinmarket.CheckResult, error) {
	if err := f(db); err != nil {
		return nil, err
	}
	return &skinmarket.CheckResult{}, nil
}

func (f handlerFunc) Deliver(ctx skinmarket.Context, db skinmarket.KVStore, tx skinmarket.Tx) (*skinmarket.DeliverResult, error) {
	if err := f(db); err != nil {
		return nil, err
	}
	return &skinmarket.DeliverResult{}, nil
}

func routed(t testing.TB, path string, h skinmarket.Handler) (*TxExecutor, skinmarket.CacheableKVStore, skinmarket.Tx) {
	t.Helper()
	r := NewRouter()
	r.Handle(&skintest.Msg{RoutePath: path}, h)
	db := store.MemStore()
	ex := NewTxExecutor(db, NewHandler(r))
	return ex, db, &skintest.Tx{Msg: &skintest.Msg{RoutePath: path}}
}

func TestRouterRejectsUnknownPath(t *testing.T) {
	r := NewRouter()
	db := store.MemStore()
	ex := NewTxExecutor(db, NewHandler(r))

	tx := &skintest.Tx{Msg: &skintest.Msg{RoutePath: "no/such/route"}}
	_, err := ex.Deliver(context.Background(), tx)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestRouterPanicsOnDuplicateRoute(t *testing.T) {
	r := NewRouter()
	r.Handle(&skintest.Msg{RoutePath: "test/one"}, &skintest.Handler{})
	assert.Panics(t, func() {
		r.Handle(&skintest.Msg{RoutePath: "test/one"}, &skintest.Handler{})
	})
}

func TestDeliverDiscardsPartialWrites(t *testing.T) {
	fail := errors.ErrState.New("mid-sequence failure")
	ex, db, tx := routed(t, "test/fail", handlerFunc(func(kv skinmarket.KVStore) error {
		kv.Set([]byte("partial"), []byte("write"))
		return fail
	}))

	_, err := ex.Deliver(context.Background(), tx)
	assert.True(t, errors.ErrState.Is(err))
	assert.False(t, db.Has([]byte("partial")))
}

func TestDeliverCommitsOnSuccess(t *testing.T) {
	ex, db, tx := routed(t, "test/ok", handlerFunc(func(kv skinmarket.KVStore) error {
		kv.Set([]byte("committed"), []byte("yes"))
		return nil
	}))

	_, err := ex.Deliver(context.Background(), tx)
	require.NoError(t, err)
	assert.True(t, db.Has([]byte("committed")))
}

func TestRecoveryConvertsPanics(t *testing.T) {
	ex, db, tx := routed(t, "test/panic", handlerFunc(func(kv skinmarket.KVStore) error {
		kv.Set([]byte("partial"), []byte("write"))
		panic("boom")
	}))

	_, err := ex.Deliver(context.Background(), tx)
	assert.True(t, errors.ErrPanic.Is(err))
	assert.False(t, db.Has([]byte("partial")))
}

func TestCheckNeverWrites(t *testing.T) {
	ex, db, tx := routed(t, "test/check", handlerFunc(func(kv skinmarket.KVStore) error {
		kv.Set([]byte("scratch"), []byte("pad"))
		return nil
	}))

	_, err := ex.Check(context.Background(), tx)
	require.NoError(t, err)
	assert.False(t, db.Has([]byte("scratch")))
}

func TestViewDiscardsWrites(t *testing.T) {
	db := store.MemStore()
	ex := NewTxExecutor(db, NewHandler(NewRouter()))

	err := ex.View(func(kv skinmarket.KVStore) error {
		kv.Set([]byte("scratch"), []byte("pad"))
		return nil
	})
	require.NoError(t, err)
	assert.False(t, db.Has([]byte("scratch")))
}

func TestConcurrentDeliverIsSerialized(t *testing.T) {
	key := []byte("counter")
	// A read-modify-write that is not atomic on its own: only the
	// executor's total order keeps the counter exact.
	ex, db, tx := routed(t, "test/inc", handlerFunc(func(kv skinmarket.KVStore) error {
		var n byte
		if raw := kv.Get(key); raw != nil {
			n = raw[0]
		}
		kv.Set(key, []byte{n + 1})
		return nil
	}))

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := ex.Deliver(context.Background(), tx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, []byte{workers}, db.Get(key))
}

func TestSubscribersReceiveCommittedResults(t *testing.T) {
	ex, _, tx := routed(t, "test/ok", handlerFunc(func(kv skinmarket.KVStore) error {
		return nil
	}))

	var got []skinmarket.DeliverResult
	ex.Subscribe(func(res skinmarket.DeliverResult) {
		got = append(got, res)
	})

	_, err := ex.Deliver(context.Background(), tx)
	require.NoError(t, err)
	_, err = ex.Deliver(context.Background(), tx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSubscribersSkipFailedDeliveries(t *testing.T) {
	ex, _, tx := routed(t, "test/fail", handlerFunc(func(kv skinmarket.KVStore) error {
		return errors.ErrState.New("nope")
	}))

	calls := 0
	ex.Subscribe(func(skinmarket.DeliverResult) { calls++ })

	_, err := ex.Deliver(context.Background(), tx)
	require.Error(t, err)
	assert.Equal(t, 0, calls)
}

// newMarketplace wires the full extension stack the way cmd/skinsd does.
func newMarketplace(t testing.TB) *TxExecutor {
	t.Helper()
	r := NewRouter()
	authn := auth.Authenticate{}
	roles.RegisterRoutes(r, authn)
	skins.RegisterRoutes(r, authn)
	cash.RegisterRoutes(r, authn)
	market.RegisterRoutes(r, authn)
	return NewTxExecutor(store.MemStore(), NewHandler(r))
}

func TestFullMarketplaceFlow(t *testing.T) {
	deployer := skintest.NewAddress()
	alice := skintest.NewAddress()
	bob := skintest.NewAddress()

	ex := newMarketplace(t)
	bg := context.Background()

	// The deployer is the only genesis admin; Bob starts with cash.
	rolesBucket := roles.NewBucket()
	err := ex.InitGenesis(skinmarket.Options{
		"roles": mustJSON(t, []map[string]interface{}{
			{"address": deployer.String(), "roles": []string{"admin", "minter"}},
		}),
		"cash": mustJSON(t, []map[string]interface{}{
			{"address": bob.String(), "coins": []map[string]interface{}{{"amount": 100, "ticker": "CRD"}}},
		}),
	}, roles.Initializer{}, cash.Initializer{})
	require.NoError(t, err)

	err = ex.View(func(db skinmarket.KVStore) error {
		u, err := rolesBucket.GetUserRoles(db, deployer)
		if err != nil {
			return err
		}
		assert.True(t, u.Has(roles.RoleAdmin))
		return nil
	})
	require.NoError(t, err)

	deployerCtx := auth.SetCallers(bg, deployer)
	aliceCtx := auth.SetCallers(bg, alice)
	bobCtx := auth.SetCallers(bg, bob)

	// Mint 10 of kind 1 for Alice.
	_, err = ex.Deliver(deployerCtx, &skintest.Tx{Msg: &skins.MintMsg{To: alice, SkinId: 1, Amount: 10}})
	require.NoError(t, err)

	// Alice lists 4 at 100 CRD, Bob purchases.
	res, err := ex.Deliver(aliceCtx, &skintest.Tx{Msg: &market.ListSkinMsg{SkinId: 1, Amount: 4, Price: coin.NewCoin(100, "CRD")}})
	require.NoError(t, err)
	assert.Equal(t, market.ListingKey(1), res.Data)

	var events []skinmarket.Event
	ex.Subscribe(func(res skinmarket.DeliverResult) {
		events = append(events, res.Events...)
	})

	_, err = ex.Deliver(bobCtx, &skintest.Tx{Msg: &market.PurchaseSkinMsg{ListingId: 1, Payment: coin.NewCoin(100, "CRD")}})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, market.EventSkinPurchased, events[0].Type)

	// Final balances across all wallets.
	skinsCtrl := skins.NewController()
	cashCtrl := cash.NewController()
	err = ex.View(func(db skinmarket.KVStore) error {
		got, err := skinsCtrl.Balance(db, alice, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(6), got)
		got, err = skinsCtrl.Balance(db, bob, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(4), got)
		got, err = skinsCtrl.Balance(db, market.CustodyAddress(), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(0), got)

		coins, err := cashCtrl.Balance(db, alice)
		require.NoError(t, err)
		assert.Equal(t, int64(100), coins.Amount("CRD"))
		return nil
	})
	require.NoError(t, err)

	// A second purchase of the same listing fails and moves nothing.
	_, err = ex.Deliver(bobCtx, &skintest.Tx{Msg: &market.PurchaseSkinMsg{ListingId: 1, Payment: coin.NewCoin(100, "CRD")}})
	assert.True(t, market.ErrListingInactive.Is(err))
}

func mustJSON(t testing.TB, v interface{}) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

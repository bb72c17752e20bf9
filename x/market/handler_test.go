package market

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sc2skins/skinmarket"
	"github.com/sc2skins/skinmarket/coin"
	"github.com/sc2skins/skinmarket/errors"
	"github.com/sc2skins/skinmarket/skintest"
	"github.com/sc2skins/skinmarket/store"
	"github.com/sc2skins/skinmarket/x/cash"
	"github.com/sc2skins/skinmarket/x/roles"
	"github.com/sc2skins/skinmarket/x/skins"
)

type fixture struct {
	db       skinmarket.CacheableKVStore
	listings Bucket
	skins    skins.Controller
	cash     cash.Controller
	guard    roles.Guard
}

func newFixture(t testing.TB) *fixture {
	t.Helper()
	return &fixture{
		db:       store.MemStore(),
		listings: NewBucket(),
		skins:    skins.NewController(),
		cash:     cash.NewController(),
		guard:    roles.NewGuard(),
	}
}

func (f *fixture) listHandler(caller skinmarket.Address) ListSkinHandler {
	return ListSkinHandler{auth: &skintest.Auth{Caller: caller}, listings: f.listings, skins: f.skins}
}

func (f *fixture) purchaseHandler(caller skinmarket.Address) PurchaseSkinHandler {
	return PurchaseSkinHandler{auth: &skintest.Auth{Caller: caller}, listings: f.listings, skins: f.skins, cash: f.cash}
}

func (f *fixture) delistHandler(caller skinmarket.Address) DelistSkinHandler {
	return DelistSkinHandler{auth: &skintest.Auth{Caller: caller}, guard: f.guard, listings: f.listings, skins: f.skins}
}

func (f *fixture) skinBalance(t testing.TB, addr skinmarket.Address, skinID uint64) int64 {
	t.Helper()
	got, err := f.skins.Balance(f.db, addr, skinID)
	require.NoError(t, err)
	return got
}

func (f *fixture) cashBalance(t testing.TB, addr skinmarket.Address) int64 {
	t.Helper()
	got, err := f.cash.Balance(f.db, addr)
	require.NoError(t, err)
	return got.Amount("CRD")
}

func TestListAndPurchase(t *testing.T) {
	alice := skintest.NewAddress()
	bob := skintest.NewAddress()
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.skins.Mint(f.db, alice, 1, 10))
	require.NoError(t, f.cash.IssueCoins(f.db, bob, coin.NewCoin(100, "CRD")))

	// Alice lists 4 of kind 1 for 100 CRD.
	res, err := f.listHandler(alice).Deliver(ctx, f.db, &skintest.Tx{
		Msg: &ListSkinMsg{SkinId: 1, Amount: 4, Price: coin.NewCoin(100, "CRD")},
	})
	require.NoError(t, err)
	assert.Equal(t, ListingKey(1), res.Data)
	require.Len(t, res.Events, 1)
	assert.Equal(t, EventSkinListed, res.Events[0].Type)

	// The escrow left her wallet.
	assert.Equal(t, int64(6), f.skinBalance(t, alice, 1))
	assert.Equal(t, int64(4), f.skinBalance(t, CustodyAddress(), 1))

	listing, err := f.listings.GetListing(f.db, 1)
	require.NoError(t, err)
	assert.True(t, listing.Active)
	assert.Equal(t, uint64(1), f.listings.Counter(f.db))

	// Bob buys it with exact payment.
	res, err = f.purchaseHandler(bob).Deliver(ctx, f.db, &skintest.Tx{
		Msg: &PurchaseSkinMsg{ListingId: 1, Payment: coin.NewCoin(100, "CRD")},
	})
	require.NoError(t, err)
	require.Len(t, res.Events, 1)
	assert.Equal(t, EventSkinPurchased, res.Events[0].Type)

	assert.Equal(t, int64(6), f.skinBalance(t, alice, 1))
	assert.Equal(t, int64(4), f.skinBalance(t, bob, 1))
	assert.Equal(t, int64(0), f.skinBalance(t, CustodyAddress(), 1))
	assert.Equal(t, int64(100), f.cashBalance(t, alice))
	assert.Equal(t, int64(0), f.cashBalance(t, bob))

	// The listing is retained, closed.
	listing, err = f.listings.GetListing(f.db, 1)
	require.NoError(t, err)
	assert.False(t, listing.Active)
}

func TestPurchaseClosedListing(t *testing.T) {
	alice := skintest.NewAddress()
	bob := skintest.NewAddress()
	carl := skintest.NewAddress()
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.skins.Mint(f.db, alice, 1, 4))
	require.NoError(t, f.cash.IssueCoins(f.db, bob, coin.NewCoin(100, "CRD")))
	require.NoError(t, f.cash.IssueCoins(f.db, carl, coin.NewCoin(100, "CRD")))

	_, err := f.listHandler(alice).Deliver(ctx, f.db, &skintest.Tx{
		Msg: &ListSkinMsg{SkinId: 1, Amount: 4, Price: coin.NewCoin(100, "CRD")},
	})
	require.NoError(t, err)

	buy := &skintest.Tx{Msg: &PurchaseSkinMsg{ListingId: 1, Payment: coin.NewCoin(100, "CRD")}}
	_, err = f.purchaseHandler(bob).Deliver(ctx, f.db, buy)
	require.NoError(t, err)

	// The second buyer is rejected and keeps the money.
	_, err = f.purchaseHandler(carl).Deliver(ctx, f.db, buy)
	assert.True(t, ErrListingInactive.Is(err))
	assert.Equal(t, int64(100), f.cashBalance(t, carl))
	assert.Equal(t, int64(4), f.skinBalance(t, bob, 1))
}

func TestPurchaseWrongPayment(t *testing.T) {
	alice := skintest.NewAddress()
	bob := skintest.NewAddress()
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.skins.Mint(f.db, alice, 1, 4))
	require.NoError(t, f.cash.IssueCoins(f.db, bob, coin.NewCoin(500, "CRD")))

	_, err := f.listHandler(alice).Deliver(ctx, f.db, &skintest.Tx{
		Msg: &ListSkinMsg{SkinId: 1, Amount: 4, Price: coin.NewCoin(100, "CRD")},
	})
	require.NoError(t, err)

	for _, payment := range []coin.Coin{
		coin.NewCoin(99, "CRD"),  // underpay
		coin.NewCoin(101, "CRD"), // overpay
		coin.NewCoin(100, "GOLD"),
	} {
		_, err = f.purchaseHandler(bob).Deliver(ctx, f.db, &skintest.Tx{
			Msg: &PurchaseSkinMsg{ListingId: 1, Payment: payment},
		})
		assert.True(t, ErrWrongPayment.Is(err), "payment %s: got %+v", payment, err)
	}

	// Nothing was taken from the buyer, the listing is still active.
	assert.Equal(t, int64(500), f.cashBalance(t, bob))
	listing, err := f.listings.GetListing(f.db, 1)
	require.NoError(t, err)
	assert.True(t, listing.Active)
}

func TestPurchaseOwnListing(t *testing.T) {
	alice := skintest.NewAddress()
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.skins.Mint(f.db, alice, 1, 4))
	require.NoError(t, f.cash.IssueCoins(f.db, alice, coin.NewCoin(100, "CRD")))

	_, err := f.listHandler(alice).Deliver(ctx, f.db, &skintest.Tx{
		Msg: &ListSkinMsg{SkinId: 1, Amount: 4, Price: coin.NewCoin(100, "CRD")},
	})
	require.NoError(t, err)

	// Buying one's own listing pays oneself: tokens return and the cash
	// balance is unchanged.
	_, err = f.purchaseHandler(alice).Deliver(ctx, f.db, &skintest.Tx{
		Msg: &PurchaseSkinMsg{ListingId: 1, Payment: coin.NewCoin(100, "CRD")},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(4), f.skinBalance(t, alice, 1))
	assert.Equal(t, int64(0), f.skinBalance(t, CustodyAddress(), 1))
	assert.Equal(t, int64(100), f.cashBalance(t, alice))

	listing, err := f.listings.GetListing(f.db, 1)
	require.NoError(t, err)
	assert.False(t, listing.Active)
}

func TestPurchaseUnknownListing(t *testing.T) {
	bob := skintest.NewAddress()
	f := newFixture(t)

	_, err := f.purchaseHandler(bob).Deliver(context.Background(), f.db, &skintest.Tx{
		Msg: &PurchaseSkinMsg{ListingId: 42, Payment: coin.NewCoin(1, "CRD")},
	})
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestListEscrowedInventory(t *testing.T) {
	alice := skintest.NewAddress()
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.skins.Mint(f.db, alice, 1, 5))

	_, err := f.listHandler(alice).Deliver(ctx, f.db, &skintest.Tx{
		Msg: &ListSkinMsg{SkinId: 1, Amount: 4, Price: coin.NewCoin(10, "CRD")},
	})
	require.NoError(t, err)

	// Only one token is left in the wallet, the rest is escrowed.
	_, err = f.listHandler(alice).Deliver(ctx, f.db, &skintest.Tx{
		Msg: &ListSkinMsg{SkinId: 1, Amount: 4, Price: coin.NewCoin(10, "CRD")},
	})
	assert.True(t, errors.ErrInsufficientBalance.Is(err))

	// The failed attempt left no trace.
	assert.Equal(t, int64(1), f.skinBalance(t, alice, 1))
	assert.Equal(t, int64(4), f.skinBalance(t, CustodyAddress(), 1))
	assert.Equal(t, uint64(1), f.listings.Counter(f.db))
}

func TestDelist(t *testing.T) {
	alice := skintest.NewAddress()
	bob := skintest.NewAddress()
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.skins.Mint(f.db, alice, 1, 4))
	require.NoError(t, f.cash.IssueCoins(f.db, bob, coin.NewCoin(100, "CRD")))

	_, err := f.listHandler(alice).Deliver(ctx, f.db, &skintest.Tx{
		Msg: &ListSkinMsg{SkinId: 1, Amount: 4, Price: coin.NewCoin(100, "CRD")},
	})
	require.NoError(t, err)

	// A stranger cannot delist.
	_, err = f.delistHandler(bob).Deliver(ctx, f.db, &skintest.Tx{Msg: &DelistSkinMsg{ListingId: 1}})
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// The seller can; the escrow returns.
	_, err = f.delistHandler(alice).Deliver(ctx, f.db, &skintest.Tx{Msg: &DelistSkinMsg{ListingId: 1}})
	require.NoError(t, err)
	assert.Equal(t, int64(4), f.skinBalance(t, alice, 1))
	assert.Equal(t, int64(0), f.skinBalance(t, CustodyAddress(), 1))

	// A purchase after delisting is rejected.
	_, err = f.purchaseHandler(bob).Deliver(ctx, f.db, &skintest.Tx{
		Msg: &PurchaseSkinMsg{ListingId: 1, Payment: coin.NewCoin(100, "CRD")},
	})
	assert.True(t, ErrListingInactive.Is(err))
	assert.Equal(t, int64(100), f.cashBalance(t, bob))
}

func TestAdminDelistOverride(t *testing.T) {
	alice := skintest.NewAddress()
	admin := skintest.NewAddress()
	f := newFixture(t)
	ctx := context.Background()

	rolesBucket := roles.NewBucket()
	u, err := rolesBucket.GetUserRoles(f.db, admin)
	require.NoError(t, err)
	u.Grant(roles.RoleAdmin)
	require.NoError(t, rolesBucket.Save(f.db, admin, u))

	require.NoError(t, f.skins.Mint(f.db, alice, 1, 4))
	_, err = f.listHandler(alice).Deliver(ctx, f.db, &skintest.Tx{
		Msg: &ListSkinMsg{SkinId: 1, Amount: 4, Price: coin.NewCoin(100, "CRD")},
	})
	require.NoError(t, err)

	// The admin can force a delisting, tokens return to the seller.
	_, err = f.delistHandler(admin).Deliver(ctx, f.db, &skintest.Tx{Msg: &DelistSkinMsg{ListingId: 1}})
	require.NoError(t, err)
	assert.Equal(t, int64(4), f.skinBalance(t, alice, 1))
	assert.Equal(t, int64(0), f.skinBalance(t, admin, 1))
}

func TestListingIdsAreNotReused(t *testing.T) {
	alice := skintest.NewAddress()
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.skins.Mint(f.db, alice, 1, 10))

	for want := uint64(1); want <= 3; want++ {
		res, err := f.listHandler(alice).Deliver(ctx, f.db, &skintest.Tx{
			Msg: &ListSkinMsg{SkinId: 1, Amount: 2, Price: coin.NewCoin(5, "CRD")},
		})
		require.NoError(t, err)
		assert.Equal(t, ListingKey(want), res.Data)

		_, err = f.delistHandler(alice).Deliver(ctx, f.db, &skintest.Tx{Msg: &DelistSkinMsg{ListingId: want}})
		require.NoError(t, err)
	}
	assert.Equal(t, uint64(3), f.listings.Counter(f.db))
}

func TestCloseIsFinal(t *testing.T) {
	alice := skintest.NewAddress()
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.skins.Mint(f.db, alice, 1, 4))
	_, err := f.listHandler(alice).Deliver(ctx, f.db, &skintest.Tx{
		Msg: &ListSkinMsg{SkinId: 1, Amount: 4, Price: coin.NewCoin(10, "CRD")},
	})
	require.NoError(t, err)

	_, err = f.listings.Close(f.db, 1)
	require.NoError(t, err)
	_, err = f.listings.Close(f.db, 1)
	assert.True(t, ErrAlreadyClosed.Is(err))
}

func TestFreeListing(t *testing.T) {
	alice := skintest.NewAddress()
	bob := skintest.NewAddress()
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.skins.Mint(f.db, alice, 1, 2))
	_, err := f.listHandler(alice).Deliver(ctx, f.db, &skintest.Tx{
		Msg: &ListSkinMsg{SkinId: 1, Amount: 2, Price: coin.NewCoin(0, "CRD")},
	})
	require.NoError(t, err)

	// A zero price listing settles without a cash wallet on either side.
	_, err = f.purchaseHandler(bob).Deliver(ctx, f.db, &skintest.Tx{
		Msg: &PurchaseSkinMsg{ListingId: 1, Payment: coin.NewCoin(0, "CRD")},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), f.skinBalance(t, bob, 1))
}

func TestListMsgValidate(t *testing.T) {
	cases := map[string]struct {
		msg     skinmarket.Msg
		wantErr *errors.Error
	}{
		"valid list": {
			msg: &ListSkinMsg{SkinId: 1, Amount: 2, Price: coin.NewCoin(10, "CRD")},
		},
		"list of nothing": {
			msg:     &ListSkinMsg{SkinId: 1, Amount: 0, Price: coin.NewCoin(10, "CRD")},
			wantErr: errors.ErrAmount,
		},
		"negative price": {
			msg:     &ListSkinMsg{SkinId: 1, Amount: 2, Price: coin.NewCoin(-1, "CRD")},
			wantErr: errors.ErrAmount,
		},
		"missing skin id": {
			msg:     &ListSkinMsg{Amount: 2, Price: coin.NewCoin(10, "CRD")},
			wantErr: errors.ErrEmpty,
		},
		"valid purchase": {
			msg: &PurchaseSkinMsg{ListingId: 1, Payment: coin.NewCoin(10, "CRD")},
		},
		"purchase without listing id": {
			msg:     &PurchaseSkinMsg{Payment: coin.NewCoin(10, "CRD")},
			wantErr: errors.ErrEmpty,
		},
		"delist without listing id": {
			msg:     &DelistSkinMsg{},
			wantErr: errors.ErrEmpty,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
			}
		})
	}
}

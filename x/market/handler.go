package market

import (
	"strconv"

	"github.com/sc2skins/skinmarket"
	"github.com/sc2skins/skinmarket/errors"
	"github.com/sc2skins/skinmarket/x"
	"github.com/sc2skins/skinmarket/x/cash"
	"github.com/sc2skins/skinmarket/x/roles"
	"github.com/sc2skins/skinmarket/x/skins"
)

// Event types emitted by the marketplace handlers.
const (
	EventSkinListed    = "SkinListed"
	EventSkinPurchased = "SkinPurchased"
)

var custodyCondition = skinmarket.NewCondition("market", "custody", []byte("skins"))

// CustodyAddress is the wallet holding every escrowed token of every
// active listing. It is a condition address: no caller can authenticate as
// it, only the marketplace handlers move its funds.
func CustodyAddress() skinmarket.Address {
	return custodyCondition.Address()
}

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r skinmarket.Registry, auth x.Authenticator) {
	listings := NewBucket()
	skinsCtrl := skins.NewController()
	cashCtrl := cash.NewController()
	guard := roles.NewGuard()

	r.Handle(&ListSkinMsg{}, ListSkinHandler{auth: auth, listings: listings, skins: skinsCtrl})
	r.Handle(&PurchaseSkinMsg{}, PurchaseSkinHandler{auth: auth, listings: listings, skins: skinsCtrl, cash: cashCtrl})
	r.Handle(&DelistSkinMsg{}, DelistSkinHandler{auth: auth, guard: guard, listings: listings, skins: skinsCtrl})
}

// ListSkinHandler creates a listing, moving the offered tokens from the
// seller into custody.
type ListSkinHandler struct {
	auth     x.Authenticator
	listings Bucket
	skins    skins.Controller
}

var _ skinmarket.Handler = ListSkinHandler{}

func (h ListSkinHandler) Check(ctx skinmarket.Context, db skinmarket.KVStore, tx skinmarket.Tx) (*skinmarket.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &skinmarket.CheckResult{}, nil
}

func (h ListSkinHandler) Deliver(ctx skinmarket.Context, db skinmarket.KVStore, tx skinmarket.Tx) (*skinmarket.DeliverResult, error) {
	msg, seller, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	// Escrow first: an insufficient balance aborts before anything else
	// is written. Tokens already escrowed for another listing are not in
	// the seller wallet anymore, so the same inventory cannot be listed
	// twice.
	if err := h.skins.Move(db, seller, CustodyAddress(), msg.SkinId, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "cannot escrow")
	}

	price := msg.Price
	listing := &Listing{
		Seller: seller,
		SkinId: msg.SkinId,
		Amount: msg.Amount,
		Price:  &price,
		Active: true,
	}
	id, err := h.listings.Create(db, listing)
	if err != nil {
		return nil, err
	}

	return &skinmarket.DeliverResult{
		Data: ListingKey(id),
		Events: []skinmarket.Event{
			{
				Type: EventSkinListed,
				Attributes: []skinmarket.Attribute{
					skinmarket.Attr("listing_id", strconv.FormatUint(id, 10)),
					skinmarket.Attr("seller", seller.String()),
					skinmarket.Attr("skin_id", strconv.FormatUint(msg.SkinId, 10)),
					skinmarket.Attr("amount", strconv.FormatInt(msg.Amount, 10)),
					skinmarket.Attr("price", price.String()),
				},
			},
		},
	}, nil
}

func (h ListSkinHandler) validate(ctx skinmarket.Context, db skinmarket.KVStore, tx skinmarket.Tx) (*ListSkinMsg, skinmarket.Address, error) {
	var msg ListSkinMsg
	if err := skinmarket.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	seller := x.MainCaller(ctx, h.auth)
	if seller == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no caller")
	}
	return &msg, seller, nil
}

// PurchaseSkinHandler buys out an active listing: tokens move from custody
// to the buyer, the payment moves from the buyer to the seller, and the
// listing closes. All of it or none of it happens.
type PurchaseSkinHandler struct {
	auth     x.Authenticator
	listings Bucket
	skins    skins.Controller
	cash     cash.Controller
}

var _ skinmarket.Handler = PurchaseSkinHandler{}

func (h PurchaseSkinHandler) Check(ctx skinmarket.Context, db skinmarket.KVStore, tx skinmarket.Tx) (*skinmarket.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &skinmarket.CheckResult{}, nil
}

func (h PurchaseSkinHandler) Deliver(ctx skinmarket.Context, db skinmarket.KVStore, tx skinmarket.Tx) (*skinmarket.DeliverResult, error) {
	msg, listing, buyer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if err := h.skins.Move(db, CustodyAddress(), buyer, listing.SkinId, listing.Amount); err != nil {
		return nil, errors.Wrap(err, "cannot release escrow")
	}
	if listing.Price.IsPositive() {
		if err := h.cash.MoveCoins(db, buyer, listing.Seller, *listing.Price); err != nil {
			return nil, errors.Wrap(err, "cannot settle payment")
		}
	}
	if _, err := h.listings.Close(db, msg.ListingId); err != nil {
		return nil, err
	}

	return &skinmarket.DeliverResult{
		Data: ListingKey(msg.ListingId),
		Events: []skinmarket.Event{
			{
				Type: EventSkinPurchased,
				Attributes: []skinmarket.Attribute{
					skinmarket.Attr("listing_id", strconv.FormatUint(msg.ListingId, 10)),
					skinmarket.Attr("buyer", buyer.String()),
					skinmarket.Attr("seller", listing.Seller.String()),
					skinmarket.Attr("skin_id", strconv.FormatUint(listing.SkinId, 10)),
					skinmarket.Attr("amount", strconv.FormatInt(listing.Amount, 10)),
					skinmarket.Attr("price", listing.Price.String()),
				},
			},
		},
	}, nil
}

func (h PurchaseSkinHandler) validate(ctx skinmarket.Context, db skinmarket.KVStore, tx skinmarket.Tx) (*PurchaseSkinMsg, *Listing, skinmarket.Address, error) {
	var msg PurchaseSkinMsg
	if err := skinmarket.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, err
	}
	buyer := x.MainCaller(ctx, h.auth)
	if buyer == nil {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "no caller")
	}

	listing, err := h.listings.GetListing(db, msg.ListingId)
	if err != nil {
		return nil, nil, nil, err
	}
	if !listing.Active {
		return nil, nil, nil, errors.Wrapf(ErrListingInactive, "listing %d", msg.ListingId)
	}
	// Exact payment only: both over- and underpayment are rejected, and
	// nothing is taken from the buyer.
	if !msg.Payment.Equals(*listing.Price) {
		return nil, nil, nil, errors.Wrapf(ErrWrongPayment, "want %s, got %s", listing.Price, msg.Payment)
	}
	return &msg, listing, buyer, nil
}

// DelistSkinHandler withdraws an active listing, returning the escrowed
// tokens to the seller. An admin may force a delisting as a dispute
// override; the tokens still return to the seller, never to the admin.
type DelistSkinHandler struct {
	auth     x.Authenticator
	guard    roles.Guard
	listings Bucket
	skins    skins.Controller
}

var _ skinmarket.Handler = DelistSkinHandler{}

func (h DelistSkinHandler) Check(ctx skinmarket.Context, db skinmarket.KVStore, tx skinmarket.Tx) (*skinmarket.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &skinmarket.CheckResult{}, nil
}

func (h DelistSkinHandler) Deliver(ctx skinmarket.Context, db skinmarket.KVStore, tx skinmarket.Tx) (*skinmarket.DeliverResult, error) {
	msg, listing, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if err := h.skins.Move(db, CustodyAddress(), listing.Seller, listing.SkinId, listing.Amount); err != nil {
		return nil, errors.Wrap(err, "cannot release escrow")
	}
	if _, err := h.listings.Close(db, msg.ListingId); err != nil {
		return nil, err
	}
	return &skinmarket.DeliverResult{Data: ListingKey(msg.ListingId)}, nil
}

func (h DelistSkinHandler) validate(ctx skinmarket.Context, db skinmarket.KVStore, tx skinmarket.Tx) (*DelistSkinMsg, *Listing, error) {
	var msg DelistSkinMsg
	if err := skinmarket.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}

	listing, err := h.listings.GetListing(db, msg.ListingId)
	if err != nil {
		return nil, nil, err
	}
	if !listing.Active {
		return nil, nil, errors.Wrapf(ErrListingInactive, "listing %d", msg.ListingId)
	}

	if !h.auth.HasAddress(ctx, listing.Seller) {
		if _, err := h.guard.CallerWithRole(ctx, h.auth, db, roles.RoleAdmin); err != nil {
			return nil, nil, errors.Wrap(errors.ErrUnauthorized, "only the seller or an admin")
		}
	}
	return &msg, listing, nil
}

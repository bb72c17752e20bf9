package market

import (
	"github.com/sc2skins/skinmarket"
	"github.com/sc2skins/skinmarket/coin"
	"github.com/sc2skins/skinmarket/errors"
)

const (
	pathList     = "market/list"
	pathPurchase = "market/purchase"
	pathDelist   = "market/delist"
)

var (
	_ skinmarket.Msg = (*ListSkinMsg)(nil)
	_ skinmarket.Msg = (*PurchaseSkinMsg)(nil)
	_ skinmarket.Msg = (*DelistSkinMsg)(nil)
)

// ListSkinMsg offers a quantity of one skin kind for sale at a fixed
// price. The caller is the seller; the offered tokens move into custody
// until the listing is purchased or delisted.
type ListSkinMsg struct {
	SkinId uint64
	Amount int64
	Price  coin.Coin
}

func (ListSkinMsg) Path() string {
	return pathList
}

func (m ListSkinMsg) Validate() error {
	if m.SkinId == 0 {
		return errors.Wrap(errors.ErrEmpty, "skin id")
	}
	if m.Amount <= 0 {
		return errors.Wrapf(errors.ErrAmount, "cannot list %d", m.Amount)
	}
	if err := m.Price.Validate(); err != nil {
		return errors.Wrap(err, "price")
	}
	if !m.Price.IsNonNegative() {
		return errors.Wrapf(errors.ErrAmount, "negative price %s", m.Price)
	}
	return nil
}

// PurchaseSkinMsg buys out an active listing. The payment must equal the
// listing price exactly; the caller is the buyer.
type PurchaseSkinMsg struct {
	ListingId uint64
	Payment   coin.Coin
}

func (PurchaseSkinMsg) Path() string {
	return pathPurchase
}

func (m PurchaseSkinMsg) Validate() error {
	if m.ListingId == 0 {
		return errors.Wrap(errors.ErrEmpty, "listing id")
	}
	if err := m.Payment.Validate(); err != nil {
		return errors.Wrap(err, "payment")
	}
	if !m.Payment.IsNonNegative() {
		return errors.Wrapf(errors.ErrAmount, "negative payment %s", m.Payment)
	}
	return nil
}

// DelistSkinMsg withdraws an active listing. The caller must be the seller
// or hold the admin role; the escrowed tokens always return to the seller.
type DelistSkinMsg struct {
	ListingId uint64
}

func (DelistSkinMsg) Path() string {
	return pathDelist
}

func (m DelistSkinMsg) Validate() error {
	if m.ListingId == 0 {
		return errors.Wrap(errors.ErrEmpty, "listing id")
	}
	return nil
}

package cash

import (
	market "github.com/sc2skins/skinmarket"
	"github.com/sc2skins/skinmarket/coin"
	"github.com/sc2skins/skinmarket/errors"
)

// Controller is the functionality needed by the handlers and by other
// extensions that settle payments. The caller is responsible for
// authorization; the controller only maintains wallet consistency.
type Controller struct {
	wallets Bucket
}

// NewController returns a controller reading and writing the standard cash
// bucket.
func NewController() Controller {
	return Controller{wallets: NewBucket()}
}

// Balance returns the coins held by an address. An unknown address is not
// an error but an empty wallet.
func (c Controller) Balance(db market.KVStore, addr market.Address) (coin.Coins, error) {
	set, err := c.wallets.GetSet(db, addr)
	if err != nil {
		return nil, errors.Wrap(err, "cannot load wallet")
	}
	return coin.Coins(set.Coins), nil
}

// MoveCoins transfers the given amount between two wallets. It returns
// ErrInsufficientBalance if the source holds less, leaving both wallets
// untouched.
func (c Controller) MoveCoins(db market.KVStore, src, dest market.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "cannot move %s", amount)
	}

	sender, err := c.wallets.GetSet(db, src)
	if err != nil {
		return errors.Wrap(err, "cannot load source wallet")
	}
	if err := sender.Add(amount.Negative()); err != nil {
		return err
	}

	// A transfer to oneself is a noop once the balance check passed.
	if src.Equals(dest) {
		return nil
	}

	recipient, err := c.wallets.GetSet(db, dest)
	if err != nil {
		return errors.Wrap(err, "cannot load destination wallet")
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}

	if err := c.wallets.Save(db, src, sender); err != nil {
		return errors.Wrap(err, "cannot save source wallet")
	}
	if err := c.wallets.Save(db, dest, recipient); err != nil {
		return errors.Wrap(err, "cannot save destination wallet")
	}
	return nil
}

// IssueCoins creates the given amount in the destination wallet, used to
// fund accounts from the genesis.
func (c Controller) IssueCoins(db market.KVStore, dest market.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "cannot issue %s", amount)
	}

	set, err := c.wallets.GetSet(db, dest)
	if err != nil {
		return errors.Wrap(err, "cannot load wallet")
	}
	if err := set.Add(amount); err != nil {
		return err
	}
	return c.wallets.Save(db, dest, set)
}

package skins

import (
	market "github.com/sc2skins/skinmarket"
	"github.com/sc2skins/skinmarket/errors"
)

// placeholderInfo is the catalog entry written when a kind is first minted
// without any prior metadata. An admin is expected to overwrite it.
func placeholderInfo() *TokenInfo {
	return &TokenInfo{Name: "Unnamed Skin"}
}

// Controller is the functionality needed by the handlers and by other
// extensions that move skins around. The caller is responsible for
// authorization; the controller only maintains wallet and catalog
// consistency.
type Controller struct {
	wallets WalletBucket
	infos   InfoBucket
}

// NewController returns a controller reading and writing the standard skin
// buckets.
func NewController() Controller {
	return Controller{
		wallets: NewWalletBucket(),
		infos:   NewInfoBucket(),
	}
}

// Balance returns the quantity of one skin kind held by an address. An
// unknown address or kind is not an error but a zero balance.
func (c Controller) Balance(db market.KVStore, addr market.Address, skinID uint64) (int64, error) {
	set, err := c.wallets.GetSet(db, addr)
	if err != nil {
		return 0, errors.Wrap(err, "cannot load wallet")
	}
	return set.Quantity(skinID), nil
}

// Move transfers tokens of one skin kind between two wallets. It returns
// ErrInsufficientBalance if the source holds less than the given amount,
// leaving both wallets untouched.
func (c Controller) Move(db market.KVStore, src, dest market.Address, skinID uint64, amount int64) error {
	if amount <= 0 {
		return errors.Wrapf(errors.ErrAmount, "cannot move %d", amount)
	}

	sender, err := c.wallets.GetSet(db, src)
	if err != nil {
		return errors.Wrap(err, "cannot load source wallet")
	}
	if err := sender.Add(NewToken(skinID, -amount)); err != nil {
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
	if err := recipient.Add(NewToken(skinID, amount)); err != nil {
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

// Mint creates new tokens of one skin kind in the destination wallet. If
// the kind has no catalog entry yet, a placeholder entry is written so the
// kind is always resolvable.
func (c Controller) Mint(db market.KVStore, dest market.Address, skinID uint64, amount int64) error {
	if amount <= 0 {
		return errors.Wrapf(errors.ErrAmount, "cannot mint %d", amount)
	}

	info, err := c.infos.GetInfo(db, skinID)
	if err != nil {
		return errors.Wrap(err, "cannot load catalog")
	}
	if info == nil {
		if err := c.infos.Save(db, skinID, placeholderInfo()); err != nil {
			return errors.Wrap(err, "cannot save catalog placeholder")
		}
	}

	set, err := c.wallets.GetSet(db, dest)
	if err != nil {
		return errors.Wrap(err, "cannot load wallet")
	}
	if err := set.Add(NewToken(skinID, amount)); err != nil {
		return err
	}
	return c.wallets.Save(db, dest, set)
}

// Burn destroys tokens of one skin kind from the source wallet. It returns
// ErrInsufficientBalance if the wallet holds less than the given amount.
func (c Controller) Burn(db market.KVStore, src market.Address, skinID uint64, amount int64) error {
	if amount <= 0 {
		return errors.Wrapf(errors.ErrAmount, "cannot burn %d", amount)
	}

	set, err := c.wallets.GetSet(db, src)
	if err != nil {
		return errors.Wrap(err, "cannot load wallet")
	}
	if err := set.Add(NewToken(skinID, -amount)); err != nil {
		return err
	}
	return c.wallets.Save(db, src, set)
}

// Metadata returns the catalog entry of a skin kind, or ErrNotFound for an
// unknown kind.
func (c Controller) Metadata(db market.KVStore, skinID uint64) (*TokenInfo, error) {
	info, err := c.infos.GetInfo(db, skinID)
	if err != nil {
		return nil, errors.Wrap(err, "cannot load catalog")
	}
	if info == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "skin %d", skinID)
	}
	return info, nil
}

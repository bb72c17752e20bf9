package cash

import (
	market "github.com/sc2skins/skinmarket"
	"github.com/sc2skins/skinmarket/coin"
	"github.com/sc2skins/skinmarket/errors"
)

// Initializer fulfils the market.Initializer interface to load data from
// the genesis file.
type Initializer struct{}

var _ market.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial account funding from the genesis and save
// it in the database. Expected format:
//
//	"cash": [
//	  {"address": "C0FFEE...", "coins": [{"amount": 1000, "ticker": "CRD"}]}
//	]
func (Initializer) FromGenesis(opts market.Options, db market.KVStore) error {
	var accounts []struct {
		Address market.Address `json:"address"`
		Coins   []coin.Coin    `json:"coins"`
	}
	if err := opts.ReadOptions("cash", &accounts); err != nil {
		return errors.Wrap(err, "cannot read cash")
	}

	ctrl := NewController()
	for i, acc := range accounts {
		if err := acc.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account #%d address", i)
		}
		for _, c := range acc.Coins {
			if err := ctrl.IssueCoins(db, acc.Address, c); err != nil {
				return errors.Wrapf(err, "account #%d", i)
			}
		}
	}
	return nil
}

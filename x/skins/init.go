package skins

import (
	market "github.com/sc2skins/skinmarket"
	"github.com/sc2skins/skinmarket/errors"
)

// Initializer fulfils the market.Initializer interface to load data from
// the genesis file.
type Initializer struct{}

var _ market.Initializer = (*Initializer)(nil)

type genesisSkins struct {
	Catalog []struct {
		SkinId   uint64 `json:"skin_id"`
		Name     string `json:"name"`
		Rarity   string `json:"rarity"`
		GameUnit string `json:"game_unit"`
		ImageUri string `json:"image_uri"`
	} `json:"catalog"`
	Balances []struct {
		Address  market.Address `json:"address"`
		SkinId   uint64         `json:"skin_id"`
		Quantity int64          `json:"quantity"`
	} `json:"balances"`
}

// FromGenesis will parse the initial skin catalog and balances from the
// genesis and save them in the database. Expected format:
//
//	"skins": {
//	  "catalog": [
//	    {"skin_id": 1, "name": "Golden Marine", "rarity": "Rare",
//	     "game_unit": "Marine", "image_uri": "ipfs://..."}
//	  ],
//	  "balances": [
//	    {"address": "C0FFEE...", "skin_id": 1, "quantity": 10}
//	  ]
//	}
func (Initializer) FromGenesis(opts market.Options, db market.KVStore) error {
	var gen genesisSkins
	if err := opts.ReadOptions("skins", &gen); err != nil {
		return errors.Wrap(err, "cannot read skins")
	}

	infos := NewInfoBucket()
	for i, c := range gen.Catalog {
		if c.SkinId == 0 {
			return errors.Wrapf(errors.ErrEmpty, "catalog #%d skin id", i)
		}
		info := &TokenInfo{
			Name:     c.Name,
			Rarity:   c.Rarity,
			GameUnit: c.GameUnit,
			ImageUri: c.ImageUri,
		}
		if err := infos.Save(db, c.SkinId, info); err != nil {
			return errors.Wrapf(err, "catalog #%d", i)
		}
	}

	ctrl := NewController()
	for i, b := range gen.Balances {
		if err := b.Address.Validate(); err != nil {
			return errors.Wrapf(err, "balance #%d address", i)
		}
		if err := ctrl.Mint(db, b.Address, b.SkinId, b.Quantity); err != nil {
			return errors.Wrapf(err, "balance #%d", i)
		}
	}
	return nil
}

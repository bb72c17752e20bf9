package roles

import (
	market "github.com/sc2skins/skinmarket"
	"github.com/sc2skins/skinmarket/errors"
)

// Initializer fulfils the market.Initializer interface to load data from
// the genesis file.
type Initializer struct{}

var _ market.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial role grants from the genesis and save them
// in the database. Expected format:
//
//	"roles": [
//	  {"address": "C0FFEE...", "roles": ["admin", "minter"]}
//	]
func (Initializer) FromGenesis(opts market.Options, db market.KVStore) error {
	var grants []struct {
		Address market.Address `json:"address"`
		Roles   []string       `json:"roles"`
	}
	if err := opts.ReadOptions("roles", &grants); err != nil {
		return errors.Wrap(err, "cannot read roles")
	}

	bucket := NewBucket()
	for i, g := range grants {
		if err := g.Address.Validate(); err != nil {
			return errors.Wrapf(err, "grant #%d address", i)
		}
		u, err := bucket.GetUserRoles(db, g.Address)
		if err != nil {
			return errors.Wrapf(err, "grant #%d", i)
		}
		for _, name := range g.Roles {
			role, err := ParseRole(name)
			if err != nil {
				return errors.Wrapf(err, "grant #%d", i)
			}
			u.Grant(role)
		}
		if err := bucket.Save(db, g.Address, u); err != nil {
			return errors.Wrapf(err, "grant #%d", i)
		}
	}
	return nil
}

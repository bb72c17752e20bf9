package roles

import (
	market "github.com/sc2skins/skinmarket"
	"github.com/sc2skins/skinmarket/errors"
	"github.com/sc2skins/skinmarket/x"
)

// Guard answers role questions for other extensions. Every check reads the
// store fresh, so a revocation is visible to the very next transaction.
type Guard struct {
	bucket Bucket
}

// NewGuard returns a Guard reading from the standard roles bucket.
func NewGuard() Guard {
	return Guard{bucket: NewBucket()}
}

// HasRole checks if the given address currently holds the given role.
func (g Guard) HasRole(db market.KVStore, addr market.Address, r Role) (bool, error) {
	u, err := g.bucket.GetUserRoles(db, addr)
	if err != nil {
		return false, errors.Wrap(err, "cannot load roles")
	}
	return u.Has(r), nil
}

// CallerWithRole returns the first authenticated caller that holds the
// given role, or ErrUnauthorized if there is none.
func (g Guard) CallerWithRole(ctx market.Context, auth x.Authenticator, db market.KVStore, r Role) (market.Address, error) {
	for _, c := range auth.GetCallers(ctx) {
		ok, err := g.HasRole(db, c, r)
		if err != nil {
			return nil, err
		}
		if ok {
			return c, nil
		}
	}
	return nil, errors.Wrapf(errors.ErrUnauthorized, "no caller with %s role", r)
}

package roles

import (
	"strings"

	market "github.com/sc2skins/skinmarket"
	"github.com/sc2skins/skinmarket/errors"
	"github.com/sc2skins/skinmarket/orm"
)

// Role is a single capability that can be granted to an account.
type Role uint32

const (
	// RoleMinter allows creating new skin tokens.
	RoleMinter Role = 0x1
	// RoleBurner allows destroying skin tokens.
	RoleBurner Role = 0x2
	// RoleAdmin allows managing role assignments, overwriting the skin
	// catalog and force-closing listings.
	RoleAdmin Role = 0x4

	allRoles = RoleMinter | RoleBurner | RoleAdmin
)

// Validate returns an error unless this is exactly one known role.
func (r Role) Validate() error {
	switch r {
	case RoleMinter, RoleBurner, RoleAdmin:
		return nil
	}
	return errors.Wrapf(errors.ErrInput, "unknown role: %d", r)
}

func (r Role) String() string {
	switch r {
	case RoleMinter:
		return "minter"
	case RoleBurner:
		return "burner"
	case RoleAdmin:
		return "admin"
	}
	return "invalid"
}

// ParseRole returns the role described by a human readable name.
func ParseRole(name string) (Role, error) {
	switch strings.ToLower(name) {
	case "minter":
		return RoleMinter, nil
	case "burner":
		return RoleBurner, nil
	case "admin":
		return RoleAdmin, nil
	}
	return 0, errors.Wrapf(errors.ErrInput, "unknown role: %q", name)
}

var _ orm.CloneableData = (*UserRoles)(nil)

// Validate ensures no unknown role bits are set.
func (u *UserRoles) Validate() error {
	if u.Roles&^uint32(allRoles) != 0 {
		return errors.Wrapf(errors.ErrModel, "unknown role bits: %b", u.Roles)
	}
	return nil
}

// Copy makes a new set with the same roles.
func (u *UserRoles) Copy() orm.CloneableData {
	return &UserRoles{Roles: u.Roles}
}

// Has checks if the given role was granted.
func (u *UserRoles) Has(r Role) bool {
	return u.Roles&uint32(r) != 0
}

// Grant adds the given role to the set. Granting an already held role is a
// noop.
func (u *UserRoles) Grant(r Role) {
	u.Roles |= uint32(r)
}

// Revoke removes the given role from the set. Revoking a role that was
// never granted is a noop.
func (u *UserRoles) Revoke(r Role) {
	u.Roles &^= uint32(r)
}

// Empty returns true if no role is held.
func (u *UserRoles) Empty() bool {
	return u.Roles == 0
}

// BucketName is where we store the role assignments.
const BucketName = "roles"

// Bucket is a type-safe wrapper around orm.ModelBucket, storing one
// UserRoles entry per account address.
type Bucket struct {
	morm orm.ModelBucket
}

// NewBucket initializes a roles bucket.
func NewBucket() Bucket {
	return Bucket{
		morm: orm.NewModelBucket(orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &UserRoles{}))),
	}
}

// GetUserRoles loads the roles granted to an address. A missing entry is
// not an error but returns an empty set.
func (b Bucket) GetUserRoles(db market.KVStore, addr market.Address) (*UserRoles, error) {
	var u UserRoles
	switch err := b.morm.One(db, addr, &u); {
	case err == nil:
		return &u, nil
	case errors.ErrNotFound.Is(err):
		return &UserRoles{}, nil
	default:
		return nil, err
	}
}

// Has returns true if the address has a persisted role set.
func (b Bucket) Has(db market.KVStore, addr market.Address) bool {
	return b.morm.Has(db, addr) == nil
}

// Save persists the role set of an address. An empty set removes the
// database entry.
func (b Bucket) Save(db market.KVStore, addr market.Address, u *UserRoles) error {
	if u.Empty() {
		// Deleting a set that was never persisted is a noop.
		err := b.morm.Delete(db, addr)
		if err != nil && !errors.ErrNotFound.Is(err) {
			return err
		}
		return nil
	}
	return b.morm.Put(db, addr, u)
}

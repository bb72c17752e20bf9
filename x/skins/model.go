package skins

import (
	"encoding/binary"

	market "github.com/sc2skins/skinmarket"
	"github.com/sc2skins/skinmarket/errors"
	"github.com/sc2skins/skinmarket/orm"
)

const (
	// WalletBucketName is where we store the skin wallets.
	WalletBucketName = "skins"
	// InfoBucketName is where we store the skin catalog.
	InfoBucketName = "skininfo"

	maxNameLength = 64
	maxAttrLength = 256
)

var _ orm.CloneableData = (*Set)(nil)

// Validate requires a well-formed wallet: positive quantities, sorted skin
// ids, no duplicates.
func (s *Set) Validate() error {
	return Tokens(s.Tokens).Validate()
}

// Copy makes a new set with the same tokens.
func (s *Set) Copy() orm.CloneableData {
	return &Set{Tokens: Tokens(s.Tokens).Clone()}
}

// Quantity returns the quantity held of the given skin kind, zero for
// unknown kinds.
func (s *Set) Quantity(skinID uint64) int64 {
	return Tokens(s.Tokens).Quantity(skinID)
}

// Add merges the given token into the wallet. A negative quantity
// subtracts.
func (s *Set) Add(t Token) error {
	tokens, err := Tokens(s.Tokens).Add(t)
	if err != nil {
		return err
	}
	s.Tokens = tokens
	return nil
}

// Empty returns true if the wallet holds nothing.
func (s *Set) Empty() bool {
	return len(s.Tokens) == 0
}

// WalletBucket is a type-safe wrapper around orm.Bucket, storing one skin
// wallet per account address.
type WalletBucket struct {
	orm.Bucket
}

// NewWalletBucket initializes a bucket for the skin wallets.
func NewWalletBucket() WalletBucket {
	return WalletBucket{
		Bucket: orm.NewBucket(WalletBucketName, orm.NewSimpleObj(nil, &Set{})),
	}
}

// GetSet loads the wallet of an address. A missing entry is not an error
// but returns an empty wallet.
func (b WalletBucket) GetSet(db market.KVStore, addr market.Address) (*Set, error) {
	obj, err := b.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return &Set{}, nil
	}
	set, ok := obj.Value().(*Set)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	return set, nil
}

// Save persists the wallet of an address. An empty wallet removes the
// database entry.
func (b WalletBucket) Save(db market.KVStore, addr market.Address, set *Set) error {
	if set.Empty() {
		return b.Delete(db, addr)
	}
	return b.Bucket.Save(db, orm.NewSimpleObj(addr, set))
}

var _ orm.CloneableData = (*TokenInfo)(nil)

// Validate requires a named catalog entry; rarity, game unit and image URI
// are free-form but bounded.
func (t *TokenInfo) Validate() error {
	if t.Name == "" {
		return errors.Wrap(errors.ErrEmpty, "name")
	}
	if len(t.Name) > maxNameLength {
		return errors.Wrapf(errors.ErrInput, "name longer than %d characters", maxNameLength)
	}
	for _, attr := range []string{t.Rarity, t.GameUnit, t.ImageUri} {
		if len(attr) > maxAttrLength {
			return errors.Wrapf(errors.ErrInput, "attribute longer than %d characters", maxAttrLength)
		}
	}
	return nil
}

// Copy makes a new catalog entry with the same content.
func (t *TokenInfo) Copy() orm.CloneableData {
	return &TokenInfo{
		Name:     t.Name,
		Rarity:   t.Rarity,
		GameUnit: t.GameUnit,
		ImageUri: t.ImageUri,
	}
}

// InfoBucket stores the skin catalog, keyed by big-endian skin id.
type InfoBucket struct {
	orm.Bucket
}

// NewInfoBucket initializes a bucket for the skin catalog.
func NewInfoBucket() InfoBucket {
	return InfoBucket{
		Bucket: orm.NewBucket(InfoBucketName, orm.NewSimpleObj(nil, &TokenInfo{})),
	}
}

// GetInfo loads the catalog entry of a skin kind, nil if the kind is
// unknown.
func (b InfoBucket) GetInfo(db market.KVStore, skinID uint64) (*TokenInfo, error) {
	obj, err := b.Get(db, SkinKey(skinID))
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	info, ok := obj.Value().(*TokenInfo)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	return info, nil
}

// Save persists a catalog entry.
func (b InfoBucket) Save(db market.KVStore, skinID uint64, info *TokenInfo) error {
	return b.Bucket.Save(db, orm.NewSimpleObj(SkinKey(skinID), info))
}

// SkinKey returns the store key of a skin kind, a big-endian encoded id.
func SkinKey(skinID uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, skinID)
	return key
}

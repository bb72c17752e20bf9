package cash

import (
	market "github.com/sc2skins/skinmarket"
	"github.com/sc2skins/skinmarket/coin"
	"github.com/sc2skins/skinmarket/errors"
	"github.com/sc2skins/skinmarket/orm"
)

// BucketName is where we store the coin wallets.
const BucketName = "cash"

var _ orm.CloneableData = (*Set)(nil)

// Validate requires a well-formed wallet: valid, positive coins sorted by
// ticker.
func (s *Set) Validate() error {
	return coin.Coins(s.Coins).Validate()
}

// Copy makes a new set with the same coins.
func (s *Set) Copy() orm.CloneableData {
	return &Set{Coins: coin.Coins(s.Coins).Clone()}
}

// Amount returns the amount held for the given ticker, zero for unknown
// tickers.
func (s *Set) Amount(ticker string) int64 {
	return coin.Coins(s.Coins).Amount(ticker)
}

// Add merges the given coin into the wallet. A negative coin subtracts.
func (s *Set) Add(c coin.Coin) error {
	coins, err := coin.Coins(s.Coins).Add(c)
	if err != nil {
		return err
	}
	s.Coins = coins
	return nil
}

// Empty returns true if the wallet holds nothing.
func (s *Set) Empty() bool {
	return len(s.Coins) == 0
}

// Bucket is a type-safe wrapper around orm.Bucket, storing one coin wallet
// per account address.
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a bucket for the coin wallets.
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Set{})),
	}
}

// GetSet loads the wallet of an address. A missing entry is not an error
// but returns an empty wallet.
func (b Bucket) GetSet(db market.KVStore, addr market.Address) (*Set, error) {
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
func (b Bucket) Save(db market.KVStore, addr market.Address, set *Set) error {
	if set.Empty() {
		return b.Delete(db, addr)
	}
	return b.Bucket.Save(db, orm.NewSimpleObj(addr, set))
}

package market

import (
	"encoding/binary"

	"github.com/sc2skins/skinmarket"
	"github.com/sc2skins/skinmarket/errors"
	"github.com/sc2skins/skinmarket/orm"
)

// BucketName is where we store the listings.
const BucketName = "listing"

var _ orm.CloneableData = (*Listing)(nil)

// Validate requires a complete listing: a seller, a skin kind, a positive
// amount and a non-negative price.
func (l *Listing) Validate() error {
	if err := l.Seller.Validate(); err != nil {
		return errors.Wrap(err, "seller")
	}
	if l.SkinId == 0 {
		return errors.Wrap(errors.ErrEmpty, "skin id")
	}
	if l.Amount <= 0 {
		return errors.Wrapf(errors.ErrAmount, "cannot list %d", l.Amount)
	}
	if l.Price == nil {
		return errors.Wrap(errors.ErrEmpty, "price")
	}
	if err := l.Price.Validate(); err != nil {
		return errors.Wrap(err, "price")
	}
	if !l.Price.IsNonNegative() {
		return errors.Wrapf(errors.ErrAmount, "negative price %s", l.Price)
	}
	return nil
}

// Copy makes a new listing with the same content.
func (l *Listing) Copy() orm.CloneableData {
	return &Listing{
		Seller: l.Seller.Clone(),
		SkinId: l.SkinId,
		Amount: l.Amount,
		Price:  l.Price.Clone(),
		Active: l.Active,
	}
}

// Bucket stores the listings, keyed by a big-endian sequence id. Ids are
// dense and never reused, so iterating 1..Counter visits every listing
// ever created.
type Bucket struct {
	orm.Bucket
	idSeq orm.Sequence
}

// NewBucket initializes a bucket for the listings.
func NewBucket() Bucket {
	b := orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Listing{}))
	return Bucket{
		Bucket: b,
		idSeq:  b.Sequence("id"),
	}
}

// Create allocates the next listing id and persists the listing under it.
func (b Bucket) Create(db skinmarket.KVStore, listing *Listing) (uint64, error) {
	id := uint64(b.idSeq.NextInt(db))
	if err := b.Bucket.Save(db, orm.NewSimpleObj(ListingKey(id), listing)); err != nil {
		return 0, errors.Wrap(err, "cannot save listing")
	}
	return id, nil
}

// GetListing loads a listing by id, ErrNotFound for ids that were never
// allocated. Closed listings are returned as well, with Active false.
func (b Bucket) GetListing(db skinmarket.KVStore, id uint64) (*Listing, error) {
	obj, err := b.Get(db, ListingKey(id))
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "listing %d", id)
	}
	listing, ok := obj.Value().(*Listing)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	return listing, nil
}

// Close marks a listing inactive and persists it. Closing is final:
// a second close returns ErrAlreadyClosed.
func (b Bucket) Close(db skinmarket.KVStore, id uint64) (*Listing, error) {
	listing, err := b.GetListing(db, id)
	if err != nil {
		return nil, err
	}
	if !listing.Active {
		return nil, errors.Wrapf(ErrAlreadyClosed, "listing %d", id)
	}
	listing.Active = false
	if err := b.Bucket.Save(db, orm.NewSimpleObj(ListingKey(id), listing)); err != nil {
		return nil, errors.Wrap(err, "cannot save listing")
	}
	return listing, nil
}

// Counter returns the most recently allocated listing id, zero if no
// listing was ever created.
func (b Bucket) Counter(db skinmarket.KVStore) uint64 {
	return uint64(b.idSeq.Latest(db))
}

// ListingKey returns the store key of a listing, a big-endian encoded id.
func ListingKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

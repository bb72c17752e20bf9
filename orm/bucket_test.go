package orm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sc2skins/skinmarket/errors"
	"github.com/sc2skins/skinmarket/store"
)

// counter is a minimal model for bucket tests.
type counter struct {
	Count int64
}

var _ Model = (*counter)(nil)

func (c *counter) Marshal() ([]byte, error) {
	return EncodeSequence(c.Count), nil
}

func (c *counter) Unmarshal(raw []byte) error {
	c.Count = DecodeSequence(raw)
	return nil
}

func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrState, "negative count")
	}
	return nil
}

func (c *counter) Copy() CloneableData {
	return &counter{Count: c.Count}
}

func TestBucketSaveGetRoundTrip(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("some", NewSimpleObj(nil, &counter{}))

	obj := NewSimpleObj([]byte("accounts"), &counter{Count: 77})
	require.NoError(t, b.Save(db, obj))

	loaded, err := b.Get(db, []byte("accounts"))
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, []byte("accounts"), loaded.Key())
	assert.Equal(t, int64(77), loaded.Value().(*counter).Count)

	// Unknown keys resolve to nil without an error.
	missing, err := b.Get(db, []byte("missing"))
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBucketRefusesInvalidModel(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("some", NewSimpleObj(nil, &counter{}))

	err := b.Save(db, NewSimpleObj([]byte("x"), &counter{Count: -1}))
	assert.True(t, errors.ErrState.Is(err))
	assert.False(t, b.Has(db, []byte("x")))
}

func TestBucketPrefixesAreIsolated(t *testing.T) {
	db := store.MemStore()
	first := NewBucket("first", NewSimpleObj(nil, &counter{}))
	second := NewBucket("second", NewSimpleObj(nil, &counter{}))

	require.NoError(t, first.Save(db, NewSimpleObj([]byte("k"), &counter{Count: 1})))
	require.NoError(t, second.Save(db, NewSimpleObj([]byte("k"), &counter{Count: 2})))

	one, err := first.Get(db, []byte("k"))
	require.NoError(t, err)
	two, err := second.Get(db, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), one.Value().(*counter).Count)
	assert.Equal(t, int64(2), two.Value().(*counter).Count)

	require.NoError(t, first.Delete(db, []byte("k")))
	assert.False(t, first.Has(db, []byte("k")))
	assert.True(t, second.Has(db, []byte("k")))
}

func TestBucketNameValidation(t *testing.T) {
	assert.Panics(t, func() { NewBucket("UPPER", NewSimpleObj(nil, &counter{})) })
	assert.Panics(t, func() { NewBucket("ab", NewSimpleObj(nil, &counter{})) })
	assert.Panics(t, func() { NewBucket("waytoolongname", NewSimpleObj(nil, &counter{})) })
}

func TestModelBucketOnePutDelete(t *testing.T) {
	db := store.MemStore()
	mb := NewModelBucket(NewBucket("some", NewSimpleObj(nil, &counter{})))

	require.NoError(t, mb.Put(db, []byte("k"), &counter{Count: 5}))

	var dest counter
	require.NoError(t, mb.One(db, []byte("k"), &dest))
	assert.Equal(t, int64(5), dest.Count)

	err := mb.One(db, []byte("missing"), &dest)
	assert.True(t, errors.ErrNotFound.Is(err))

	require.NoError(t, mb.Delete(db, []byte("k")))
	err = mb.Delete(db, []byte("k"))
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestSequenceMonotonic(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("some", NewSimpleObj(nil, &counter{}))
	seq := b.Sequence("id")

	assert.Equal(t, int64(0), seq.Latest(db))

	prev := make([]byte, 8)
	for want := int64(1); want <= 10; want++ {
		raw := seq.NextVal(db)
		assert.Equal(t, want, DecodeSequence(raw))
		assert.True(t, string(raw) > string(prev), "keys must grow")
		prev = raw
	}
	assert.Equal(t, int64(10), seq.Latest(db))
	assert.Equal(t, int64(11), seq.NextInt(db))

	// A sequence with another name is independent.
	other := b.Sequence("other")
	assert.Equal(t, int64(1), other.NextInt(db))
}

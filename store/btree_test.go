package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemStoreSetGetDelete(t *testing.T) {
	db := MemStore()

	k, v := []byte("one"), []byte("1")
	assert.Nil(t, db.Get(k))
	assert.False(t, db.Has(k))

	db.Set(k, v)
	assert.Equal(t, v, db.Get(k))
	assert.True(t, db.Has(k))

	db.Delete(k)
	assert.Nil(t, db.Get(k))
	assert.False(t, db.Has(k))
}

func TestCacheWrapWrite(t *testing.T) {
	db := MemStore()
	db.Set([]byte("a"), []byte("1"))

	cache := db.CacheWrap()
	cache.Set([]byte("b"), []byte("2"))
	cache.Delete([]byte("a"))

	// cache sees its own writes, backing store does not
	assert.Nil(t, cache.Get([]byte("a")))
	assert.Equal(t, []byte("2"), cache.Get([]byte("b")))
	assert.Equal(t, []byte("1"), db.Get([]byte("a")))
	assert.Nil(t, db.Get([]byte("b")))

	cache.Write()

	assert.Nil(t, db.Get([]byte("a")))
	assert.Equal(t, []byte("2"), db.Get([]byte("b")))
}

func TestCacheWrapDiscard(t *testing.T) {
	db := MemStore()
	db.Set([]byte("a"), []byte("1"))

	cache := db.CacheWrap()
	cache.Set([]byte("a"), []byte("overwritten"))
	cache.Set([]byte("b"), []byte("2"))
	cache.Discard()

	assert.Equal(t, []byte("1"), db.Get([]byte("a")))
	assert.Nil(t, db.Get([]byte("b")))
}

func TestCacheWrapRecursive(t *testing.T) {
	db := MemStore()

	outer := db.CacheWrap()
	outer.Set([]byte("a"), []byte("1"))

	inner := outer.CacheWrap()
	inner.Set([]byte("b"), []byte("2"))

	// inner reads through to outer
	assert.Equal(t, []byte("1"), inner.Get([]byte("a")))

	inner.Write()
	assert.Equal(t, []byte("2"), outer.Get([]byte("b")))
	assert.Nil(t, db.Get([]byte("b")))

	outer.Write()
	assert.Equal(t, []byte("1"), db.Get([]byte("a")))
	assert.Equal(t, []byte("2"), db.Get([]byte("b")))
}

func TestNilKeyPanics(t *testing.T) {
	db := MemStore()
	assert.Panics(t, func() { db.Set(nil, []byte("x")) })
	assert.Panics(t, func() { db.Get(nil) })
}

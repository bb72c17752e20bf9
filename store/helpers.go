package store

import (
	market "github.com/sc2skins/skinmarket"
)

// memStore is a simple map-backed KVStore. There is no versioning and no
// persistence; the cache-wrap layer on top provides atomic write-back.
type memStore struct {
	data map[string][]byte
}

var _ market.KVStore = (*memStore)(nil)

func (m *memStore) Get(key []byte) []byte {
	assertValidKey(key)
	return m.data[string(key)]
}

func (m *memStore) Has(key []byte) bool {
	assertValidKey(key)
	_, ok := m.data[string(key)]
	return ok
}

func (m *memStore) Set(key, value []byte) {
	assertValidKey(key)
	m.data[string(key)] = value
}

func (m *memStore) Delete(key []byte) {
	assertValidKey(key)
	delete(m.data, string(key))
}

// MemStore returns an empty, cacheable in-memory store. It backs the
// transaction executor in production and is also handy for tests.
func MemStore() market.CacheableKVStore {
	return BTreeCacheable{
		KVStore: &memStore{data: make(map[string][]byte)},
	}
}

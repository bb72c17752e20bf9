package skintest

import (
	"crypto/rand"
	"testing"

	market "github.com/sc2skins/skinmarket"
)

// NewAddress returns a random account address, unique per call.
func NewAddress() market.Address {
	addr := make(market.Address, market.AddressLength)
	if _, err := rand.Read(addr); err != nil {
		panic(err)
	}
	return addr
}

// ParseAddress takes an address in a human readable format and returns its
// binary representation, failing the test on malformed input.
func ParseAddress(t testing.TB, encodedAddress string) market.Address {
	t.Helper()

	addr, err := market.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

package skintest

import (
	market "github.com/sc2skins/skinmarket"
	"github.com/sc2skins/skinmarket/x"
)

// Auth is a mock implementing the x.Authenticator interface.
//
// It authenticates any of the referenced addresses. You can use either
// Caller or Callers (or both); each time all of them are considered.
type Auth struct {
	// Caller represents an authentication of a single caller. This is a
	// convenience attribute when declaring a single identity.
	Caller market.Address

	// Callers represents an authentication of multiple callers.
	Callers []market.Address
}

var _ x.Authenticator = (*Auth)(nil)

func (a *Auth) GetCallers(market.Context) []market.Address {
	// Return a fresh slice so the caller cannot mutate the mock state.
	callers := make([]market.Address, 0, len(a.Callers)+1)
	callers = append(callers, a.Callers...)
	if a.Caller != nil {
		callers = append(callers, a.Caller)
	}
	return callers
}

func (a *Auth) HasAddress(ctx market.Context, addr market.Address) bool {
	for _, c := range a.GetCallers(ctx) {
		if addr.Equals(c) {
			return true
		}
	}
	return false
}

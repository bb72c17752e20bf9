package x

import (
	market "github.com/sc2skins/skinmarket"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of handlers,
// so we can plug in another authentication system, rather than hard-coding
// one for all extensions.
//
// Callers are plain addresses: the embedding process is the authentication
// boundary and declares who is acting before a transaction enters the
// executor.
type Authenticator interface {
	// GetCallers reveals all authenticated callers, you may want the
	// MainCaller helper.
	GetCallers(market.Context) []market.Address

	// HasAddress checks if the given address is among the authenticated
	// callers.
	HasAddress(market.Context, market.Address) bool
}

// MainCaller returns the first caller if any, otherwise nil.
func MainCaller(ctx market.Context, auth Authenticator) market.Address {
	callers := auth.GetCallers(ctx)
	if len(callers) == 0 {
		return nil
	}
	return callers[0]
}

// HasAllAddresses returns true if all elements in required are also in
// context.
func HasAllAddresses(ctx market.Context, auth Authenticator, required []market.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

/*
Package auth provides the production Authenticator: caller addresses are
stored in the request context by the embedding process (the gateway, a test
or a bootstrap script) and read back by the handlers.

There is no signature verification in this ledger. Whatever layer accepts a
request from the outside world is the authentication boundary and is
responsible for calling SetCallers with identities it vouches for.
*/
package auth

import (
	"context"

	market "github.com/sc2skins/skinmarket"
	"github.com/sc2skins/skinmarket/x"
)

type contextKey int

const callersKey contextKey = iota

// SetCallers returns a context with the given addresses declared as the
// authenticated callers. It overwrites any previously declared callers.
func SetCallers(ctx market.Context, addrs ...market.Address) market.Context {
	return context.WithValue(ctx, callersKey, addrs)
}

// Authenticate implements x.Authenticator against the context values
// written by SetCallers.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

func (Authenticate) GetCallers(ctx market.Context) []market.Address {
	val := ctx.Value(callersKey)
	if val == nil {
		return nil
	}
	return val.([]market.Address)
}

func (a Authenticate) HasAddress(ctx market.Context, addr market.Address) bool {
	for _, caller := range a.GetCallers(ctx) {
		if addr.Equals(caller) {
			return true
		}
	}
	return false
}

package skintest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	market "github.com/sc2skins/skinmarket"
)

func TestAuthReturnsAllIdentities(t *testing.T) {
	alice := NewAddress()
	bob := NewAddress()
	carl := NewAddress()

	a := &Auth{Caller: alice, Callers: []market.Address{bob, carl}}
	ctx := context.Background()

	assert.Len(t, a.GetCallers(ctx), 3)
	assert.True(t, a.HasAddress(ctx, alice))
	assert.True(t, a.HasAddress(ctx, bob))
	assert.True(t, a.HasAddress(ctx, carl))
	assert.False(t, a.HasAddress(ctx, NewAddress()))
}

func TestAuthCallersAreNotShared(t *testing.T) {
	alice := NewAddress()
	bob := NewAddress()

	// Spare capacity in the backing array must not let one call leak into
	// the mock or into another call's result.
	callers := make([]market.Address, 1, 2)
	callers[0] = bob
	a := &Auth{Caller: alice, Callers: callers}
	ctx := context.Background()

	got := a.GetCallers(ctx)
	require.Len(t, got, 2)
	got[0] = NewAddress()

	assert.True(t, a.HasAddress(ctx, bob))
	assert.Equal(t, bob, a.Callers[0])
}

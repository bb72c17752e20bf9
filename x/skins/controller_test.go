package skins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sc2skins/skinmarket/errors"
	"github.com/sc2skins/skinmarket/skintest"
	"github.com/sc2skins/skinmarket/store"
)

func TestMintBurnRoundTrip(t *testing.T) {
	alice := skintest.NewAddress()
	db := store.MemStore()
	ctrl := NewController()

	require.NoError(t, ctrl.Mint(db, alice, 1, 10))
	require.NoError(t, ctrl.Mint(db, alice, 1, 5))
	require.NoError(t, ctrl.Mint(db, alice, 2, 3))

	got, err := ctrl.Balance(db, alice, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(15), got)
	got, err = ctrl.Balance(db, alice, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got)

	require.NoError(t, ctrl.Burn(db, alice, 1, 15))
	got, err = ctrl.Balance(db, alice, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)
	got, err = ctrl.Balance(db, alice, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got)
}

func TestBurnMoreThanHeld(t *testing.T) {
	alice := skintest.NewAddress()
	db := store.MemStore()
	ctrl := NewController()

	require.NoError(t, ctrl.Mint(db, alice, 1, 4))
	err := ctrl.Burn(db, alice, 1, 5)
	assert.True(t, errors.ErrInsufficientBalance.Is(err))

	got, err := ctrl.Balance(db, alice, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got)
}

func TestMove(t *testing.T) {
	alice := skintest.NewAddress()
	bob := skintest.NewAddress()
	db := store.MemStore()
	ctrl := NewController()

	require.NoError(t, ctrl.Mint(db, alice, 7, 10))
	require.NoError(t, ctrl.Move(db, alice, bob, 7, 4))

	got, err := ctrl.Balance(db, alice, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(6), got)
	got, err = ctrl.Balance(db, bob, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got)

	err = ctrl.Move(db, alice, bob, 7, 7)
	assert.True(t, errors.ErrInsufficientBalance.Is(err))
	got, err = ctrl.Balance(db, alice, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(6), got)
	got, err = ctrl.Balance(db, bob, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got)
}

func TestMoveToSelf(t *testing.T) {
	alice := skintest.NewAddress()
	db := store.MemStore()
	ctrl := NewController()

	require.NoError(t, ctrl.Mint(db, alice, 7, 10))

	// A transfer to oneself must not change the balance.
	require.NoError(t, ctrl.Move(db, alice, alice, 7, 4))
	got, err := ctrl.Balance(db, alice, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got)

	// But it is still subject to the balance check.
	err = ctrl.Move(db, alice, alice, 7, 11)
	assert.True(t, errors.ErrInsufficientBalance.Is(err))
}

func TestBalanceOfUnknown(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()

	got, err := ctrl.Balance(db, skintest.NewAddress(), 99)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)
}

func TestMintWritesPlaceholderMetadata(t *testing.T) {
	alice := skintest.NewAddress()
	db := store.MemStore()
	ctrl := NewController()

	_, err := ctrl.Metadata(db, 5)
	assert.True(t, errors.ErrNotFound.Is(err))

	require.NoError(t, ctrl.Mint(db, alice, 5, 1))

	info, err := ctrl.Metadata(db, 5)
	require.NoError(t, err)
	assert.Equal(t, "Unnamed Skin", info.Name)

	// A second mint must not reset an existing catalog entry.
	infos := NewInfoBucket()
	require.NoError(t, infos.Save(db, 5, &TokenInfo{Name: "Golden Marine", Rarity: "Rare"}))
	require.NoError(t, ctrl.Mint(db, alice, 5, 1))
	info, err = ctrl.Metadata(db, 5)
	require.NoError(t, err)
	assert.Equal(t, "Golden Marine", info.Name)
}

func TestTokensAdd(t *testing.T) {
	cases := map[string]struct {
		start   Tokens
		add     Token
		want    Tokens
		wantErr *errors.Error
	}{
		"add to empty": {
			add:  NewToken(1, 5),
			want: Tokens{{SkinId: 1, Quantity: 5}},
		},
		"merge same kind": {
			start: Tokens{{SkinId: 1, Quantity: 5}},
			add:   NewToken(1, 3),
			want:  Tokens{{SkinId: 1, Quantity: 8}},
		},
		"insert keeps order": {
			start: Tokens{{SkinId: 2, Quantity: 1}},
			add:   NewToken(1, 1),
			want:  Tokens{{SkinId: 1, Quantity: 1}, {SkinId: 2, Quantity: 1}},
		},
		"drain to zero removes entry": {
			start: Tokens{{SkinId: 1, Quantity: 5}, {SkinId: 2, Quantity: 1}},
			add:   NewToken(1, -5),
			want:  Tokens{{SkinId: 2, Quantity: 1}},
		},
		"drain below zero": {
			start:   Tokens{{SkinId: 1, Quantity: 5}},
			add:     NewToken(1, -6),
			wantErr: errors.ErrInsufficientBalance,
		},
		"subtract unknown kind": {
			start:   Tokens{{SkinId: 1, Quantity: 5}},
			add:     NewToken(2, -1),
			wantErr: errors.ErrInsufficientBalance,
		},
		"zero skin id": {
			add:     NewToken(0, 1),
			wantErr: errors.ErrEmpty,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := tc.start.Add(tc.add)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

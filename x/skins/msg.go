package skins

import (
	market "github.com/sc2skins/skinmarket"
	"github.com/sc2skins/skinmarket/errors"
)

const (
	pathMint        = "skins/mint"
	pathBurn        = "skins/burn"
	pathSetMetadata = "skins/set_metadata"
)

var (
	_ market.Msg = (*MintMsg)(nil)
	_ market.Msg = (*BurnMsg)(nil)
	_ market.Msg = (*SetMetadataMsg)(nil)
)

// MintMsg creates new tokens of one skin kind in the destination wallet.
// Minting a kind that has no catalog entry yet creates a placeholder entry.
type MintMsg struct {
	To     market.Address
	SkinId uint64
	Amount int64
}

func (MintMsg) Path() string {
	return pathMint
}

func (m MintMsg) Validate() error {
	if err := m.To.Validate(); err != nil {
		return errors.Wrap(err, "to")
	}
	if m.SkinId == 0 {
		return errors.Wrap(errors.ErrEmpty, "skin id")
	}
	if m.Amount <= 0 {
		return errors.Wrapf(errors.ErrAmount, "cannot mint %d", m.Amount)
	}
	return nil
}

// BurnMsg destroys tokens of one skin kind from the source wallet.
type BurnMsg struct {
	From   market.Address
	SkinId uint64
	Amount int64
}

func (BurnMsg) Path() string {
	return pathBurn
}

func (m BurnMsg) Validate() error {
	if err := m.From.Validate(); err != nil {
		return errors.Wrap(err, "from")
	}
	if m.SkinId == 0 {
		return errors.Wrap(errors.ErrEmpty, "skin id")
	}
	if m.Amount <= 0 {
		return errors.Wrapf(errors.ErrAmount, "cannot burn %d", m.Amount)
	}
	return nil
}

// SetMetadataMsg writes the catalog entry of a skin kind.
type SetMetadataMsg struct {
	SkinId   uint64
	Name     string
	Rarity   string
	GameUnit string
	ImageUri string
}

func (SetMetadataMsg) Path() string {
	return pathSetMetadata
}

func (m SetMetadataMsg) Validate() error {
	if m.SkinId == 0 {
		return errors.Wrap(errors.ErrEmpty, "skin id")
	}
	info := TokenInfo{
		Name:     m.Name,
		Rarity:   m.Rarity,
		GameUnit: m.GameUnit,
		ImageUri: m.ImageUri,
	}
	return info.Validate()
}

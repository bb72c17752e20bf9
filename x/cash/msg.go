package cash

import (
	market "github.com/sc2skins/skinmarket"
	"github.com/sc2skins/skinmarket/coin"
	"github.com/sc2skins/skinmarket/errors"
)

const pathSend = "cash/send"

var _ market.Msg = (*SendMsg)(nil)

// SendMsg transfers coins between two wallets. The source must be an
// authenticated caller.
type SendMsg struct {
	Src    market.Address
	Dest   market.Address
	Amount coin.Coin
}

func (SendMsg) Path() string {
	return pathSend
}

func (m SendMsg) Validate() error {
	if err := m.Src.Validate(); err != nil {
		return errors.Wrap(err, "src")
	}
	if err := m.Dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}
	if err := m.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !m.Amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "cannot send %s", m.Amount)
	}
	return nil
}

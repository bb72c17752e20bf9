package cash

import (
	market "github.com/sc2skins/skinmarket"
	"github.com/sc2skins/skinmarket/errors"
	"github.com/sc2skins/skinmarket/x"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r market.Registry, auth x.Authenticator) {
	r.Handle(&SendMsg{}, SendHandler{auth: auth, ctrl: NewController()})
}

// SendHandler moves coins between wallets on behalf of the source account.
type SendHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ market.Handler = SendHandler{}

func (h SendHandler) Check(ctx market.Context, db market.KVStore, tx market.Tx) (*market.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &market.CheckResult{}, nil
}

func (h SendHandler) Deliver(ctx market.Context, db market.KVStore, tx market.Tx) (*market.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.MoveCoins(db, msg.Src, msg.Dest, msg.Amount); err != nil {
		return nil, err
	}
	return &market.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx market.Context, db market.KVStore, tx market.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := market.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, msg.Src) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "source not authenticated")
	}
	return &msg, nil
}

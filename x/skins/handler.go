package skins

import (
	market "github.com/sc2skins/skinmarket"
	"github.com/sc2skins/skinmarket/errors"
	"github.com/sc2skins/skinmarket/x"
	"github.com/sc2skins/skinmarket/x/roles"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r market.Registry, auth x.Authenticator) {
	guard := roles.NewGuard()
	ctrl := NewController()
	r.Handle(&MintMsg{}, MintHandler{auth: auth, guard: guard, ctrl: ctrl})
	r.Handle(&BurnMsg{}, BurnHandler{auth: auth, guard: guard, ctrl: ctrl})
	r.Handle(&SetMetadataMsg{}, SetMetadataHandler{auth: auth, guard: guard, infos: NewInfoBucket()})
}

// MintHandler creates tokens. The caller must hold the minter role; the
// role is checked fresh on every call so a revocation applies immediately.
type MintHandler struct {
	auth  x.Authenticator
	guard roles.Guard
	ctrl  Controller
}

var _ market.Handler = MintHandler{}

func (h MintHandler) Check(ctx market.Context, db market.KVStore, tx market.Tx) (*market.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &market.CheckResult{}, nil
}

func (h MintHandler) Deliver(ctx market.Context, db market.KVStore, tx market.Tx) (*market.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Mint(db, msg.To, msg.SkinId, msg.Amount); err != nil {
		return nil, err
	}
	return &market.DeliverResult{Data: SkinKey(msg.SkinId)}, nil
}

func (h MintHandler) validate(ctx market.Context, db market.KVStore, tx market.Tx) (*MintMsg, error) {
	var msg MintMsg
	if err := market.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if _, err := h.guard.CallerWithRole(ctx, h.auth, db, roles.RoleMinter); err != nil {
		return nil, err
	}
	return &msg, nil
}

// BurnHandler destroys tokens. The caller must hold the burner role.
type BurnHandler struct {
	auth  x.Authenticator
	guard roles.Guard
	ctrl  Controller
}

var _ market.Handler = BurnHandler{}

func (h BurnHandler) Check(ctx market.Context, db market.KVStore, tx market.Tx) (*market.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &market.CheckResult{}, nil
}

func (h BurnHandler) Deliver(ctx market.Context, db market.KVStore, tx market.Tx) (*market.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Burn(db, msg.From, msg.SkinId, msg.Amount); err != nil {
		return nil, err
	}
	return &market.DeliverResult{Data: SkinKey(msg.SkinId)}, nil
}

func (h BurnHandler) validate(ctx market.Context, db market.KVStore, tx market.Tx) (*BurnMsg, error) {
	var msg BurnMsg
	if err := market.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if _, err := h.guard.CallerWithRole(ctx, h.auth, db, roles.RoleBurner); err != nil {
		return nil, err
	}
	return &msg, nil
}

// SetMetadataHandler writes a catalog entry. Only an admin may write, and
// only an admin may overwrite an existing entry. An overwrite is an
// explicit correction and is noted in the result log.
type SetMetadataHandler struct {
	auth  x.Authenticator
	guard roles.Guard
	infos InfoBucket
}

var _ market.Handler = SetMetadataHandler{}

func (h SetMetadataHandler) Check(ctx market.Context, db market.KVStore, tx market.Tx) (*market.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &market.CheckResult{}, nil
}

func (h SetMetadataHandler) Deliver(ctx market.Context, db market.KVStore, tx market.Tx) (*market.DeliverResult, error) {
	msg, existing, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	info := &TokenInfo{
		Name:     msg.Name,
		Rarity:   msg.Rarity,
		GameUnit: msg.GameUnit,
		ImageUri: msg.ImageUri,
	}
	if err := h.infos.Save(db, msg.SkinId, info); err != nil {
		return nil, errors.Wrap(err, "cannot save catalog entry")
	}

	res := market.DeliverResult{Data: SkinKey(msg.SkinId)}
	if existing != nil {
		res.Log = "metadata overwritten"
	}
	return &res, nil
}

func (h SetMetadataHandler) validate(ctx market.Context, db market.KVStore, tx market.Tx) (*SetMetadataMsg, *TokenInfo, error) {
	var msg SetMetadataMsg
	if err := market.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}

	existing, err := h.infos.GetInfo(db, msg.SkinId)
	if err != nil {
		return nil, nil, errors.Wrap(err, "cannot load catalog")
	}

	if _, err := h.guard.CallerWithRole(ctx, h.auth, db, roles.RoleAdmin); err != nil {
		if existing != nil {
			return nil, nil, errors.Wrapf(errors.ErrImmutable, "skin %d metadata", msg.SkinId)
		}
		return nil, nil, err
	}
	return &msg, existing, nil
}

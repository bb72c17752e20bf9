package roles

import (
	market "github.com/sc2skins/skinmarket"
	"github.com/sc2skins/skinmarket/errors"
	"github.com/sc2skins/skinmarket/x"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r market.Registry, auth x.Authenticator) {
	bucket := NewBucket()
	guard := NewGuard()
	r.Handle(&GrantRoleMsg{}, GrantRoleHandler{auth: auth, guard: guard, bucket: bucket})
	r.Handle(&RevokeRoleMsg{}, RevokeRoleHandler{auth: auth, guard: guard, bucket: bucket})
}

// GrantRoleHandler adds a role to an account. Only an admin may do that.
type GrantRoleHandler struct {
	auth   x.Authenticator
	guard  Guard
	bucket Bucket
}

var _ market.Handler = GrantRoleHandler{}

func (h GrantRoleHandler) Check(ctx market.Context, db market.KVStore, tx market.Tx) (*market.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &market.CheckResult{}, nil
}

func (h GrantRoleHandler) Deliver(ctx market.Context, db market.KVStore, tx market.Tx) (*market.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	u, err := h.bucket.GetUserRoles(db, msg.Address)
	if err != nil {
		return nil, err
	}
	u.Grant(msg.Role)
	if err := h.bucket.Save(db, msg.Address, u); err != nil {
		return nil, errors.Wrap(err, "cannot save roles")
	}
	return &market.DeliverResult{Data: msg.Address}, nil
}

func (h GrantRoleHandler) validate(ctx market.Context, db market.KVStore, tx market.Tx) (*GrantRoleMsg, error) {
	var msg GrantRoleMsg
	if err := market.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if _, err := h.guard.CallerWithRole(ctx, h.auth, db, RoleAdmin); err != nil {
		return nil, err
	}
	return &msg, nil
}

// RevokeRoleHandler removes a role from an account. Only an admin may do
// that.
type RevokeRoleHandler struct {
	auth   x.Authenticator
	guard  Guard
	bucket Bucket
}

var _ market.Handler = RevokeRoleHandler{}

func (h RevokeRoleHandler) Check(ctx market.Context, db market.KVStore, tx market.Tx) (*market.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &market.CheckResult{}, nil
}

func (h RevokeRoleHandler) Deliver(ctx market.Context, db market.KVStore, tx market.Tx) (*market.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	u, err := h.bucket.GetUserRoles(db, msg.Address)
	if err != nil {
		return nil, err
	}
	u.Revoke(msg.Role)
	if err := h.bucket.Save(db, msg.Address, u); err != nil {
		return nil, errors.Wrap(err, "cannot save roles")
	}
	return &market.DeliverResult{Data: msg.Address}, nil
}

func (h RevokeRoleHandler) validate(ctx market.Context, db market.KVStore, tx market.Tx) (*RevokeRoleMsg, error) {
	var msg RevokeRoleMsg
	if err := market.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if _, err := h.guard.CallerWithRole(ctx, h.auth, db, RoleAdmin); err != nil {
		return nil, err
	}
	return &msg, nil
}

package roles

import (
	market "github.com/sc2skins/skinmarket"
	"github.com/sc2skins/skinmarket/errors"
)

const (
	pathGrantRole  = "roles/grant"
	pathRevokeRole = "roles/revoke"
)

var (
	_ market.Msg = (*GrantRoleMsg)(nil)
	_ market.Msg = (*RevokeRoleMsg)(nil)
)

// GrantRoleMsg adds a role to an account. Granting a role the account
// already holds is a noop.
type GrantRoleMsg struct {
	Address market.Address
	Role    Role
}

func (GrantRoleMsg) Path() string {
	return pathGrantRole
}

func (m GrantRoleMsg) Validate() error {
	if err := m.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	if err := m.Role.Validate(); err != nil {
		return errors.Wrap(err, "role")
	}
	return nil
}

// RevokeRoleMsg removes a role from an account. Revoking a role the
// account does not hold is a noop.
type RevokeRoleMsg struct {
	Address market.Address
	Role    Role
}

func (RevokeRoleMsg) Path() string {
	return pathRevokeRole
}

func (m RevokeRoleMsg) Validate() error {
	if err := m.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	if err := m.Role.Validate(); err != nil {
		return errors.Wrap(err, "role")
	}
	return nil
}

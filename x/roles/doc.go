/*
Package roles implements role based access control for the marketplace.

Every account can hold any combination of the minter, burner and admin
roles. Other extensions consult the Guard to gate privileged operations.
Role assignments are managed by admins via GrantRoleMsg and RevokeRoleMsg,
with the first admin appointed in the genesis file.
*/
package roles

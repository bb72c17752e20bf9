/*
Package skins implements the token registry of the marketplace.

Skins are multi-kind fungible tokens: every account holds a wallet with a
quantity per skin kind, and every kind has a catalog entry describing it
(name, rarity, game unit, image URI). Minting and burning are gated by the
minter and burner roles, catalog writes by the admin role. The Controller
exposes balance arithmetic to other extensions, most notably the
marketplace engine which moves skins into and out of escrow.
*/
package skins

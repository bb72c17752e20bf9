/*
Package cash implements the payment ledger of the marketplace.

Every account holds a coin wallet. Coins move between wallets via SendMsg
or, for other extensions, through the Controller. Purchases on the
marketplace settle buyer to seller through MoveCoins. New coins enter the
system only through the genesis.
*/
package cash

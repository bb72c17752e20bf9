package skintest

import (
	market "github.com/sc2skins/skinmarket"
)

// Tx represents a ledger transaction. Transaction represents a single
// message that is to be processed within this transaction.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg market.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ market.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (market.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg represents a ledger message.
type Msg struct {
	// RoutePath is returned by the Path method, consumed by the router.
	RoutePath string
	// Err if set is returned by Validate.
	Err error
}

var _ market.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

package skinmarket

import (
	"reflect"

	"github.com/sc2skins/skinmarket/errors"
)

// Msg is a request to make a single state transition. It is just the
// request, and must be validated by the Handlers. All caller identity
// information is in the wrapping Tx and the Context.
type Msg interface {
	// Validate performs a sanity check on the message content that is
	// possible without access to the ledger state.
	Validate() error

	// Path returns the message path. This is used by the Router to locate
	// the proper Handler. Msg should be created alongside the Handler that
	// corresponds to it.
	//
	// Must be alphanumeric [0-9A-Za-z_\-/]+
	Path() string
}

// Tx represents the data sent from the caller to the ledger. It includes
// the actual message, and may be extended by the embedding process with
// anything needed to pass through middleware.
type Tx interface {
	// GetMsg returns the action we wish to communicate.
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message, or (missing) if no message.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message from the transaction, verifies it and loads
// it into given destination. Destination must be a pointer of the same type
// as the message carried by the transaction.
func LoadMsg(tx Tx, destination Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}

	dstVal := reflect.ValueOf(destination)
	msgVal := reflect.ValueOf(msg)
	if dstVal.Type() != msgVal.Type() {
		return errors.Wrapf(errors.ErrType, "want %T, got %T", destination, msg)
	}
	dstVal.Elem().Set(msgVal.Elem())
	return nil
}

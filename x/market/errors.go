package market

import "github.com/sc2skins/skinmarket/errors"

// Extension specific errors. Codes below 1000 are reserved for the
// framework.
var (
	// ErrListingInactive is returned when operating on a listing that was
	// already purchased or delisted.
	ErrListingInactive = errors.Register(1000, "listing inactive")

	// ErrWrongPayment is returned when the offered payment does not equal
	// the listing price exactly.
	ErrWrongPayment = errors.Register(1001, "wrong payment")

	// ErrAlreadyClosed is returned by the listing store when closing a
	// listing twice. Handlers gate on the active flag first, so hitting
	// this is a programming error surfaced, not a user mistake.
	ErrAlreadyClosed = errors.Register(1002, "listing already closed")
)

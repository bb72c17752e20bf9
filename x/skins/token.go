package skins

import (
	"sort"

	"github.com/sc2skins/skinmarket/errors"
)

// NewToken returns a quantity of one skin kind.
func NewToken(skinID uint64, quantity int64) Token {
	return Token{SkinId: skinID, Quantity: quantity}
}

// Validate ensures the token references a real skin kind.
func (t Token) Validate() error {
	if t.SkinId == 0 {
		return errors.Wrap(errors.ErrEmpty, "skin id")
	}
	return nil
}

// IsPositive returns true if the quantity is greater than zero.
func (t Token) IsPositive() bool {
	return t.Quantity > 0
}

// Tokens is a set of token quantities, one entry per skin kind, sorted by
// skin id and holding only positive quantities when persisted.
type Tokens []*Token

// Clone returns a deep copy.
func (ts Tokens) Clone() Tokens {
	if ts == nil {
		return nil
	}
	out := make(Tokens, len(ts))
	for i, t := range ts {
		cpy := *t
		out[i] = &cpy
	}
	return out
}

// Validate requires that all tokens are valid, positive and sorted by skin
// id without duplicates.
func (ts Tokens) Validate() error {
	var last uint64
	for _, t := range ts {
		if t == nil {
			return errors.Wrap(errors.ErrEmpty, "nil token")
		}
		if err := t.Validate(); err != nil {
			return err
		}
		if !t.IsPositive() {
			return errors.Wrapf(errors.ErrAmount, "non-positive quantity of skin %d", t.SkinId)
		}
		if t.SkinId <= last {
			return errors.Wrapf(errors.ErrState, "skin ids out of order: %d", t.SkinId)
		}
		last = t.SkinId
	}
	return nil
}

// Quantity returns the quantity held of the given skin kind, zero for
// unknown kinds.
func (ts Tokens) Quantity(skinID uint64) int64 {
	for _, t := range ts {
		if t.SkinId == skinID {
			return t.Quantity
		}
	}
	return 0
}

// Add returns a new set with the given token merged in. A negative
// quantity subtracts; draining a kind below zero returns
// ErrInsufficientBalance, draining it to exactly zero removes the entry.
func (ts Tokens) Add(t Token) (Tokens, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if t.Quantity == 0 {
		return ts.Clone(), nil
	}

	out := ts.Clone()
	for i, have := range out {
		if have.SkinId == t.SkinId {
			sum := have.Quantity + t.Quantity
			switch {
			case t.Quantity > 0 && sum < have.Quantity:
				return nil, errors.Wrapf(errors.ErrOverflow, "skin %d", t.SkinId)
			case sum < 0:
				return nil, errors.Wrapf(errors.ErrInsufficientBalance, "%d of skin %d", have.Quantity, have.SkinId)
			case sum == 0:
				return append(out[:i], out[i+1:]...), nil
			default:
				out[i] = &Token{SkinId: t.SkinId, Quantity: sum}
				return out, nil
			}
		}
	}

	if t.Quantity < 0 {
		return nil, errors.Wrapf(errors.ErrInsufficientBalance, "no skin %d in the wallet", t.SkinId)
	}
	out = append(out, &t)
	sort.Slice(out, func(i, j int) bool {
		return out[i].SkinId < out[j].SkinId
	})
	return out, nil
}

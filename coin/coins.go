package coin

import (
	"sort"

	"github.com/sc2skins/skinmarket/errors"
)

// Coins is a set of coins, one per ticker, sorted by ticker and holding
// only positive amounts when persisted.
type Coins []*Coin

// Clone returns a deep copy.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	out := make(Coins, len(cs))
	for i, c := range cs {
		out[i] = c.Clone()
	}
	return out
}

// Validate requires that all coins are valid, positive and sorted by
// ticker without duplicates.
func (cs Coins) Validate() error {
	last := ""
	for _, c := range cs {
		if c == nil {
			return errors.Wrap(errors.ErrEmpty, "nil coin")
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if !c.IsPositive() {
			return errors.Wrapf(errors.ErrAmount, "non-positive: %s", c)
		}
		if c.Ticker <= last {
			return errors.Wrapf(errors.ErrState, "tickers out of order: %s", c.Ticker)
		}
		last = c.Ticker
	}
	return nil
}

// Amount returns the amount held for the given ticker, zero for unknown
// tickers.
func (cs Coins) Amount(ticker string) int64 {
	for _, c := range cs {
		if c.Ticker == ticker {
			return c.Amount
		}
	}
	return 0
}

// Contains returns true if the set holds at least the given (positive)
// amount.
func (cs Coins) Contains(c Coin) bool {
	if !c.IsPositive() {
		return false
	}
	return cs.Amount(c.Ticker) >= c.Amount
}

// Equals returns true if both sets hold the same amounts.
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(*o[i]) {
			return false
		}
	}
	return true
}

// Add returns a new set with the given coin merged in. A negative coin
// subtracts; draining a ticker below zero returns ErrInsufficientBalance,
// draining it to exactly zero removes the entry.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs.Clone(), nil
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	out := cs.Clone()
	for i, have := range out {
		if have.Ticker == c.Ticker {
			sum, err := have.Add(c)
			if err != nil {
				return nil, err
			}
			switch {
			case sum.Amount < 0:
				return nil, errors.Wrapf(errors.ErrInsufficientBalance, "%s", have)
			case sum.Amount == 0:
				return append(out[:i], out[i+1:]...), nil
			default:
				out[i] = &sum
				return out, nil
			}
		}
	}

	if c.Amount < 0 {
		return nil, errors.Wrapf(errors.ErrInsufficientBalance, "no %s in the wallet", c.Ticker)
	}
	out = append(out, &c)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Ticker < out[j].Ticker
	})
	return out, nil
}

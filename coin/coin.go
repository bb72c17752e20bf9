package coin

import (
	"fmt"
	"math"
	"regexp"

	"github.com/sc2skins/skinmarket/errors"
)

// IsCC determines if a string is a valid currency code, 3-4 upper-case
// letters.
var IsCC = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

// NewCoin creates a new coin object.
func NewCoin(amount int64, ticker string) Coin {
	return Coin{
		Amount: amount,
		Ticker: ticker,
	}
}

// NewCoinp returns a pointer to a new coin.
func NewCoinp(amount int64, ticker string) *Coin {
	c := NewCoin(amount, ticker)
	return &c
}

// Validate ensures the coin has a proper ticker. The amount carries no
// constraint here; wallets enforce non-negative amounts on persist.
func (c Coin) Validate() error {
	if !IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrInput, "invalid currency: %s", c.Ticker)
	}
	return nil
}

// SameType returns true if both coins use the same ticker.
func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// Equals returns true if both coins are identical.
func (c Coin) Equals(o Coin) bool {
	return c.Ticker == o.Ticker && c.Amount == o.Amount
}

// IsZero returns true for a zero amount.
func (c Coin) IsZero() bool {
	return c.Amount == 0
}

// IsPositive returns true if the amount is greater than zero.
func (c Coin) IsPositive() bool {
	return c.Amount > 0
}

// IsNonNegative returns true if the amount is zero or greater.
func (c Coin) IsNonNegative() bool {
	return c.Amount >= 0
}

// Negative returns the opposite coin: (c).Add(c.Negative()) == zero.
func (c Coin) Negative() Coin {
	return Coin{
		Ticker: c.Ticker,
		Amount: -c.Amount,
	}
}

// Clone provides an independent copy of a coin pointer.
func (c *Coin) Clone() *Coin {
	if c == nil {
		return nil
	}
	return &Coin{
		Ticker: c.Ticker,
		Amount: c.Amount,
	}
}

// Add combines two coins of the same currency. It returns an error on a
// ticker mismatch or an int64 overflow.
func (c Coin) Add(o Coin) (Coin, error) {
	// If any of the coins is zero, the ticker does not matter.
	if c.IsZero() && !IsCC(c.Ticker) {
		c.Ticker = o.Ticker
	}
	if o.IsZero() && !IsCC(o.Ticker) {
		o.Ticker = c.Ticker
	}
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrInput, "adding %s to %s", o.Ticker, c.Ticker)
	}
	if wouldOverflow(c.Amount, o.Amount) {
		return Coin{}, errors.Wrap(errors.ErrOverflow, "amount")
	}
	c.Amount += o.Amount
	return c, nil
}

// Subtract removes the given amount: c.Subtract(o) == c.Add(o.Negative()).
func (c Coin) Subtract(o Coin) (Coin, error) {
	return c.Add(o.Negative())
}

func wouldOverflow(a, b int64) bool {
	if b > 0 {
		return a > math.MaxInt64-b
	}
	return a < math.MinInt64-b
}

func (c Coin) String() string {
	return fmt.Sprintf("%d %s", c.Amount, c.Ticker)
}

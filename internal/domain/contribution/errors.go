package contribution

import "errors"

// ErrInvalidAmount indicates a zero or negative contribution amount.
var ErrInvalidAmount = errors.New("contribution amount must be positive")

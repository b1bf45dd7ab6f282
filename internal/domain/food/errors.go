package food

import "errors"

// Domain-level sentinel errors.
var (
	ErrItemNotFound      = errors.New("food item not found")
	ErrCanonicalNotFound = errors.New("canonical ingredient not found")
)

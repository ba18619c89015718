package app

import "errors"

var (
	// ErrProductNotFound indicates a cart add for an id missing from the
	// current search results.
	ErrProductNotFound = errors.New("product not in current search results")
	// ErrIndexOutOfRange indicates a cart removal past either end of the cart.
	ErrIndexOutOfRange = errors.New("cart index out of range")
	// ErrMissingQRURL indicates a payment response without a qrUrl.
	ErrMissingQRURL = errors.New("payment response has no qrUrl")
)

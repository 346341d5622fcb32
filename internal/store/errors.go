// Package store implements the cart and favorites state owned by a
// shopper's session: entry lists keyed by derived identity strings,
// paise-exact totals, and best-effort persistence to a durable slot.
// Stores are not safe for concurrent use; the HTTP layer gives each
// request its own instance loaded from the session's slot.
package store

import "errors"

// ErrDuplicateEntry is returned by AddNumber/AddPackSelection when an
// entry with the same cart key is already present. The cart is left
// unchanged; handlers should translate this into an HTTP 409 response.
var ErrDuplicateEntry = errors.New("entry already in cart")

// ErrEmptySelection is returned when a pack is added but none of the
// selected members is still available for purchase. Nothing is added;
// handlers should translate this into an HTTP 400 response.
var ErrEmptySelection = errors.New("no selectable numbers in selection")

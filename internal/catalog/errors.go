package catalog

import "errors"

// ErrProductNotFound is returned when no product matches the given id.
var ErrProductNotFound = errors.New("product not found")

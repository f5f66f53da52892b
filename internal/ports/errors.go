package ports

import "errors"

// ErrNotFound is returned by providers when a lookup succeeds but yields no result
// (no geocode match, no drivable route).
var ErrNotFound = errors.New("not found")

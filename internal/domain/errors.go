package domain

import "errors"

// ErrInvalidInput marks requests the planner refuses to compute
// (missing route, non-positive distance, short polyline, bad vehicle profile).
var ErrInvalidInput = errors.New("invalid input")

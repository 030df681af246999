package search

import "errors"

// ErrInvalidInput is returned for a malformed corpus or an out-of-range
// query index. Callers should match it with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

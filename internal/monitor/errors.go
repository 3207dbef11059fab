package monitor

import "errors"

var (
	ErrEmptyAccumulator = errors.New("accumulator has no rows to save")
	ErrNoColumns        = errors.New("accumulator requires a column list")
)

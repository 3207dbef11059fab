package advantage

import "errors"

var (
	ErrNoInput             = errors.New("no standard advantage sources provided")
	ErrFileNotFound        = errors.New("input file not found")
	ErrEmptyFile           = errors.New("input file has no data rows")
	ErrInsufficientColumns = errors.New("input file has too few columns")
	ErrEmptyRequiredField  = errors.New("required column has empty cells")
	ErrInvalidNumber       = errors.New("column contains a non-numeric value")
	ErrInvalidInteger      = errors.New("column contains a non-integer value")
)

package table

import "errors"

var (
	ErrTableNotFound = errors.New("table_not_found")
	ErrNotSeated     = errors.New("not_seated")
)

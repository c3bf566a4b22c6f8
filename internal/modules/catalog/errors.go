package catalog

import "errors"

var (
	ErrDuplicateCode  = errors.New("discount code already exists")
	ErrLimitBelowUsed = errors.New("usage limit is below the used count")
)

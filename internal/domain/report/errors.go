package report

import "errors"

var (
	ErrRangeRequired = errors.New("both from and to dates are required")
)

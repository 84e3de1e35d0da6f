package vertical

import "errors"

var (
	ErrVerticalNotFound   = errors.New("vertical not found")
	ErrVerticalStillInUse = errors.New("vertical is still in use")
)

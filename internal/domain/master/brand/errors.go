package brand

import "errors"

var (
	ErrBrandNotFound   = errors.New("brand not found")
	ErrBrandStillInUse = errors.New("brand is still in use")
)

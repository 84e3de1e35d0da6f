package outlet

import "errors"

var (
	ErrOutletNotFound   = errors.New("outlet not found")
	ErrOutletStillInUse = errors.New("outlet is still in use")
)

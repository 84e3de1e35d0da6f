package unit

import "errors"

var (
	ErrUnitNotFound   = errors.New("unit not found")
	ErrUnitStillInUse = errors.New("unit is still in use")
)

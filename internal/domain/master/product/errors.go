package product

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrProductStillInUse = errors.New("product is still in use")
)

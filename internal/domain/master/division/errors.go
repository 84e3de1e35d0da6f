package division

import "errors"

var (
	ErrDivisionNotFound   = errors.New("division not found")
	ErrAbbreviationExists = errors.New("division abbreviation already exists")
	ErrDivisionStillInUse = errors.New("division is still in use")
)

package menu

import "errors"

// Construction errors. Builders wrap these with context; match with errors.Is.
var (
	ErrInvalidSize     = errors.New("invalid grid size")
	ErrInvalidSlot     = errors.New("invalid slot")
	ErrInvalidRow      = errors.New("invalid row")
	ErrDuplicateBorder = errors.New("duplicate border")
	ErrNoSuchBorder    = errors.New("no such border")
	ErrInvalidRange    = errors.New("invalid range")
	ErrNoSearchBox     = errors.New("no search box")
	ErrDuplicateMenu   = errors.New("duplicate menu")
)

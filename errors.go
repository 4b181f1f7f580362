package html2md

import "errors"

// Sentinel errors returned by library operations. Callers match them
// with errors.Is; wrapped messages add the failing detail.
var (
	ErrEmptyInput = errors.New("input markup cannot be empty")
	ErrParse      = errors.New("parsing markup failed")
	ErrRender     = errors.New("rendering document failed")
	ErrReparse    = errors.New("reparsing raw markup failed")
	ErrNoParser   = errors.New("no fragment parser configured")
	ErrDecode     = errors.New("decoding document tree failed")
	ErrEncode     = errors.New("encoding document tree failed")

	ErrInvalidWorkers      = errors.New("worker count must be at least 1")
	ErrInvalidSplitPattern = errors.New("invalid split pattern")
)

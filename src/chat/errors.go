package chat

import "errors"

// Sentinel errors shared by the REST controller and the WebSocket client so
// both surfaces map them to the same status taxonomy.
var (
	ErrValidation = errors.New("invalid request")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

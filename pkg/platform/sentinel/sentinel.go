package sentinel

import "errors"

// Sentinel errors for storage facts. Stores return these (optionally wrapped)
// so services can translate them into domain errors with a caller-facing message.
//
//   - ErrNotFound: row does not exist
//   - ErrConflict: a uniqueness constraint rejected the write
//   - ErrInvalidState: a referential constraint rejected the write (for
//     example deleting a category that still has children)
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
)

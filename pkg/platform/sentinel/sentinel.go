package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) and services translate them into domain errors:
//   - ErrNotFound: entity does not exist in the store
//   - ErrAlreadyUsed: unique identifier already taken
//   - ErrInUse: entity is still referenced and cannot be removed or edited
//   - ErrUnavailable: backing resource temporarily unavailable
//
// Input validation failures belong in pkg/domain-errors.
var (
	ErrNotFound    = errors.New("not found")
	ErrAlreadyUsed = errors.New("already used")
	ErrInUse       = errors.New("in use")
	ErrUnavailable = errors.New("unavailable")
)

package skillgraph

import (
	"errors"
	"fmt"
)

var (
	ErrSkillNotFound     = errors.New("skill not found")
	ErrEntityNotFound    = errors.New("entity not found")
	ErrInvalidSourceType = errors.New("invalid source type")
)

// ConflictError blocks a mutation and carries the references the caller
// needs to render: the active entities blocking a delete, or the pair
// already linked on an explicit link.
type ConflictError struct {
	Message    string
	References []EntityRef
}

func (e *ConflictError) Error() string {
	if e == nil {
		return ""
	}
	if len(e.References) > 0 {
		return fmt.Sprintf("%s (%d references)", e.Message, len(e.References))
	}
	return e.Message
}

// IsConflict reports whether err is a ConflictError and returns it.
func IsConflict(err error) (*ConflictError, bool) {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return conflict, true
	}
	return nil, false
}

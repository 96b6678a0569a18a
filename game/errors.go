package game

import (
	"errors"
	"fmt"
)

// ErrPreconditionViolation is wrapped by every error caused by calling an
// operation in a state it does not accept.
var ErrPreconditionViolation = errors.New("precondition violation")

var ErrGameNotOver = fmt.Errorf("%w: game is not over", ErrPreconditionViolation)

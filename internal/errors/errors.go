// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
)

// ErrNotFound covers both a missing row and a row outside the actor's
// visible scope. Callers cannot tell the two apart.
type ErrNotFound struct {
	Entity string
	ID     int
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Entity, e.ID)
}

func NewMailingNotFound(id int) error   { return &ErrNotFound{Entity: "mailing", ID: id} }
func NewRecipientNotFound(id int) error { return &ErrNotFound{Entity: "recipient", ID: id} }
func NewMessageNotFound(id int) error   { return &ErrNotFound{Entity: "message", ID: id} }
func NewUserNotFound(id int) error      { return &ErrNotFound{Entity: "user", ID: id} }

type ErrAccessDenied struct {
	Op string
}

func (e *ErrAccessDenied) Error() string {
	return fmt.Sprintf("access denied: %s", e.Op)
}

func NewAccessDenied(op string) error { return &ErrAccessDenied{Op: op} }

type ErrValidation struct {
	Reason string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

func NewValidation(reason string) error { return &ErrValidation{Reason: reason} }

func IsNotFound(err error) bool {
	var nf *ErrNotFound
	return errors.As(err, &nf)
}

func IsAccessDenied(err error) bool {
	var ad *ErrAccessDenied
	return errors.As(err, &ad)
}

func IsValidation(err error) bool {
	var v *ErrValidation
	return errors.As(err, &v)
}

// internal/model/mailing.go
package model

import "time"

type MailingStatus string

const (
	StatusCreated  MailingStatus = "created"
	StatusRunning  MailingStatus = "running"
	StatusFinished MailingStatus = "finished"
)

// Mailing binds one message to a recipient set and a send window
// [StartAt, EndAt] (inclusive on both ends). Status is not stored:
// it is derived from the window and the current time on every read.
type Mailing struct {
	ID        int           `db:"id" json:"id"`
	StartAt   time.Time     `db:"start_at" json:"start_at"`
	EndAt     time.Time     `db:"end_at" json:"end_at"`
	Active    bool          `db:"active" json:"active"`
	MessageID int           `db:"message_id" json:"message_id"`
	OwnerID   int           `db:"owner_id" json:"owner_id"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	Status    MailingStatus `db:"-" json:"status"`
}

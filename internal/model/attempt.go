// internal/model/attempt.go
package model

import "time"

type AttemptStatus string

const (
	AttemptSuccess AttemptStatus = "success"
	AttemptFailure AttemptStatus = "failure"
)

// Attempt is one immutable audit record of a single delivery try to a
// single recipient. Rows are append-only: a new send pass over the same
// mailing writes a fresh batch instead of touching earlier attempts.
type Attempt struct {
	ID             int           `db:"id" json:"id"`
	MailingID      int           `db:"mailing_id" json:"mailing_id"`
	RecipientID    int           `db:"recipient_id" json:"recipient_id"`
	AttemptedAt    time.Time     `db:"attempted_at" json:"attempted_at"`
	Status         AttemptStatus `db:"status" json:"status"`
	ServerResponse string        `db:"server_response" json:"server_response"`
}

// internal/mailer/mailer.go
package mailer

// Sender is the adapter interface for the external mail-sending
// collaborator. The delivery engine treats it as an opaque, possibly
// failing remote call: one call per (mailing, recipient) per pass, no
// retry, no batching.
type Sender interface {
	Send(subject, body, from, to string) error
}

// SenderFunc adapts a plain function to the Sender interface.
type SenderFunc func(subject, body, from, to string) error

func (f SenderFunc) Send(subject, body, from, to string) error {
	return f(subject, body, from, to)
}

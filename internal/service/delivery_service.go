// internal/service/delivery_service.go
package service

import (
	"fmt"
	"log"
	"time"

	"github.com/mailsched/mailsched-backend/internal/mailer"
	"github.com/mailsched/mailsched-backend/internal/model"
	"github.com/mailsched/mailsched-backend/internal/repository"
)

const responseOK = "OK"
const responseOutsideWindow = "outside time window"

type OutcomeKind string

const (
	OutcomeDisabled    OutcomeKind = "disabled"
	OutcomeOutOfWindow OutcomeKind = "out_of_window"
	OutcomeCompleted   OutcomeKind = "completed"
)

// DeliveryOutcome is the aggregate result of one send pass.
type DeliveryOutcome struct {
	MailingID int                 `json:"mailing_id"`
	Kind      OutcomeKind         `json:"outcome"`
	Status    model.MailingStatus `json:"status"`
	Sent      int                 `json:"sent"`
	Failed    int                 `json:"failed"`
}

// DeliveryService runs send passes over mailings. Callers must not run
// two passes over the same mailing concurrently; both the HTTP trigger
// and the sweeper process mailings sequentially.
type DeliveryService struct {
	RecipientRepo repository.RecipientRepositoryInterface
	MessageRepo   repository.MessageRepositoryInterface
	AttemptRepo   repository.AttemptRepositoryInterface
	Sender        mailer.Sender
	FromAddress   string
}

// RunMailing executes one send pass over the mailing at instant now.
// Gates, in order: the active kill-switch (no attempts written), then
// the time window (one failure attempt per recipient when outside).
// Inside the window every recipient gets exactly one send call and one
// attempt; a failing recipient never aborts the rest of the pass.
// Re-running appends a fresh, independent batch of attempts.
func (s *DeliveryService) RunMailing(mailing *model.Mailing, now time.Time) (*DeliveryOutcome, error) {
	outcome := &DeliveryOutcome{
		MailingID: mailing.ID,
		Status:    ComputeStatus(mailing.StartAt, mailing.EndAt, now),
	}

	if !mailing.Active {
		outcome.Kind = OutcomeDisabled
		log.Printf("mailing %d is disabled, nothing sent", mailing.ID)
		return outcome, nil
	}

	recipients, err := s.RecipientRepo.ListByMailing(mailing.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipients for mailing %d: %w", mailing.ID, err)
	}

	if !InWindow(mailing.StartAt, mailing.EndAt, now) {
		outcome.Kind = OutcomeOutOfWindow
		for _, rec := range recipients {
			s.record(mailing.ID, rec.ID, now, model.AttemptFailure, responseOutsideWindow)
			outcome.Failed++
		}
		log.Printf("mailing %d outside its window, recorded %d skip attempts", mailing.ID, outcome.Failed)
		return outcome, nil
	}

	message, err := s.MessageRepo.GetByID(mailing.MessageID)
	if err != nil {
		return nil, fmt.Errorf("failed to load message for mailing %d: %w", mailing.ID, err)
	}

	outcome.Kind = OutcomeCompleted
	for _, rec := range recipients {
		if err := s.Sender.Send(message.Subject, message.Body, s.FromAddress, rec.Email); err != nil {
			// failure detail is preserved verbatim for the audit trail
			s.record(mailing.ID, rec.ID, now, model.AttemptFailure, err.Error())
			outcome.Failed++
			log.Printf("delivery failed for %s (mailing %d): %v", rec.Email, mailing.ID, err)
			continue
		}
		s.record(mailing.ID, rec.ID, now, model.AttemptSuccess, responseOK)
		outcome.Sent++
	}

	log.Printf("mailing %d pass done: %d sent, %d failed", mailing.ID, outcome.Sent, outcome.Failed)
	return outcome, nil
}

// record appends one attempt. A ledger write failure is logged but does
// not abort the pass; the remaining recipients still get their sends.
func (s *DeliveryService) record(mailingID, recipientID int, now time.Time, status model.AttemptStatus, response string) {
	attempt := &model.Attempt{
		MailingID:      mailingID,
		RecipientID:    recipientID,
		AttemptedAt:    now,
		Status:         status,
		ServerResponse: response,
	}
	if err := s.AttemptRepo.Create(attempt); err != nil {
		log.Printf("⚠️ failed to record attempt for mailing %d recipient %d: %v", mailingID, recipientID, err)
	}
}

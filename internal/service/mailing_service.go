// internal/service/mailing_service.go
package service

import (
	"time"

	"github.com/mailsched/mailsched-backend/internal/access"
	appErrors "github.com/mailsched/mailsched-backend/internal/errors"
	"github.com/mailsched/mailsched-backend/internal/model"
	"github.com/mailsched/mailsched-backend/internal/repository"
)

type MailingInput struct {
	StartAt      time.Time `json:"start_at"`
	EndAt        time.Time `json:"end_at"`
	MessageID    int       `json:"message_id"`
	RecipientIDs []int     `json:"recipient_ids"`
}

// MailingDetails is the read form of a mailing: derived status plus the
// bound message and attempt stats.
type MailingDetails struct {
	model.Mailing
	Message *model.Message `json:"message"`
	Stats   map[string]int `json:"stats"`
}

// RecipientDeliveryStatus is one row of the per-recipient stats view.
// LastAttempt is nil when no attempt has been made yet.
type RecipientDeliveryStatus struct {
	Recipient   model.Recipient `json:"recipient"`
	LastAttempt *model.Attempt  `json:"last_attempt,omitempty"`
}

type MailingService struct {
	MailingRepo   repository.MailingRepositoryInterface
	RecipientRepo repository.RecipientRepositoryInterface
	MessageRepo   repository.MessageRepositoryInterface
	AttemptRepo   repository.AttemptRepositoryInterface
	Delivery      *DeliveryService
	Now           func() time.Time
}

func (s *MailingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *MailingService) validate(actor access.Actor, input MailingInput) error {
	if input.EndAt.Before(input.StartAt) {
		return appErrors.NewValidation("end_at must not be before start_at")
	}

	message, err := s.MessageRepo.GetByID(input.MessageID)
	if err != nil {
		return err
	}
	if message.OwnerID != actor.UserID {
		return appErrors.NewMessageNotFound(input.MessageID)
	}

	if len(input.RecipientIDs) > 0 {
		owned, err := s.RecipientRepo.CountOwned(actor.UserID, input.RecipientIDs)
		if err != nil {
			return err
		}
		if owned != len(input.RecipientIDs) {
			return appErrors.NewValidation("recipient set contains recipients that do not exist or are not yours")
		}
	}
	return nil
}

func (s *MailingService) Create(actor access.Actor, input MailingInput) (*model.Mailing, error) {
	if actor.IsManager() {
		return nil, appErrors.NewAccessDenied("managers cannot create mailings")
	}
	if err := s.validate(actor, input); err != nil {
		return nil, err
	}

	m := &model.Mailing{
		StartAt:   input.StartAt,
		EndAt:     input.EndAt,
		Active:    true,
		MessageID: input.MessageID,
		OwnerID:   actor.UserID,
	}
	if err := s.MailingRepo.Create(m, input.RecipientIDs); err != nil {
		return nil, err
	}

	m.Status = ComputeStatus(m.StartAt, m.EndAt, s.now())
	return m, nil
}

// getVisible loads the mailing and applies visibility: rows the actor
// may not see surface as not-found.
func (s *MailingService) getVisible(actor access.Actor, id int) (*model.Mailing, error) {
	m, err := s.MailingRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !access.CanView(actor, m.OwnerID) {
		return nil, appErrors.NewMailingNotFound(id)
	}
	return m, nil
}

func (s *MailingService) Get(actor access.Actor, id int) (*MailingDetails, error) {
	m, err := s.getVisible(actor, id)
	if err != nil {
		return nil, err
	}
	m.Status = ComputeStatus(m.StartAt, m.EndAt, s.now())

	message, err := s.MessageRepo.GetByID(m.MessageID)
	if err != nil {
		return nil, err
	}

	stats, err := s.AttemptRepo.CountByMailing(m.ID)
	if err != nil {
		return nil, err
	}

	return &MailingDetails{Mailing: *m, Message: message, Stats: stats}, nil
}

func (s *MailingService) List(actor access.Actor) ([]model.Mailing, error) {
	var mailings []model.Mailing
	var err error
	if actor.IsManager() {
		mailings, err = s.MailingRepo.ListAll()
	} else {
		mailings, err = s.MailingRepo.ListByOwner(actor.UserID)
	}
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range mailings {
		mailings[i].Status = ComputeStatus(mailings[i].StartAt, mailings[i].EndAt, now)
	}
	return mailings, nil
}

func (s *MailingService) Update(actor access.Actor, id int, input MailingInput) (*model.Mailing, error) {
	m, err := s.getVisible(actor, id)
	if err != nil {
		return nil, err
	}
	if !access.CanMutate(actor, m.OwnerID) {
		return nil, appErrors.NewAccessDenied("only the owner may edit a mailing")
	}
	if err := s.validate(actor, input); err != nil {
		return nil, err
	}

	m.StartAt = input.StartAt
	m.EndAt = input.EndAt
	m.MessageID = input.MessageID
	if err := s.MailingRepo.Update(m); err != nil {
		return nil, err
	}
	if err := s.MailingRepo.SetRecipients(m.ID, input.RecipientIDs); err != nil {
		return nil, err
	}

	m.Status = ComputeStatus(m.StartAt, m.EndAt, s.now())
	return m, nil
}

func (s *MailingService) Delete(actor access.Actor, id int) error {
	m, err := s.getVisible(actor, id)
	if err != nil {
		return err
	}
	if !access.CanMutate(actor, m.OwnerID) {
		return appErrors.NewAccessDenied("only the owner may delete a mailing")
	}
	return s.MailingRepo.Delete(id)
}

// SetActive flips the manager kill-switch. Managers only.
func (s *MailingService) SetActive(actor access.Actor, id int, active bool) (*model.Mailing, error) {
	if !access.CanToggleActive(actor) {
		return nil, appErrors.NewAccessDenied("only managers may toggle a mailing's active flag")
	}
	m, err := s.MailingRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.MailingRepo.SetActive(id, active); err != nil {
		return nil, err
	}

	m.Active = active
	m.Status = ComputeStatus(m.StartAt, m.EndAt, s.now())
	return m, nil
}

// TriggerSend runs one send pass on behalf of the mailing's owner.
func (s *MailingService) TriggerSend(actor access.Actor, id int) (*DeliveryOutcome, error) {
	m, err := s.getVisible(actor, id)
	if err != nil {
		return nil, err
	}
	if !access.CanTrigger(actor, m) {
		return nil, appErrors.NewAccessDenied("only the owner may trigger a send")
	}
	return s.Delivery.RunMailing(m, s.now())
}

// RecipientStatuses returns the last known delivery status for every
// recipient currently in the mailing's set.
func (s *MailingService) RecipientStatuses(actor access.Actor, id int) ([]RecipientDeliveryStatus, error) {
	m, err := s.getVisible(actor, id)
	if err != nil {
		return nil, err
	}

	recipients, err := s.RecipientRepo.ListByMailing(m.ID)
	if err != nil {
		return nil, err
	}
	last, err := s.AttemptRepo.LastPerRecipient(m.ID)
	if err != nil {
		return nil, err
	}

	byRecipient := make(map[int]model.Attempt, len(last))
	for _, a := range last {
		byRecipient[a.RecipientID] = a
	}

	statuses := make([]RecipientDeliveryStatus, 0, len(recipients))
	for _, rec := range recipients {
		row := RecipientDeliveryStatus{Recipient: rec}
		if a, ok := byRecipient[rec.ID]; ok {
			attempt := a
			row.LastAttempt = &attempt
		}
		statuses = append(statuses, row)
	}
	return statuses, nil
}

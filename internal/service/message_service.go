// internal/service/message_service.go
package service

import (
	"strings"

	"github.com/mailsched/mailsched-backend/internal/access"
	appErrors "github.com/mailsched/mailsched-backend/internal/errors"
	"github.com/mailsched/mailsched-backend/internal/model"
	"github.com/mailsched/mailsched-backend/internal/repository"
)

type MessageInput struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type MessageService struct {
	MessageRepo repository.MessageRepositoryInterface
}

func (s *MessageService) Create(actor access.Actor, input MessageInput) (*model.Message, error) {
	if actor.IsManager() {
		return nil, appErrors.NewAccessDenied("managers cannot create messages")
	}
	if strings.TrimSpace(input.Subject) == "" {
		return nil, appErrors.NewValidation("subject must not be empty")
	}

	m := &model.Message{
		Subject: input.Subject,
		Body:    input.Body,
		OwnerID: actor.UserID,
	}
	if err := s.MessageRepo.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MessageService) Get(actor access.Actor, id int) (*model.Message, error) {
	m, err := s.MessageRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !access.CanView(actor, m.OwnerID) {
		return nil, appErrors.NewMessageNotFound(id)
	}
	return m, nil
}

func (s *MessageService) List(actor access.Actor) ([]model.Message, error) {
	if actor.IsManager() {
		return s.MessageRepo.ListAll()
	}
	return s.MessageRepo.ListByOwner(actor.UserID)
}

func (s *MessageService) Update(actor access.Actor, id int, input MessageInput) (*model.Message, error) {
	m, err := s.Get(actor, id)
	if err != nil {
		return nil, err
	}
	if !access.CanMutate(actor, m.OwnerID) {
		return nil, appErrors.NewAccessDenied("only the owner may edit a message")
	}
	if strings.TrimSpace(input.Subject) == "" {
		return nil, appErrors.NewValidation("subject must not be empty")
	}

	m.Subject = input.Subject
	m.Body = input.Body
	if err := s.MessageRepo.Update(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MessageService) Delete(actor access.Actor, id int) error {
	m, err := s.Get(actor, id)
	if err != nil {
		return err
	}
	if !access.CanMutate(actor, m.OwnerID) {
		return appErrors.NewAccessDenied("only the owner may delete a message")
	}
	return s.MessageRepo.Delete(id)
}

// internal/service/recipient_service.go
package service

import (
	"strings"

	"github.com/mailsched/mailsched-backend/internal/access"
	appErrors "github.com/mailsched/mailsched-backend/internal/errors"
	"github.com/mailsched/mailsched-backend/internal/model"
	"github.com/mailsched/mailsched-backend/internal/repository"
)

type RecipientInput struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Comment  string `json:"comment"`
}

type RecipientService struct {
	RecipientRepo repository.RecipientRepositoryInterface
}

func (s *RecipientService) Create(actor access.Actor, input RecipientInput) (*model.Recipient, error) {
	if actor.IsManager() {
		return nil, appErrors.NewAccessDenied("managers cannot create recipients")
	}
	if err := validateRecipient(input); err != nil {
		return nil, err
	}

	rec := &model.Recipient{
		Email:    input.Email,
		FullName: input.FullName,
		Comment:  input.Comment,
		OwnerID:  actor.UserID,
	}
	if err := s.RecipientRepo.Create(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *RecipientService) Get(actor access.Actor, id int) (*model.Recipient, error) {
	rec, err := s.RecipientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !access.CanView(actor, rec.OwnerID) {
		return nil, appErrors.NewRecipientNotFound(id)
	}
	return rec, nil
}

func (s *RecipientService) List(actor access.Actor) ([]model.Recipient, error) {
	if actor.IsManager() {
		return s.RecipientRepo.ListAll()
	}
	return s.RecipientRepo.ListByOwner(actor.UserID)
}

func (s *RecipientService) Update(actor access.Actor, id int, input RecipientInput) (*model.Recipient, error) {
	rec, err := s.Get(actor, id)
	if err != nil {
		return nil, err
	}
	if !access.CanMutate(actor, rec.OwnerID) {
		return nil, appErrors.NewAccessDenied("only the owner may edit a recipient")
	}
	if err := validateRecipient(input); err != nil {
		return nil, err
	}

	rec.Email = input.Email
	rec.FullName = input.FullName
	rec.Comment = input.Comment
	if err := s.RecipientRepo.Update(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes the recipient along with its mailing links and its
// attempts (schema cascade).
func (s *RecipientService) Delete(actor access.Actor, id int) error {
	rec, err := s.Get(actor, id)
	if err != nil {
		return err
	}
	if !access.CanMutate(actor, rec.OwnerID) {
		return appErrors.NewAccessDenied("only the owner may delete a recipient")
	}
	return s.RecipientRepo.Delete(id)
}

func validateRecipient(input RecipientInput) error {
	if !strings.Contains(input.Email, "@") {
		return appErrors.NewValidation("email must be a valid address")
	}
	if strings.TrimSpace(input.FullName) == "" {
		return appErrors.NewValidation("full_name must not be empty")
	}
	return nil
}

// internal/service/attempt_service.go
package service

import (
	"github.com/mailsched/mailsched-backend/internal/access"
	appErrors "github.com/mailsched/mailsched-backend/internal/errors"
	"github.com/mailsched/mailsched-backend/internal/model"
	"github.com/mailsched/mailsched-backend/internal/repository"
)

type AttemptService struct {
	AttemptRepo repository.AttemptRepositoryInterface
	MailingRepo repository.MailingRepositoryInterface
}

// List returns the attempt ledger visible to the actor: everything for
// managers, own mailings' attempts for owners.
func (s *AttemptService) List(actor access.Actor, page, pageSize int) ([]model.Attempt, map[string]int, error) {
	page, pageSize, offset := clampPage(page, pageSize)

	var attempts []model.Attempt
	var total int
	var err error
	if actor.IsManager() {
		attempts, total, err = s.AttemptRepo.ListAll(offset, pageSize)
	} else {
		attempts, total, err = s.AttemptRepo.ListByOwner(actor.UserID, offset, pageSize)
	}
	if err != nil {
		return nil, nil, err
	}

	return attempts, paginationInfo(page, pageSize, total), nil
}

// ListForMailing returns one mailing's ledger, newest first.
func (s *AttemptService) ListForMailing(actor access.Actor, mailingID, page, pageSize int) ([]model.Attempt, map[string]int, error) {
	m, err := s.MailingRepo.GetByID(mailingID)
	if err != nil {
		return nil, nil, err
	}
	if !access.CanView(actor, m.OwnerID) {
		return nil, nil, appErrors.NewMailingNotFound(mailingID)
	}

	page, pageSize, offset := clampPage(page, pageSize)
	attempts, total, err := s.AttemptRepo.ListByMailing(mailingID, offset, pageSize)
	if err != nil {
		return nil, nil, err
	}

	return attempts, paginationInfo(page, pageSize, total), nil
}

func clampPage(page, pageSize int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize, (page - 1) * pageSize
}

func paginationInfo(page, pageSize, total int) map[string]int {
	return map[string]int{
		"page":        page,
		"page_size":   pageSize,
		"total_count": total,
		"total_pages": (total + pageSize - 1) / pageSize,
	}
}

// internal/service/sweep_service.go
package service

import (
	"log"
	"time"

	"github.com/mailsched/mailsched-backend/internal/repository"
)

// SweepResult aggregates one batch pass over every stored mailing.
type SweepResult struct {
	Processed int `json:"processed"`
	Sent      int `json:"sent"`
	Failed    int `json:"failed"`
	Disabled  int `json:"disabled"`
}

// SweepService is the unattended batch entry point: it runs the
// delivery engine over every mailing, all owners, without pre-filtering
// by status. Out-of-window mailings still get their audit attempts that
// way; the engine's own gates decide what actually goes out.
type SweepService struct {
	MailingRepo repository.MailingRepositoryInterface
	Delivery    *DeliveryService
}

// RunAllDue processes every stored mailing at instant now. One
// mailing's failure never aborts the rest of the batch.
func (s *SweepService) RunAllDue(now time.Time) (*SweepResult, error) {
	mailings, err := s.MailingRepo.ListAll()
	if err != nil {
		return nil, err
	}

	result := &SweepResult{}
	for i := range mailings {
		outcome, err := s.Delivery.RunMailing(&mailings[i], now)
		if err != nil {
			log.Printf("⚠️ sweep: mailing %d failed: %v", mailings[i].ID, err)
			continue
		}

		result.Processed++
		result.Sent += outcome.Sent
		result.Failed += outcome.Failed
		if outcome.Kind == OutcomeDisabled {
			result.Disabled++
		}
	}

	log.Printf("sweep done: %d mailings processed, %d sent, %d failed, %d disabled",
		result.Processed, result.Sent, result.Failed, result.Disabled)
	return result, nil
}

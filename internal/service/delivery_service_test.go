package service_test

import (
	"testing"
	"time"

	"github.com/mailsched/mailsched-backend/internal/model"
	"github.com/mailsched/mailsched-backend/internal/service"
)

func newDeliveryFixture() (*service.DeliveryService, *fakeRecipientRepo, *fakeAttemptRepo, *fakeSender, model.Mailing) {
	recipientRepo := newFakeRecipientRepo()
	messageRepo := newFakeMessageRepo()
	attemptRepo := newFakeAttemptRepo()
	sender := newFakeSender()

	messageRepo.add(model.Message{ID: 1, Subject: "Hello", Body: "World", OwnerID: 1})

	start := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	mailing := model.Mailing{
		ID:        1,
		StartAt:   start,
		EndAt:     start.Add(time.Hour),
		Active:    true,
		MessageID: 1,
		OwnerID:   1,
	}

	recipientRepo.add(model.Recipient{ID: 1, Email: "a@example.com", FullName: "A", OwnerID: 1}, 1)
	recipientRepo.add(model.Recipient{ID: 2, Email: "b@example.com", FullName: "B", OwnerID: 1}, 1)
	recipientRepo.add(model.Recipient{ID: 3, Email: "c@example.com", FullName: "C", OwnerID: 1}, 1)

	svc := &service.DeliveryService{
		RecipientRepo: recipientRepo,
		MessageRepo:   messageRepo,
		AttemptRepo:   attemptRepo,
		Sender:        sender,
		FromAddress:   "noreply@example.com",
	}
	return svc, recipientRepo, attemptRepo, sender, mailing
}

func TestRunMailingDisabled(t *testing.T) {
	svc, _, attemptRepo, sender, mailing := newDeliveryFixture()
	mailing.Active = false
	now := mailing.StartAt.Add(30 * time.Minute)

	outcome, err := svc.RunMailing(&mailing, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Kind != service.OutcomeDisabled {
		t.Errorf("expected disabled outcome, got %q", outcome.Kind)
	}
	if len(attemptRepo.attempts) != 0 {
		t.Errorf("disabled mailing must write no attempts, got %d", len(attemptRepo.attempts))
	}
	if len(sender.sent) != 0 {
		t.Errorf("disabled mailing must not send, sent to %v", sender.sent)
	}
}

func TestRunMailingOutsideWindow(t *testing.T) {
	svc, _, attemptRepo, sender, mailing := newDeliveryFixture()
	now := mailing.StartAt.Add(-time.Hour)

	outcome, err := svc.RunMailing(&mailing, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Kind != service.OutcomeOutOfWindow {
		t.Errorf("expected out_of_window outcome, got %q", outcome.Kind)
	}
	if outcome.Failed != 3 || outcome.Sent != 0 {
		t.Errorf("expected 3 failed / 0 sent, got %d / %d", outcome.Failed, outcome.Sent)
	}
	if len(sender.sent) != 0 {
		t.Errorf("out-of-window pass must not call the sender, sent to %v", sender.sent)
	}
	if len(attemptRepo.attempts) != 3 {
		t.Fatalf("expected one attempt per recipient, got %d", len(attemptRepo.attempts))
	}
	for _, a := range attemptRepo.attempts {
		if a.Status != model.AttemptFailure {
			t.Errorf("attempt for recipient %d: expected failure, got %q", a.RecipientID, a.Status)
		}
		if a.ServerResponse != "outside time window" {
			t.Errorf("attempt for recipient %d: unexpected response %q", a.RecipientID, a.ServerResponse)
		}
		if !a.AttemptedAt.Equal(now) {
			t.Errorf("attempt timestamp should be the pass instant, got %v", a.AttemptedAt)
		}
	}
}

func TestRunMailingMixedOutcomes(t *testing.T) {
	svc, _, attemptRepo, sender, mailing := newDeliveryFixture()
	sender.failFor["b@example.com"] = "550 mailbox unavailable"
	now := mailing.StartAt.Add(30 * time.Minute)

	outcome, err := svc.RunMailing(&mailing, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Kind != service.OutcomeCompleted {
		t.Errorf("expected completed outcome, got %q", outcome.Kind)
	}
	if outcome.Sent != 2 || outcome.Failed != 1 {
		t.Errorf("expected 2 sent / 1 failed, got %d / %d", outcome.Sent, outcome.Failed)
	}
	if len(attemptRepo.attempts) != 3 {
		t.Fatalf("expected exactly one attempt per recipient, got %d", len(attemptRepo.attempts))
	}

	for _, a := range attemptRepo.attempts {
		switch a.RecipientID {
		case 2:
			if a.Status != model.AttemptFailure {
				t.Errorf("recipient 2: expected failure, got %q", a.Status)
			}
			// collaborator failure detail preserved verbatim
			if a.ServerResponse != "550 mailbox unavailable" {
				t.Errorf("recipient 2: unexpected response %q", a.ServerResponse)
			}
		default:
			if a.Status != model.AttemptSuccess {
				t.Errorf("recipient %d: expected success, got %q", a.RecipientID, a.Status)
			}
			if a.ServerResponse != "OK" {
				t.Errorf("recipient %d: unexpected response %q", a.RecipientID, a.ServerResponse)
			}
		}
	}
}

func TestRunMailingOneFailureDoesNotSkipRest(t *testing.T) {
	svc, _, _, sender, mailing := newDeliveryFixture()
	sender.failFor["a@example.com"] = "connection refused"
	now := mailing.StartAt.Add(30 * time.Minute)

	outcome, err := svc.RunMailing(&mailing, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// the first recipient fails; the remaining two must still be sent
	if len(sender.sent) != 2 {
		t.Errorf("expected 2 deliveries after the first failed, got %v", sender.sent)
	}
	if outcome.Sent != 2 || outcome.Failed != 1 {
		t.Errorf("expected 2 sent / 1 failed, got %d / %d", outcome.Sent, outcome.Failed)
	}
}

func TestRunMailingTwiceAppendsFreshBatch(t *testing.T) {
	svc, _, attemptRepo, _, mailing := newDeliveryFixture()
	now := mailing.StartAt.Add(30 * time.Minute)

	if _, err := svc.RunMailing(&mailing, now); err != nil {
		t.Fatalf("first pass: %v", err)
	}
	if _, err := svc.RunMailing(&mailing, now.Add(time.Minute)); err != nil {
		t.Fatalf("second pass: %v", err)
	}

	// no dedupe: two passes over 3 recipients leave 6 attempts
	if len(attemptRepo.attempts) != 6 {
		t.Errorf("expected 6 attempts after two passes, got %d", len(attemptRepo.attempts))
	}
}

func TestRunMailingEmptyRecipientSet(t *testing.T) {
	svc, recipientRepo, attemptRepo, _, mailing := newDeliveryFixture()
	recipientRepo.byMailing[mailing.ID] = nil
	now := mailing.StartAt.Add(30 * time.Minute)

	outcome, err := svc.RunMailing(&mailing, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Kind != service.OutcomeCompleted || outcome.Sent != 0 || outcome.Failed != 0 {
		t.Errorf("expected empty completed pass, got %+v", outcome)
	}
	if len(attemptRepo.attempts) != 0 {
		t.Errorf("expected no attempts for empty recipient set, got %d", len(attemptRepo.attempts))
	}
}

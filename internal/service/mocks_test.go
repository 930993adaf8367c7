package service_test

import (
	"fmt"
	"sort"

	appErrors "github.com/mailsched/mailsched-backend/internal/errors"
	"github.com/mailsched/mailsched-backend/internal/model"
)

// In-memory fakes implementing the repository interfaces.

type fakeRecipientRepo struct {
	recipients map[int]model.Recipient
	byMailing  map[int][]int
	nextID     int
}

func newFakeRecipientRepo() *fakeRecipientRepo {
	return &fakeRecipientRepo{
		recipients: map[int]model.Recipient{},
		byMailing:  map[int][]int{},
	}
}

func (f *fakeRecipientRepo) add(rec model.Recipient, mailingIDs ...int) {
	f.recipients[rec.ID] = rec
	if rec.ID > f.nextID {
		f.nextID = rec.ID
	}
	for _, mid := range mailingIDs {
		f.byMailing[mid] = append(f.byMailing[mid], rec.ID)
	}
}

func (f *fakeRecipientRepo) Create(rec *model.Recipient) error {
	f.nextID++
	rec.ID = f.nextID
	f.recipients[rec.ID] = *rec
	return nil
}

func (f *fakeRecipientRepo) GetByID(id int) (*model.Recipient, error) {
	rec, ok := f.recipients[id]
	if !ok {
		return nil, appErrors.NewRecipientNotFound(id)
	}
	return &rec, nil
}

func (f *fakeRecipientRepo) Update(rec *model.Recipient) error {
	f.recipients[rec.ID] = *rec
	return nil
}

func (f *fakeRecipientRepo) Delete(id int) error {
	delete(f.recipients, id)
	return nil
}

func (f *fakeRecipientRepo) ListByOwner(ownerID int) ([]model.Recipient, error) {
	out := []model.Recipient{}
	for _, rec := range f.recipients {
		if rec.OwnerID == ownerID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRecipientRepo) ListAll() ([]model.Recipient, error) {
	out := []model.Recipient{}
	for _, rec := range f.recipients {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRecipientRepo) ListByMailing(mailingID int) ([]model.Recipient, error) {
	out := []model.Recipient{}
	for _, id := range f.byMailing[mailingID] {
		if rec, ok := f.recipients[id]; ok {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRecipientRepo) CountOwned(ownerID int, ids []int) (int, error) {
	count := 0
	for _, id := range ids {
		if rec, ok := f.recipients[id]; ok && rec.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

type fakeMessageRepo struct {
	messages map[int]model.Message
	nextID   int
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: map[int]model.Message{}}
}

func (f *fakeMessageRepo) add(m model.Message) {
	f.messages[m.ID] = m
	if m.ID > f.nextID {
		f.nextID = m.ID
	}
}

func (f *fakeMessageRepo) Create(m *model.Message) error {
	f.nextID++
	m.ID = f.nextID
	f.messages[m.ID] = *m
	return nil
}

func (f *fakeMessageRepo) GetByID(id int) (*model.Message, error) {
	m, ok := f.messages[id]
	if !ok {
		return nil, appErrors.NewMessageNotFound(id)
	}
	return &m, nil
}

func (f *fakeMessageRepo) Update(m *model.Message) error {
	f.messages[m.ID] = *m
	return nil
}

func (f *fakeMessageRepo) Delete(id int) error {
	delete(f.messages, id)
	return nil
}

func (f *fakeMessageRepo) ListByOwner(ownerID int) ([]model.Message, error) {
	out := []model.Message{}
	for _, m := range f.messages {
		if m.OwnerID == ownerID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeMessageRepo) ListAll() ([]model.Message, error) {
	out := []model.Message{}
	for _, m := range f.messages {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeMailingRepo struct {
	mailings map[int]model.Mailing
	nextID   int
}

func newFakeMailingRepo() *fakeMailingRepo {
	return &fakeMailingRepo{mailings: map[int]model.Mailing{}}
}

func (f *fakeMailingRepo) add(m model.Mailing) {
	f.mailings[m.ID] = m
	if m.ID > f.nextID {
		f.nextID = m.ID
	}
}

func (f *fakeMailingRepo) Create(m *model.Mailing, recipientIDs []int) error {
	f.nextID++
	m.ID = f.nextID
	f.mailings[m.ID] = *m
	return nil
}

func (f *fakeMailingRepo) GetByID(id int) (*model.Mailing, error) {
	m, ok := f.mailings[id]
	if !ok {
		return nil, appErrors.NewMailingNotFound(id)
	}
	return &m, nil
}

func (f *fakeMailingRepo) Update(m *model.Mailing) error {
	f.mailings[m.ID] = *m
	return nil
}

func (f *fakeMailingRepo) Delete(id int) error {
	delete(f.mailings, id)
	return nil
}

func (f *fakeMailingRepo) ListByOwner(ownerID int) ([]model.Mailing, error) {
	out := []model.Mailing{}
	for _, m := range f.mailings {
		if m.OwnerID == ownerID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeMailingRepo) ListAll() ([]model.Mailing, error) {
	out := []model.Mailing{}
	for _, m := range f.mailings {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeMailingRepo) SetActive(id int, active bool) error {
	m, ok := f.mailings[id]
	if !ok {
		return appErrors.NewMailingNotFound(id)
	}
	m.Active = active
	f.mailings[id] = m
	return nil
}

func (f *fakeMailingRepo) SetRecipients(mailingID int, recipientIDs []int) error {
	return nil
}

type fakeAttemptRepo struct {
	attempts []model.Attempt
	nextID   int
}

func newFakeAttemptRepo() *fakeAttemptRepo {
	return &fakeAttemptRepo{}
}

func (f *fakeAttemptRepo) Create(a *model.Attempt) error {
	f.nextID++
	a.ID = f.nextID
	f.attempts = append(f.attempts, *a)
	return nil
}

func (f *fakeAttemptRepo) forMailing(mailingID int) []model.Attempt {
	out := []model.Attempt{}
	for _, a := range f.attempts {
		if a.MailingID == mailingID {
			out = append(out, a)
		}
	}
	return out
}

func (f *fakeAttemptRepo) ListByMailing(mailingID, offset, limit int) ([]model.Attempt, int, error) {
	all := f.forMailing(mailingID)
	return paginate(all, offset, limit), len(all), nil
}

func (f *fakeAttemptRepo) ListByOwner(ownerID, offset, limit int) ([]model.Attempt, int, error) {
	// Fakes do not model the mailings join; tests wire owner scope
	// through the mailing fixtures instead.
	return paginate(f.attempts, offset, limit), len(f.attempts), nil
}

func (f *fakeAttemptRepo) ListAll(offset, limit int) ([]model.Attempt, int, error) {
	return paginate(f.attempts, offset, limit), len(f.attempts), nil
}

func (f *fakeAttemptRepo) CountByMailing(mailingID int) (map[string]int, error) {
	stats := map[string]int{"success": 0, "failure": 0}
	for _, a := range f.forMailing(mailingID) {
		stats[string(a.Status)]++
	}
	return stats, nil
}

func (f *fakeAttemptRepo) LastPerRecipient(mailingID int) ([]model.Attempt, error) {
	last := map[int]model.Attempt{}
	for _, a := range f.forMailing(mailingID) {
		prev, ok := last[a.RecipientID]
		if !ok || a.AttemptedAt.After(prev.AttemptedAt) || (a.AttemptedAt.Equal(prev.AttemptedAt) && a.ID > prev.ID) {
			last[a.RecipientID] = a
		}
	}
	out := []model.Attempt{}
	for _, a := range last {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecipientID < out[j].RecipientID })
	return out, nil
}

func paginate(all []model.Attempt, offset, limit int) []model.Attempt {
	if offset >= len(all) {
		return []model.Attempt{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

// fakeSender records send calls and fails for configured addresses.
type fakeSender struct {
	sent    []string
	failFor map[string]string
}

func newFakeSender() *fakeSender {
	return &fakeSender{failFor: map[string]string{}}
}

func (s *fakeSender) Send(subject, body, from, to string) error {
	if detail, ok := s.failFor[to]; ok {
		return fmt.Errorf("%s", detail)
	}
	s.sent = append(s.sent, to)
	return nil
}

package repository

import (
	"database/sql"
	"time"

	appErrors "github.com/mailsched/mailsched-backend/internal/errors"
	"github.com/mailsched/mailsched-backend/internal/model"
)

type MailingRepositoryInterface interface {
	Create(m *model.Mailing, recipientIDs []int) error
	GetByID(id int) (*model.Mailing, error)
	Update(m *model.Mailing) error
	Delete(id int) error
	ListByOwner(ownerID int) ([]model.Mailing, error)
	ListAll() ([]model.Mailing, error)
	SetActive(id int, active bool) error
	SetRecipients(mailingID int, recipientIDs []int) error
}

type MailingRepository struct {
	DB *sql.DB
}

// Create inserts the mailing and its recipient links in one transaction.
func (r *MailingRepository) Create(m *model.Mailing, recipientIDs []int) error {
	m.CreatedAt = time.Now().UTC()

	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO mailings (start_at, end_at, active, message_id, owner_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	if err := tx.QueryRow(query, m.StartAt, m.EndAt, m.Active, m.MessageID, m.OwnerID, m.CreatedAt).Scan(&m.ID); err != nil {
		return err
	}

	for _, rid := range recipientIDs {
		if _, err := tx.Exec(
			`INSERT INTO mailing_recipients (mailing_id, recipient_id) VALUES ($1, $2)`,
			m.ID, rid,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *MailingRepository) GetByID(id int) (*model.Mailing, error) {
	query := `
        SELECT id, start_at, end_at, active, message_id, owner_id, created_at
        FROM mailings WHERE id=$1
    `
	var m model.Mailing
	err := r.DB.QueryRow(query, id).Scan(&m.ID, &m.StartAt, &m.EndAt, &m.Active, &m.MessageID, &m.OwnerID, &m.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewMailingNotFound(id)
		}
		return nil, err
	}
	return &m, nil
}

func (r *MailingRepository) Update(m *model.Mailing) error {
	query := `
        UPDATE mailings
        SET start_at=$1, end_at=$2, message_id=$3
        WHERE id=$4
    `
	_, err := r.DB.Exec(query, m.StartAt, m.EndAt, m.MessageID, m.ID)
	return err
}

// Delete removes the mailing; its attempts and recipient links cascade
// in the schema. Message and recipient rows survive.
func (r *MailingRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM mailings WHERE id=$1`, id)
	return err
}

func (r *MailingRepository) ListByOwner(ownerID int) ([]model.Mailing, error) {
	query := `
        SELECT id, start_at, end_at, active, message_id, owner_id, created_at
        FROM mailings WHERE owner_id=$1
        ORDER BY id
    `
	return r.queryMailings(query, ownerID)
}

// ListAll is the unscoped form, used by manager reads and the sweeper.
func (r *MailingRepository) ListAll() ([]model.Mailing, error) {
	query := `
        SELECT id, start_at, end_at, active, message_id, owner_id, created_at
        FROM mailings
        ORDER BY id
    `
	return r.queryMailings(query)
}

func (r *MailingRepository) SetActive(id int, active bool) error {
	_, err := r.DB.Exec(`UPDATE mailings SET active=$1 WHERE id=$2`, active, id)
	return err
}

// SetRecipients replaces the mailing's recipient link set.
func (r *MailingRepository) SetRecipients(mailingID int, recipientIDs []int) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM mailing_recipients WHERE mailing_id=$1`, mailingID); err != nil {
		return err
	}
	for _, rid := range recipientIDs {
		if _, err := tx.Exec(
			`INSERT INTO mailing_recipients (mailing_id, recipient_id) VALUES ($1, $2)`,
			mailingID, rid,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *MailingRepository) queryMailings(query string, args ...interface{}) ([]model.Mailing, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mailings := []model.Mailing{}
	for rows.Next() {
		var m model.Mailing
		if err := rows.Scan(&m.ID, &m.StartAt, &m.EndAt, &m.Active, &m.MessageID, &m.OwnerID, &m.CreatedAt); err != nil {
			return nil, err
		}
		mailings = append(mailings, m)
	}
	return mailings, rows.Err()
}

var _ MailingRepositoryInterface = (*MailingRepository)(nil)

package repository

import (
	"database/sql"

	"github.com/mailsched/mailsched-backend/internal/model"
)

type AttemptRepositoryInterface interface {
	Create(a *model.Attempt) error
	ListByMailing(mailingID, offset, limit int) ([]model.Attempt, int, error)
	ListByOwner(ownerID, offset, limit int) ([]model.Attempt, int, error)
	ListAll(offset, limit int) ([]model.Attempt, int, error)
	CountByMailing(mailingID int) (map[string]int, error)
	LastPerRecipient(mailingID int) ([]model.Attempt, error)
}

type AttemptRepository struct {
	DB *sql.DB
}

// Create appends one attempt. Attempts are never updated afterwards.
func (r *AttemptRepository) Create(a *model.Attempt) error {
	query := `
        INSERT INTO attempts (mailing_id, recipient_id, attempted_at, status, server_response)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	return r.DB.QueryRow(query, a.MailingID, a.RecipientID, a.AttemptedAt, a.Status, a.ServerResponse).Scan(&a.ID)
}

func (r *AttemptRepository) ListByMailing(mailingID, offset, limit int) ([]model.Attempt, int, error) {
	query := `
        SELECT id, mailing_id, recipient_id, attempted_at, status, server_response
        FROM attempts
        WHERE mailing_id=$1
        ORDER BY attempted_at DESC, id DESC
        LIMIT $2 OFFSET $3
    `
	attempts, err := r.queryAttempts(query, mailingID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM attempts WHERE mailing_id=$1`, mailingID).Scan(&total); err != nil {
		return nil, 0, err
	}
	return attempts, total, nil
}

// ListByOwner joins through mailings: an attempt's effective owner is
// its mailing's owner.
func (r *AttemptRepository) ListByOwner(ownerID, offset, limit int) ([]model.Attempt, int, error) {
	query := `
        SELECT a.id, a.mailing_id, a.recipient_id, a.attempted_at, a.status, a.server_response
        FROM attempts a
        JOIN mailings m ON m.id = a.mailing_id
        WHERE m.owner_id=$1
        ORDER BY a.attempted_at DESC, a.id DESC
        LIMIT $2 OFFSET $3
    `
	attempts, err := r.queryAttempts(query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	countQuery := `
        SELECT COUNT(*)
        FROM attempts a
        JOIN mailings m ON m.id = a.mailing_id
        WHERE m.owner_id=$1
    `
	var total int
	if err := r.DB.QueryRow(countQuery, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	return attempts, total, nil
}

// ListAll is the unscoped form, reachable only through manager reads.
func (r *AttemptRepository) ListAll(offset, limit int) ([]model.Attempt, int, error) {
	query := `
        SELECT id, mailing_id, recipient_id, attempted_at, status, server_response
        FROM attempts
        ORDER BY attempted_at DESC, id DESC
        LIMIT $1 OFFSET $2
    `
	attempts, err := r.queryAttempts(query, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM attempts`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return attempts, total, nil
}

// CountByMailing returns attempt counts per status for the stats view.
func (r *AttemptRepository) CountByMailing(mailingID int) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM attempts WHERE mailing_id=$1 GROUP BY status`
	rows, err := r.DB.Query(query, mailingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := map[string]int{"success": 0, "failure": 0}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

// LastPerRecipient returns each recipient's most recent attempt for the
// mailing. Recipients with no attempts yet are simply absent.
func (r *AttemptRepository) LastPerRecipient(mailingID int) ([]model.Attempt, error) {
	query := `
        SELECT DISTINCT ON (recipient_id)
            id, mailing_id, recipient_id, attempted_at, status, server_response
        FROM attempts
        WHERE mailing_id=$1
        ORDER BY recipient_id, attempted_at DESC, id DESC
    `
	return r.queryAttempts(query, mailingID)
}

func (r *AttemptRepository) queryAttempts(query string, args ...interface{}) ([]model.Attempt, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attempts := []model.Attempt{}
	for rows.Next() {
		var a model.Attempt
		if err := rows.Scan(&a.ID, &a.MailingID, &a.RecipientID, &a.AttemptedAt, &a.Status, &a.ServerResponse); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

var _ AttemptRepositoryInterface = (*AttemptRepository)(nil)

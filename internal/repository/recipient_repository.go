package repository

import (
	"database/sql"

	"github.com/lib/pq"

	appErrors "github.com/mailsched/mailsched-backend/internal/errors"
	"github.com/mailsched/mailsched-backend/internal/model"
)

type RecipientRepositoryInterface interface {
	Create(rec *model.Recipient) error
	GetByID(id int) (*model.Recipient, error)
	Update(rec *model.Recipient) error
	Delete(id int) error
	ListByOwner(ownerID int) ([]model.Recipient, error)
	ListAll() ([]model.Recipient, error)
	ListByMailing(mailingID int) ([]model.Recipient, error)
	CountOwned(ownerID int, ids []int) (int, error)
}

type RecipientRepository struct {
	DB *sql.DB
}

func (r *RecipientRepository) Create(rec *model.Recipient) error {
	query := `
        INSERT INTO recipients (email, full_name, comment, owner_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	return r.DB.QueryRow(query, rec.Email, rec.FullName, rec.Comment, rec.OwnerID).Scan(&rec.ID)
}

func (r *RecipientRepository) GetByID(id int) (*model.Recipient, error) {
	query := `
        SELECT id, email, full_name, comment, owner_id
        FROM recipients WHERE id=$1
    `
	var rec model.Recipient
	err := r.DB.QueryRow(query, id).Scan(&rec.ID, &rec.Email, &rec.FullName, &rec.Comment, &rec.OwnerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewRecipientNotFound(id)
		}
		return nil, err
	}
	return &rec, nil
}

func (r *RecipientRepository) Update(rec *model.Recipient) error {
	query := `
        UPDATE recipients
        SET email=$1, full_name=$2, comment=$3
        WHERE id=$4
    `
	_, err := r.DB.Exec(query, rec.Email, rec.FullName, rec.Comment, rec.ID)
	return err
}

// Delete removes the recipient. Mailing links and attempts referencing
// it go with it via the schema's ON DELETE CASCADE.
func (r *RecipientRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM recipients WHERE id=$1`, id)
	return err
}

func (r *RecipientRepository) ListByOwner(ownerID int) ([]model.Recipient, error) {
	query := `
        SELECT id, email, full_name, comment, owner_id
        FROM recipients WHERE owner_id=$1
        ORDER BY id
    `
	return r.queryRecipients(query, ownerID)
}

// ListAll is the unscoped form, reachable only through manager reads.
func (r *RecipientRepository) ListAll() ([]model.Recipient, error) {
	query := `
        SELECT id, email, full_name, comment, owner_id
        FROM recipients
        ORDER BY id
    `
	return r.queryRecipients(query)
}

// ListByMailing returns the current recipient set of a mailing.
func (r *RecipientRepository) ListByMailing(mailingID int) ([]model.Recipient, error) {
	query := `
        SELECT r.id, r.email, r.full_name, r.comment, r.owner_id
        FROM recipients r
        JOIN mailing_recipients mr ON mr.recipient_id = r.id
        WHERE mr.mailing_id = $1
        ORDER BY r.id
    `
	return r.queryRecipients(query, mailingID)
}

// CountOwned counts how many of the given IDs exist and belong to
// ownerID. Used to validate a mailing's recipient set on create/update.
func (r *RecipientRepository) CountOwned(ownerID int, ids []int) (int, error) {
	var count int
	err := r.DB.QueryRow(
		`SELECT COUNT(*) FROM recipients WHERE owner_id=$1 AND id = ANY($2)`,
		ownerID, pq.Array(ids),
	).Scan(&count)
	return count, err
}

func (r *RecipientRepository) queryRecipients(query string, args ...interface{}) ([]model.Recipient, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipients := []model.Recipient{}
	for rows.Next() {
		var rec model.Recipient
		if err := rows.Scan(&rec.ID, &rec.Email, &rec.FullName, &rec.Comment, &rec.OwnerID); err != nil {
			return nil, err
		}
		recipients = append(recipients, rec)
	}
	return recipients, rows.Err()
}

var _ RecipientRepositoryInterface = (*RecipientRepository)(nil)

package repository

import (
	"database/sql"

	"github.com/mailsched/mailsched-backend/internal/model"
)

// UserRepositoryInterface is what the actor-resolving middleware needs.
type UserRepositoryInterface interface {
	GetByID(id int) (*model.User, error)
}

type UserRepository struct {
	DB *sql.DB
}

// GetByID fetches a user by ID; returns nil, nil when not found.
func (r *UserRepository) GetByID(id int) (*model.User, error) {
	query := `
        SELECT id, email, name, is_manager
        FROM users
        WHERE id = $1
    `
	var u model.User
	err := r.DB.QueryRow(query, id).Scan(&u.ID, &u.Email, &u.Name, &u.IsManager)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

var _ UserRepositoryInterface = (*UserRepository)(nil)

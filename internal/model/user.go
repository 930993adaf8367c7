// internal/model/user.go
package model

type User struct {
	ID        int    `db:"id" json:"id"`
	Email     string `db:"email" json:"email"`
	Name      string `db:"name" json:"name"`
	IsManager bool   `db:"is_manager" json:"is_manager"`
}

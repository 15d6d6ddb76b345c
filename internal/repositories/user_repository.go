package repositories

import (
	"database/sql"

	intconfig "laundry-admin/internal/config"
	"laundry-admin/internal/domain"
	"laundry-admin/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByLogin finds a user by email or username and returns the stored
// password hash alongside the profile.
func (r UserRepository) GetByLogin(login string) (models.User, string, error) {
	var (
		u    models.User
		hash string
	)
	err := r.db().QueryRow(`
		SELECT id, name, username, email, phone, password_hash, role, status
		FROM users
		WHERE email = ? OR username = ?
	`, login, login).Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &hash, &u.Role, &u.Status)
	if err == sql.ErrNoRows {
		return u, "", domain.NotFoundError{Resource: "người dùng"}
	}
	return u, hash, err
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	var u models.User
	err := r.db().QueryRow(`
		SELECT id, name, username, email, phone, role, status
		FROM users
		WHERE id = ?
	`, id).Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &u.Role, &u.Status)
	if err == sql.ErrNoRows {
		return u, domain.NotFoundError{Resource: "người dùng"}
	}
	return u, err
}

func (r UserRepository) Exists(email, username string) (bool, error) {
	var count int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM users WHERE email = ? OR username = ?
	`, email, username).Scan(&count)
	return count > 0, err
}

func (r UserRepository) Create(u models.User, passwordHash string) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO users (name, username, email, phone, password_hash, role, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`, u.Name, u.Username, u.Email, u.Phone, passwordHash, u.Role, u.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdatePasswordByEmail is used by the reset-password flow.
func (r UserRepository) UpdatePasswordByEmail(email, passwordHash string) error {
	res, err := r.db().Exec(`
		UPDATE users SET password_hash = ?, updated_at = NOW() WHERE email = ?
	`, passwordHash, email)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.NotFoundError{Resource: "người dùng"}
	}
	return nil
}

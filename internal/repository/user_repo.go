package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type postgresUserRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresUserRepository(db *sql.DB, logger *logrus.Logger) domain.UserRepository {
	return &postgresUserRepository{
		db:  db,
		log: logger,
	}
}

const userColumns = `id, email, first_name, last_name, profile_image_url, password_hash, is_owner, created_at, updated_at`

func (r *postgresUserRepository) CreateUser(user *domain.User) (*domain.User, error) {
	query := `
        INSERT INTO users (id, email, first_name, last_name, profile_image_url, password_hash)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at`
	err := r.db.QueryRow(query,
		user.ID,
		user.Email,
		nullString(user.FirstName),
		nullString(user.LastName),
		nullString(user.ProfileImageURL),
		user.PasswordHash,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			r.log.Warnf("Attempted to register duplicate email '%s'", user.Email)
			return nil, fmt.Errorf("user with email '%s' already exists", user.Email)
		}
		r.log.Errorf("Failed to create user '%s': %v", user.Email, err)
		return nil, fmt.Errorf("could not create user: %w", err)
	}
	r.log.Infof("User created successfully with ID: %s, Email: %s", user.ID, user.Email)
	return user, nil
}

func (r *postgresUserRepository) GetUserByEmail(email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRow(query, email), fmt.Sprintf("email '%s'", email))
}

func (r *postgresUserRepository) GetUserByID(id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRow(query, id), fmt.Sprintf("id '%s'", id))
}

func (r *postgresUserRepository) scanUser(row *sql.Row, ref string) (*domain.User, error) {
	user := &domain.User{}
	var firstName, lastName, profileImageURL sql.NullString

	err := row.Scan(
		&user.ID,
		&user.Email,
		&firstName,
		&lastName,
		&profileImageURL,
		&user.PasswordHash,
		&user.IsOwner,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("User with %s not found", ref)
			return nil, fmt.Errorf("user with %s not found", ref)
		}
		r.log.Errorf("Failed to get user by %s: %v", ref, err)
		return nil, fmt.Errorf("could not get user: %w", err)
	}

	user.FirstName = firstName.String
	user.LastName = lastName.String
	user.ProfileImageURL = profileImageURL.String
	return user, nil
}

func (r *postgresUserRepository) SetUserAsOwner(id string) (*domain.User, error) {
	query := `UPDATE users SET is_owner = TRUE, updated_at = NOW() WHERE id = $1`
	result, err := r.db.Exec(query, id)
	if err != nil {
		r.log.Errorf("Failed to set user %s as owner: %v", id, err)
		return nil, fmt.Errorf("could not set user as owner: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("could not confirm owner update: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("User with id '%s' not found for owner update", id)
		return nil, fmt.Errorf("user with id '%s' not found", id)
	}
	r.log.Infof("User %s promoted to owner", id)
	return r.GetUserByID(id)
}

func (r *postgresUserRepository) GetFirstOwner() (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE is_owner = TRUE ORDER BY created_at ASC LIMIT 1`
	user, err := r.scanUser(r.db.QueryRow(query), "owner role")
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *postgresUserRepository) CreateSession(session *domain.Session) error {
	query := `
        INSERT INTO sessions (token, user_id, expires_at)
        VALUES ($1, $2, $3)`
	_, err := r.db.Exec(query, session.Token, session.UserID, session.ExpiresAt)
	if err != nil {
		r.log.Errorf("Failed to create session for user %s: %v", session.UserID, err)
		return fmt.Errorf("could not create session: %w", err)
	}
	r.log.Infof("Session created for user %s, expires at %s", session.UserID, session.ExpiresAt.Format(time.RFC3339))
	return nil
}

func (r *postgresUserRepository) GetUserBySessionToken(token string) (*domain.User, error) {
	query := `
        SELECT u.id, u.email, u.first_name, u.last_name, u.profile_image_url, u.password_hash, u.is_owner, u.created_at, u.updated_at
        FROM sessions s
        JOIN users u ON u.id = s.user_id
        WHERE s.token = $1 AND s.expires_at > NOW()`
	return r.scanUser(r.db.QueryRow(query, token), "session token")
}

func (r *postgresUserRepository) DeleteSession(token string) error {
	_, err := r.db.Exec(`DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		r.log.Errorf("Failed to delete session: %v", err)
		return fmt.Errorf("could not delete session: %w", err)
	}
	return nil
}

package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/pkg/apperrors"
	"github.com/edutech/studify/internal/pkg/dberrors"
)

// UserRepository handles database operations for user accounts.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, email, password, role, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Role,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a user and fills in the generated id.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (username, email, password, role, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		user.Username, user.Email, user.Password, user.Role, user.IsActive,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_users_username") {
			return apperrors.NewCustomError(apperrors.ErrUsernameExists, "username already taken")
		}
		if dberrors.IsDuplicateConstraintError(err, "uq_users_email") {
			return apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "email already registered")
		}
		return err
	}
	return nil
}

// insertUserTx inserts a user inside an existing transaction. Shared with
// the student and teacher composite creates.
func insertUserTx(ctx context.Context, tx pgx.Tx, user *models.User) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO users (username, email, password, role, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		user.Username, user.Email, user.Password, user.Role, user.IsActive,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_users_username") {
			return apperrors.NewCustomError(apperrors.ErrUsernameExists, "username already taken")
		}
		if dberrors.IsDuplicateConstraintError(err, "uq_users_email") {
			return apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "email already registered")
		}
		return err
	}
	return nil
}

// GetByID fetches a user by primary key.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewCustomError(apperrors.ErrUserNotFound, "user not found")
	}
	return user, err
}

// GetByUsernameOrEmail fetches a user by either login identifier.
func (r *UserRepository) GetByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1 OR email = $1`, identifier))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewCustomError(apperrors.ErrUserNotFound, "user not found")
	}
	return user, err
}

// UsernameExists reports whether a username is taken.
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	return exists, err
}

// UpdatePassword replaces the stored password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET password = $1, updated_at = now() WHERE id = $2`,
		passwordHash, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewCustomError(apperrors.ErrUserNotFound, "user not found")
	}
	return nil
}

// SaveRefreshToken stores a refresh token for a user.
func (r *UserRepository) SaveRefreshToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)`,
		userID, token, expiresAt)
	return err
}

// ConsumeRefreshToken atomically deletes a stored refresh token and returns
// its owner. Expired or unknown tokens yield ErrTokenInvalid.
func (r *UserRepository) ConsumeRefreshToken(ctx context.Context, token string) (int64, error) {
	var userID int64
	var expiresAt time.Time
	err := r.db.QueryRow(ctx, `
		DELETE FROM refresh_tokens WHERE token = $1
		RETURNING user_id, expires_at`,
		token).Scan(&userID, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, apperrors.NewCustomError(apperrors.ErrTokenInvalid, "refresh token not recognized")
	}
	if err != nil {
		return 0, err
	}
	if time.Now().After(expiresAt) {
		return 0, apperrors.NewCustomError(apperrors.ErrTokenExpired, "refresh token expired")
	}
	return userID, nil
}

// DeleteRefreshTokens revokes every stored refresh token of a user.
func (r *UserRepository) DeleteRefreshTokens(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, userID)
	return err
}

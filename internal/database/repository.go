package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/reelmint/reelmint/internal/apperror"
	"github.com/reelmint/reelmint/pkg/models"
)

// Repository provides database operations
type Repository struct {
	db *DB
}

// NewRepository creates a new repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// Health checks database connectivity
func (r *Repository) Health(ctx context.Context) error {
	return r.db.Health(ctx)
}

// execer covers both the pool and a transaction so audit rows can be
// appended inside whatever scope the caller holds.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// appendAudit inserts one system_logs row within the given scope.
func appendAudit(ctx context.Context, ex execer, userID, actionType, description string) error {
	_, err := ex.Exec(ctx,
		`INSERT INTO system_logs (user_id, action_type, description) VALUES ($1, $2, $3)`,
		userID, actionType, description,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit log: %w", err)
	}
	return nil
}

// AppendAudit appends a standalone audit row outside any transaction.
func (r *Repository) AppendAudit(ctx context.Context, userID, actionType, description string) error {
	return appendAudit(ctx, r.db.Pool, userID, actionType, description)
}

const userColumns = `
	id, username, email, password_hash, remaining_seconds, is_premium,
	total_ads_watched, total_generated_seconds,
	total_recharge_amount::text, total_withdraw_amount::text,
	created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount %q: %w", s, err)
	}
	return d, nil
}

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	var recharge, withdraw string

	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.RemainingSeconds, &user.IsPremium,
		&user.TotalAdsWatched, &user.TotalGeneratedSeconds,
		&recharge, &withdraw,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if user.TotalRechargeAmount, err = decimal.NewFromString(recharge); err != nil {
		return nil, fmt.Errorf("failed to parse recharge total: %w", err)
	}
	if user.TotalWithdrawAmount, err = decimal.NewFromString(withdraw); err != nil {
		return nil, fmt.Errorf("failed to parse withdraw total: %w", err)
	}

	return &user, nil
}

// CreateUser registers a new account. Username and email must be
// unique; the password is stored as a bcrypt hash only.
func (r *Repository) CreateUser(ctx context.Context, user *models.User, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, user.Email,
	).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return apperror.New(apperror.InvalidRequest, "email is already registered")
	}

	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, user.Username,
	).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return apperror.New(apperror.InvalidRequest, "username is already taken")
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO users (id, username, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`, user.ID, user.Username, user.Email, string(hashedPassword),
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := appendAudit(ctx, tx, user.ID, models.ActionUserRegistered, "user registered"); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	user.PasswordHash = string(hashedPassword)
	return nil
}

// GetUserByEmail retrieves a user by email
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.New(apperror.NotFound, "user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves a user by ID
func (r *Repository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, userID)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.New(apperror.NotFound, "user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// VerifyCredentials checks an email/password pair and returns the user
// on success. The same error is returned for an unknown email and a
// wrong password.
func (r *Repository) VerifyCredentials(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.GetUserByEmail(ctx, email)
	if apperror.IsKind(err, apperror.NotFound) {
		return nil, apperror.New(apperror.Unauthenticated, "invalid email or password")
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.New(apperror.Unauthenticated, "invalid email or password")
	}

	return user, nil
}

// TouchLogin records a successful login.
func (r *Repository) TouchLogin(ctx context.Context, userID string) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE users SET updated_at = NOW() WHERE id = $1`, userID); err != nil {
		return fmt.Errorf("failed to touch login: %w", err)
	}

	if err := appendAudit(ctx, tx, userID, models.ActionUserLoggedIn, "user logged in"); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// BannedWords returns the banned-word set used by the content filter.
func (r *Repository) BannedWords(ctx context.Context) ([]string, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT word FROM banned_words`)
	if err != nil {
		return nil, fmt.Errorf("failed to load banned words: %w", err)
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("failed to scan banned word: %w", err)
		}
		words = append(words, w)
	}

	return words, rows.Err()
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/CoolVinz/village-shop-sub001/internal/domain"
	"github.com/CoolVinz/village-shop-sub001/pkg/database"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *database.Postgres
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.Postgres) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, name, username, house_number, phone, address, role, is_active,
		password_hash, line_id, email, image, profile_complete, created_at, updated_at, last_login_at`

// mapUniqueViolation translates a 23505 into the typed duplicate error
// for the constraint that fired. Two concurrent registrations with the
// same house number both reach INSERT; exactly one gets this error.
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return nil
	}
	switch {
	case strings.Contains(pqErr.Constraint, "username"):
		return ErrDuplicateUsername
	case strings.Contains(pqErr.Constraint, "house_number"):
		return ErrDuplicateHouseNumber
	case strings.Contains(pqErr.Constraint, "line_id"):
		return ErrDuplicateLineID
	}
	return ErrDuplicateUsername
}

// Create creates a new user in the database
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, name, username, house_number, phone, address, role, is_active,
			password_hash, line_id, email, image, profile_complete, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Username,
		user.HouseNumber,
		user.Phone,
		user.Address,
		user.Role,
		user.IsActive,
		user.PasswordHash,
		user.LineID,
		user.Email,
		user.Image,
		user.ProfileComplete,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if dup := mapUniqueViolation(err); dup != nil {
			return fmt.Errorf("failed to create user: %w", dup)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	user := &domain.User{}
	var lastLoginAt sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Username,
		&user.HouseNumber,
		&user.Phone,
		&user.Address,
		&user.Role,
		&user.IsActive,
		&user.PasswordHash,
		&user.LineID,
		&user.Email,
		&user.Image,
		&user.ProfileComplete,
		&user.CreatedAt,
		&user.UpdatedAt,
		&lastLoginAt,
	)
	if err != nil {
		return nil, err
	}

	if lastLoginAt.Valid {
		user.LastLoginAt = &lastLoginAt.Time
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := r.scanUser(r.db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// GetByUsername retrieves a user by username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = $1`, userColumns)

	user, err := r.scanUser(r.db.DB.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with username %s not found: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

// GetByLineID retrieves a user by linked LINE account id
func (r *userRepository) GetByLineID(ctx context.Context, lineID string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE line_id = $1`, userColumns)

	user, err := r.scanUser(r.db.DB.QueryRowContext(ctx, query, lineID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with line id %s not found: %w", lineID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by line id: %w", err)
	}

	return user, nil
}

// Update updates an existing user
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET name = $2, username = $3, house_number = $4, phone = $5, address = $6,
			role = $7, is_active = $8, password_hash = $9, email = $10, image = $11,
			profile_complete = $12, updated_at = $13
		WHERE id = $1
	`

	result, err := r.db.DB.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Username,
		user.HouseNumber,
		user.Phone,
		user.Address,
		user.Role,
		user.IsActive,
		user.PasswordHash,
		user.Email,
		user.Image,
		user.ProfileComplete,
		time.Now(),
	)

	if err != nil {
		if dup := mapUniqueViolation(err); dup != nil {
			return fmt.Errorf("failed to update user: %w", dup)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user with id %s not found: %w", user.ID, ErrNotFound)
	}

	return nil
}

// UpdateLastLogin updates the last login timestamp for a user
func (r *userRepository) UpdateLastLogin(ctx context.Context, userID string) error {
	result, err := r.db.DB.ExecContext(ctx,
		`UPDATE users SET last_login_at = $1 WHERE id = $2`, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user with id %s not found: %w", userID, ErrNotFound)
	}

	return nil
}

// SetActive toggles the activation flag. Deletion of accounts degrades
// to SetActive(false); rows are never removed through this layer.
func (r *userRepository) SetActive(ctx context.Context, userID string, active bool) error {
	result, err := r.db.DB.ExecContext(ctx,
		`UPDATE users SET is_active = $1, updated_at = $2 WHERE id = $3`,
		active, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to set active flag: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user with id %s not found: %w", userID, ErrNotFound)
	}

	return nil
}

// SetRole changes a user's role
func (r *userRepository) SetRole(ctx context.Context, userID string, role domain.Role) error {
	result, err := r.db.DB.ExecContext(ctx,
		`UPDATE users SET role = $1, updated_at = $2 WHERE id = $3`,
		role, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to set role: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user with id %s not found: %w", userID, ErrNotFound)
	}

	return nil
}

// List returns all users ordered by creation time
func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at`, userColumns)

	rows, err := r.db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user := &domain.User{}
		var lastLoginAt sql.NullTime

		err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Username,
			&user.HouseNumber,
			&user.Phone,
			&user.Address,
			&user.Role,
			&user.IsActive,
			&user.PasswordHash,
			&user.LineID,
			&user.Email,
			&user.Image,
			&user.ProfileComplete,
			&user.CreatedAt,
			&user.UpdatedAt,
			&lastLoginAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		if lastLoginAt.Valid {
			user.LastLoginAt = &lastLoginAt.Time
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/CoolVinz/village-shop-sub001/internal/domain"
	"github.com/CoolVinz/village-shop-sub001/pkg/database"
)

// shopRepository implements ShopRepository interface
type shopRepository struct {
	db *database.Postgres
}

// NewShopRepository creates a new shop repository
func NewShopRepository(db *database.Postgres) ShopRepository {
	return &shopRepository{db: db}
}

const shopColumns = `id, owner_id, name, description, image, is_open, created_at, updated_at`

// Create creates a new shop
func (r *shopRepository) Create(ctx context.Context, shop *domain.Shop) error {
	query := `
		INSERT INTO shops (id, owner_id, name, description, image, is_open, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if shop.ID == "" {
		shop.ID = uuid.New().String()
	}

	now := time.Now()
	if shop.CreatedAt.IsZero() {
		shop.CreatedAt = now
	}
	if shop.UpdatedAt.IsZero() {
		shop.UpdatedAt = now
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		shop.ID,
		shop.OwnerID,
		shop.Name,
		shop.Description,
		shop.Image,
		shop.IsOpen,
		shop.CreatedAt,
		shop.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create shop: %w", err)
	}

	return nil
}

// GetByID retrieves a shop by ID
func (r *shopRepository) GetByID(ctx context.Context, id string) (*domain.Shop, error) {
	query := fmt.Sprintf(`SELECT %s FROM shops WHERE id = $1`, shopColumns)

	shop := &domain.Shop{}
	err := r.db.DB.QueryRowContext(ctx, query, id).Scan(
		&shop.ID,
		&shop.OwnerID,
		&shop.Name,
		&shop.Description,
		&shop.Image,
		&shop.IsOpen,
		&shop.CreatedAt,
		&shop.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("shop with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get shop by id: %w", err)
	}

	return shop, nil
}

// List returns all shops ordered by creation time
func (r *shopRepository) List(ctx context.Context) ([]*domain.Shop, error) {
	query := fmt.Sprintf(`SELECT %s FROM shops ORDER BY created_at`, shopColumns)

	rows, err := r.db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list shops: %w", err)
	}
	defer rows.Close()

	var shops []*domain.Shop
	for rows.Next() {
		shop := &domain.Shop{}
		err := rows.Scan(
			&shop.ID,
			&shop.OwnerID,
			&shop.Name,
			&shop.Description,
			&shop.Image,
			&shop.IsOpen,
			&shop.CreatedAt,
			&shop.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shop: %w", err)
		}
		shops = append(shops, shop)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shops: %w", err)
	}

	return shops, nil
}

// Update updates an existing shop
func (r *shopRepository) Update(ctx context.Context, shop *domain.Shop) error {
	query := `
		UPDATE shops
		SET name = $2, description = $3, image = $4, is_open = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.DB.ExecContext(ctx, query,
		shop.ID,
		shop.Name,
		shop.Description,
		shop.Image,
		shop.IsOpen,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update shop: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("shop with id %s not found: %w", shop.ID, ErrNotFound)
	}

	return nil
}

// Delete removes a shop and, via cascade, its products
func (r *shopRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM shops WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shop: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("shop with id %s not found: %w", id, ErrNotFound)
	}

	return nil
}

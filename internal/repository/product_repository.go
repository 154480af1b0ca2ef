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

// productRepository implements ProductRepository interface
type productRepository struct {
	db *database.Postgres
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *database.Postgres) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, shop_id, owner_id, name, description, image, price_satang,
		stock, is_available, created_at, updated_at`

// Create creates a new product
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, shop_id, owner_id, name, description, image, price_satang,
			stock, is_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	if product.ID == "" {
		product.ID = uuid.New().String()
	}

	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	if product.UpdatedAt.IsZero() {
		product.UpdatedAt = now
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		product.ID,
		product.ShopID,
		product.OwnerID,
		product.Name,
		product.Description,
		product.Image,
		product.PriceSatang,
		product.Stock,
		product.IsAvailable,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func scanProduct(scan func(dest ...any) error) (*domain.Product, error) {
	product := &domain.Product{}
	err := scan(
		&product.ID,
		&product.ShopID,
		&product.OwnerID,
		&product.Name,
		&product.Description,
		&product.Image,
		&product.PriceSatang,
		&product.Stock,
		&product.IsAvailable,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID retrieves a product by ID
func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	product, err := scanProduct(r.db.DB.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by id: %w", err)
	}

	return product, nil
}

// ListByShop returns all products belonging to a shop
func (r *productRepository) ListByShop(ctx context.Context, shopID string) ([]*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE shop_id = $1 ORDER BY created_at`, productColumns)

	rows, err := r.db.DB.QueryContext(ctx, query, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		product, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// Update updates an existing product
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, image = $4, price_satang = $5,
			stock = $6, is_available = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.DB.ExecContext(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Image,
		product.PriceSatang,
		product.Stock,
		product.IsAvailable,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("product with id %s not found: %w", product.ID, ErrNotFound)
	}

	return nil
}

// Delete removes a product
func (r *productRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("product with id %s not found: %w", id, ErrNotFound)
	}

	return nil
}

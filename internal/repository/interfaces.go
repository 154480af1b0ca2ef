package repository

import (
	"context"

	"github.com/CoolVinz/village-shop-sub001/internal/domain"
)

// UserRepository defines methods for user operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByLineID(ctx context.Context, lineID string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateLastLogin(ctx context.Context, userID string) error
	SetActive(ctx context.Context, userID string, active bool) error
	SetRole(ctx context.Context, userID string, role domain.Role) error
	List(ctx context.Context) ([]*domain.User, error)
}

// ShopRepository defines methods for shop operations
type ShopRepository interface {
	Create(ctx context.Context, shop *domain.Shop) error
	GetByID(ctx context.Context, id string) (*domain.Shop, error)
	List(ctx context.Context) ([]*domain.Shop, error)
	Update(ctx context.Context, shop *domain.Shop) error
	Delete(ctx context.Context, id string) error
}

// ProductRepository defines methods for product operations
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	ListByShop(ctx context.Context, shopID string) ([]*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
}

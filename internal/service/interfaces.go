package service

import (
	"context"

	"github.com/CoolVinz/village-shop-sub001/internal/domain"
	"github.com/CoolVinz/village-shop-sub001/internal/dto"
)

// AuthResult carries a freshly issued session token and the user it
// snapshots.
type AuthResult struct {
	Token     string
	ExpiresIn int
	User      *domain.User
}

// AuthService defines methods for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*AuthResult, error)
	CompleteProfile(ctx context.Context, userID string, req *dto.CompleteProfileRequest) (*AuthResult, error)
	GetUser(ctx context.Context, userID string) (*dto.UserResponse, error)
	ResolveSession(ctx context.Context, token string) (*Identity, error)
}

// LineService implements the external identity bridge against LINE
type LineService interface {
	AuthURL(ctx context.Context) (string, error)
	HandleCallback(ctx context.Context, code, state string) (*AuthResult, error)
}

// ShopService defines shop and product operations with the
// authorization gate applied
type ShopService interface {
	CreateShop(ctx context.Context, identity *Identity, req *dto.CreateShopRequest) (*domain.Shop, error)
	GetShop(ctx context.Context, id string) (*domain.Shop, error)
	ListShops(ctx context.Context) ([]*domain.Shop, error)
	UpdateShop(ctx context.Context, identity *Identity, id string, req *dto.UpdateShopRequest) (*domain.Shop, error)
	DeleteShop(ctx context.Context, identity *Identity, id string) error

	CreateProduct(ctx context.Context, identity *Identity, shopID string, req *dto.CreateProductRequest) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context, shopID string) ([]*domain.Product, error)
	UpdateProduct(ctx context.Context, identity *Identity, id string, req *dto.UpdateProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, identity *Identity, id string) error
}

// AdminService defines user management operations (ADMIN only routes;
// the role check itself happens at the middleware boundary)
type AdminService interface {
	ListUsers(ctx context.Context) ([]*dto.UserResponse, error)
	SetUserRole(ctx context.Context, userID string, role domain.Role) error
	DeactivateUser(ctx context.Context, userID string) error
}

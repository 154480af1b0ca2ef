package service

import (
	"context"
	"fmt"

	"github.com/CoolVinz/village-shop-sub001/internal/domain"
	"github.com/CoolVinz/village-shop-sub001/internal/dto"
	"github.com/CoolVinz/village-shop-sub001/internal/repository"
)

var vendorRoles = []domain.Role{domain.RoleVendor, domain.RoleAdmin}

// shopService implements ShopService. Every mutation goes through the
// authorization gate; reads are public.
type shopService struct {
	shopRepo    repository.ShopRepository
	productRepo repository.ProductRepository
}

// NewShopService creates a new shop service
func NewShopService(shopRepo repository.ShopRepository, productRepo repository.ProductRepository) ShopService {
	return &shopService{
		shopRepo:    shopRepo,
		productRepo: productRepo,
	}
}

// CreateShop creates a storefront owned by the acting vendor
func (s *shopService) CreateShop(ctx context.Context, identity *Identity, req *dto.CreateShopRequest) (*domain.Shop, error) {
	if err := Authorize(identity, vendorRoles, ""); err != nil {
		return nil, err
	}

	shop := &domain.Shop{
		OwnerID:     identity.UserID,
		Name:        req.Name,
		Description: optional(req.Description),
		Image:       optional(req.Image),
		IsOpen:      true,
	}

	if err := s.shopRepo.Create(ctx, shop); err != nil {
		return nil, fmt.Errorf("failed to create shop: %w", err)
	}

	return shop, nil
}

// GetShop retrieves a shop by id
func (s *shopService) GetShop(ctx context.Context, id string) (*domain.Shop, error) {
	return s.shopRepo.GetByID(ctx, id)
}

// ListShops returns all shops
func (s *shopService) ListShops(ctx context.Context) ([]*domain.Shop, error) {
	return s.shopRepo.List(ctx)
}

// UpdateShop mutates a shop; requires ownership or ADMIN
func (s *shopService) UpdateShop(ctx context.Context, identity *Identity, id string, req *dto.UpdateShopRequest) (*domain.Shop, error) {
	shop, err := s.shopRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := Authorize(identity, vendorRoles, shop.OwnerID); err != nil {
		return nil, err
	}

	shop.Name = req.Name
	shop.Description = optional(req.Description)
	shop.Image = optional(req.Image)
	if req.IsOpen != nil {
		shop.IsOpen = *req.IsOpen
	}

	if err := s.shopRepo.Update(ctx, shop); err != nil {
		return nil, fmt.Errorf("failed to update shop: %w", err)
	}

	return shop, nil
}

// DeleteShop removes a shop; requires ownership or ADMIN
func (s *shopService) DeleteShop(ctx context.Context, identity *Identity, id string) error {
	shop, err := s.shopRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := Authorize(identity, vendorRoles, shop.OwnerID); err != nil {
		return err
	}

	return s.shopRepo.Delete(ctx, id)
}

// CreateProduct adds a product to a shop; requires shop ownership or ADMIN
func (s *shopService) CreateProduct(ctx context.Context, identity *Identity, shopID string, req *dto.CreateProductRequest) (*domain.Product, error) {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	if err := Authorize(identity, vendorRoles, shop.OwnerID); err != nil {
		return nil, err
	}

	product := &domain.Product{
		ShopID:      shop.ID,
		OwnerID:     shop.OwnerID,
		Name:        req.Name,
		Description: optional(req.Description),
		Image:       optional(req.Image),
		PriceSatang: req.PriceSatang,
		Stock:       req.Stock,
		IsAvailable: true,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// GetProduct retrieves a product by id
func (s *shopService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

// ListProducts returns all products of a shop
func (s *shopService) ListProducts(ctx context.Context, shopID string) ([]*domain.Product, error) {
	if _, err := s.shopRepo.GetByID(ctx, shopID); err != nil {
		return nil, err
	}
	return s.productRepo.ListByShop(ctx, shopID)
}

// UpdateProduct mutates a product; requires ownership or ADMIN
func (s *shopService) UpdateProduct(ctx context.Context, identity *Identity, id string, req *dto.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := Authorize(identity, vendorRoles, product.OwnerID); err != nil {
		return nil, err
	}

	product.Name = req.Name
	product.Description = optional(req.Description)
	product.Image = optional(req.Image)
	product.PriceSatang = req.PriceSatang
	product.Stock = req.Stock
	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

// DeleteProduct removes a product; requires ownership or ADMIN
func (s *shopService) DeleteProduct(ctx context.Context, identity *Identity, id string) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := Authorize(identity, vendorRoles, product.OwnerID); err != nil {
		return err
	}

	return s.productRepo.Delete(ctx, id)
}

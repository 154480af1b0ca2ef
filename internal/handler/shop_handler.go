package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CoolVinz/village-shop-sub001/internal/dto"
	"github.com/CoolVinz/village-shop-sub001/internal/service"
)

// ShopHandler handles shop and product CRUD. Ownership decisions live
// in the service's authorization gate, not here.
type ShopHandler struct {
	shopService service.ShopService
}

// NewShopHandler creates a new shop handler
func NewShopHandler(shopService service.ShopService) *ShopHandler {
	return &ShopHandler{shopService: shopService}
}

// ListShops returns all shops
func (h *ShopHandler) ListShops(c *gin.Context) {
	shops, err := h.shopService.ListShops(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shops": shops})
}

// GetShop returns one shop
func (h *ShopHandler) GetShop(c *gin.Context) {
	shop, err := h.shopService.GetShop(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shop": shop})
}

// CreateShop creates a storefront for the acting vendor
func (h *ShopHandler) CreateShop(c *gin.Context) {
	var req dto.CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	shop, err := h.shopService.CreateShop(c.Request.Context(), identityFrom(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"shop": shop})
}

// UpdateShop mutates a shop (owner or admin)
func (h *ShopHandler) UpdateShop(c *gin.Context) {
	var req dto.UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	shop, err := h.shopService.UpdateShop(c.Request.Context(), identityFrom(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shop": shop})
}

// DeleteShop removes a shop (owner or admin)
func (h *ShopHandler) DeleteShop(c *gin.Context) {
	if err := h.shopService.DeleteShop(c.Request.Context(), identityFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Shop deleted"})
}

// ListProducts returns a shop's products
func (h *ShopHandler) ListProducts(c *gin.Context) {
	products, err := h.shopService.ListProducts(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// CreateProduct adds a product to a shop (shop owner or admin)
func (h *ShopHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	product, err := h.shopService.CreateProduct(c.Request.Context(), identityFrom(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// GetProduct returns one product
func (h *ShopHandler) GetProduct(c *gin.Context) {
	product, err := h.shopService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// UpdateProduct mutates a product (owner or admin)
func (h *ShopHandler) UpdateProduct(c *gin.Context) {
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	product, err := h.shopService.UpdateProduct(c.Request.Context(), identityFrom(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// DeleteProduct removes a product (owner or admin)
func (h *ShopHandler) DeleteProduct(c *gin.Context) {
	if err := h.shopService.DeleteProduct(c.Request.Context(), identityFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Product deleted"})
}

package dto

// RegisterRequest represents a registration request. Username must
// equal HouseNumber; the handler rejects a mismatch before the service
// is called.
type RegisterRequest struct {
	Name        string `json:"name" binding:"required"`
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required,min=6"`
	HouseNumber string `json:"houseNumber" binding:"required"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Role        string `json:"role"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CompleteProfileRequest finishes a LINE-created account. HouseNumber
// becomes the username.
type CompleteProfileRequest struct {
	HouseNumber string `json:"houseNumber" binding:"required"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Role        string `json:"role"`
}

// UpdateRoleRequest is the admin role-change payload.
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// CreateShopRequest creates a storefront for the acting vendor.
type CreateShopRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// UpdateShopRequest mutates an existing shop.
type UpdateShopRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	IsOpen      *bool  `json:"isOpen"`
}

// CreateProductRequest adds a product to a shop.
type CreateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	PriceSatang int64  `json:"priceSatang" binding:"required,min=0"`
	Stock       int    `json:"stock" binding:"min=0"`
}

// UpdateProductRequest mutates an existing product.
type UpdateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	PriceSatang int64  `json:"priceSatang" binding:"required,min=0"`
	Stock       int    `json:"stock" binding:"min=0"`
	IsAvailable *bool  `json:"isAvailable"`
}

package repository

import (
	"github.com/CoolVinz/village-shop-sub001/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	User    UserRepository
	Shop    ShopRepository
	Product ProductRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		User:    NewUserRepository(db),
		Shop:    NewShopRepository(db),
		Product: NewProductRepository(db),
	}
}

package domain

import "time"

// Shop is a vendor storefront. OwnerID is the vendor's user id and is
// what the ownership rule checks against.
type Shop struct {
	ID          string    `json:"id" db:"id"`
	OwnerID     string    `json:"owner_id" db:"owner_id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	Image       *string   `json:"image" db:"image"`
	IsOpen      bool      `json:"is_open" db:"is_open"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Product belongs to a shop. OwnerID duplicates the shop owner so a
// mutation can be authorized with a single row read.
type Product struct {
	ID          string    `json:"id" db:"id"`
	ShopID      string    `json:"shop_id" db:"shop_id"`
	OwnerID     string    `json:"owner_id" db:"owner_id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	Image       *string   `json:"image" db:"image"`
	PriceSatang int64     `json:"price_satang" db:"price_satang"`
	Stock       int       `json:"stock" db:"stock"`
	IsAvailable bool      `json:"is_available" db:"is_available"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

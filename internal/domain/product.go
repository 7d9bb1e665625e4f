package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a product in the catalog
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Price       float64   `json:"price" db:"price"`
	Category    *string   `json:"category" db:"category"`
	Description string    `json:"description" db:"description"`
	Colors      []string  `json:"colors" db:"colors"`
	Images      []string  `json:"images" db:"images"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Category represents a product category. The lowercase name is its identity.
type Category struct {
	Name string `json:"name" db:"name"`
}

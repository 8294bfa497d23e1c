package domain

import (
	"context"
	"time"
)

// Brand represents a product brand
type Brand struct {
	ID          uint      `json:"brandId" gorm:"column:brand_id;primaryKey"`
	Name        string    `json:"brandName" gorm:"column:brand_name;size:255;not null"`
	Slug        string    `json:"slug" gorm:"size:255;not null;uniqueIndex"`
	Description string    `json:"description" gorm:"size:1000"`
	LogoURL     string    `json:"logoUrl" gorm:"size:500"`
	IsActive    bool      `json:"isActive" gorm:"default:true;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName specifies the table name
func (Brand) TableName() string {
	return "brands"
}

// BrandRepository defines the contract for brand data access
type BrandRepository interface {
	// ListActive returns active brands ordered by name
	ListActive(ctx context.Context) ([]Brand, error)
	FindByID(ctx context.Context, id uint) (*Brand, error)
}

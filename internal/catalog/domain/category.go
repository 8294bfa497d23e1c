package domain

import (
	"context"
	"time"
)

// Category represents a product category. Categories form a tree through
// ParentID.
type Category struct {
	ID           uint      `json:"categoryId" gorm:"column:category_id;primaryKey"`
	ParentID     *uint     `json:"parentId" gorm:"index"`
	Name         string    `json:"categoryName" gorm:"column:category_name;size:255;not null"`
	Slug         string    `json:"slug" gorm:"size:255;not null;uniqueIndex"`
	Description  string    `json:"description" gorm:"size:1000"`
	ImageURL     string    `json:"imageUrl" gorm:"size:500"`
	DisplayOrder int       `json:"displayOrder" gorm:"default:0;index"`
	IsActive     bool      `json:"isActive" gorm:"default:true;index"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName specifies the table name
func (Category) TableName() string {
	return "categories"
}

// CategoryRepository defines the contract for category data access
type CategoryRepository interface {
	// ListActive returns active categories ordered by display order, then name
	ListActive(ctx context.Context) ([]Category, error)
	FindByID(ctx context.Context, id uint) (*Category, error)
}

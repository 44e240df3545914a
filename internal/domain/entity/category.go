package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultCategoryEmoji is shown for categories created without one.
const DefaultCategoryEmoji = "📦"

// Category groups products for display
type Category struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CategoryCode     string     `gorm:"size:50;uniqueIndex;not null" json:"category_code"`
	CategoryName     string     `gorm:"size:255;uniqueIndex;not null" json:"category_name"`
	Description      string     `gorm:"type:text" json:"description"`
	Emoji            string     `gorm:"size:16" json:"emoji"`
	Image            string     `gorm:"size:500" json:"image"`
	DisplayOrder     int        `gorm:"not null;default:0;index" json:"display_order"`
	ParentCategoryID *uuid.UUID `gorm:"type:uuid;index" json:"parent_category_id,omitempty"`
	IsActive         bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Setting is a key/value application setting. Value holds arbitrary JSON.
type Setting struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Key       string          `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value     json.RawMessage `gorm:"type:jsonb;serializer:json" json:"value"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new setting
func (s *Setting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Setting model
func (Setting) TableName() string {
	return "settings"
}

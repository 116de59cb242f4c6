package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel is embedded by every persisted entity.
// IDs are UUID strings so the postgres and mongo stores share one identifier format.
type BaseModel struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns an ID when the caller did not.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// NewID returns a fresh identifier for stores that do not run GORM hooks.
func NewID() string {
	return uuid.NewString()
}

// IsValidID reports whether id has the UUID shape used for primary keys.
func IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

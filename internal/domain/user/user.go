package user

import (
	"time"

	"github.com/google/uuid"
)

type AppUser struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email    string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	FullName string    `gorm:"column:full_name" json:"full_name"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (AppUser) TableName() string { return "app_user" }

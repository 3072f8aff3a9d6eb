package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Email     string `gorm:"size:180;not null;uniqueIndex" json:"email"`
	Password  string `gorm:"size:255;not null" json:"-"`
	Role      string `gorm:"size:20;default:'customer';not null" json:"role"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// HasRole reports whether u carries role. A nil user has no roles.
func (u *User) HasRole(role string) bool {
	return u != nil && u.Role == role
}

func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

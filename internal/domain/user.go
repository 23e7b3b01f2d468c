package domain

import "time"

type UserRole string

const (
	RoleGuest      UserRole = "guest"
	RoleHotelOwner UserRole = "hotel_owner"
	RoleAdmin      UserRole = "admin"
)

type User struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;type:varchar(200);not null" json:"email" validate:"required,email"`
	PasswordHash string    `gorm:"type:varchar(128);not null" json:"-"`
	Name         string    `gorm:"type:varchar(120)" json:"name"`
	Phone        string    `gorm:"type:varchar(32)" json:"phone,omitempty"`
	Role         UserRole  `gorm:"type:varchar(16);default:'guest'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

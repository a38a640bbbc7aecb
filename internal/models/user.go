package models

import "time"

// Address is a shipping address owned by a user. At most one address
// per user carries IsDefault = true; setting a new default clears the
// flag on all others.
type Address struct {
	ID          string `json:"id" validate:"omitempty,uuid"`
	FullName    string `json:"full_name" validate:"required,min=2,max=100"`
	Phone       string `json:"phone" validate:"required,min=6,max=20"`
	AddressLine string `json:"address_line" validate:"required,max=255"`
	City        string `json:"city" validate:"required,max=100"`
	State       string `json:"state" validate:"required,max=100"`
	Pincode     string `json:"pincode" validate:"required,max=12"`
	IsDefault   bool   `json:"is_default"`
}

// User represents a customer or admin account.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255)"` // Never serialized in responses
	Addresses    []Address `json:"addresses" gorm:"serializer:json"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

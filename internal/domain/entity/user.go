// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a login-capable account of the back-office or storefront.
// It is distinct from Customer: a customer record can exist without any User.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"` // Unique, always stored lowercase.
	PasswordHash string     `json:"-"`
	Name         string     `json:"name"`
	Role         string     `json:"role"` // Name of a Role document.
	Phone        string     `json:"phone,omitempty"`
	IsActive     bool       `json:"isActive"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// NormalizeEmail trims and lowercases an e-mail address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SessionData is the identity carried by the session cookie.
type SessionData struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	Name   string    `json:"name"`
}

// SessionFromUser builds the cookie identity for a user.
func SessionFromUser(user *User) SessionData {
	return SessionData{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Name:   user.Name,
	}
}

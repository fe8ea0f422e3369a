package entity

import (
	"time"

	"github.com/google/uuid"
)

// Segment classifies a customer's market.
type Segment string

const (
	SegmentResidential Segment = "residential"
	SegmentCommercial  Segment = "commercial"
	SegmentIndustrial  Segment = "industrial"
)

// IsValid checks if the Segment is a valid value.
func (s Segment) IsValid() bool {
	switch s {
	case SegmentResidential, SegmentCommercial, SegmentIndustrial:
		return true
	default:
		return false
	}
}

// Customer is a buyer record used by quotes, orders and invoices.
type Customer struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	CompanyName string    `json:"companyName,omitempty"`
	GSTNumber   string    `json:"gstNumber,omitempty"`
	Segment     Segment   `json:"segment"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Address types. Every address is either a billing or a delivery address.
const (
	AddressTypeBilling  = "billing"
	AddressTypeDelivery = "delivery"
)

var (
	ErrEmptyAddressID       = errors.New("address ID cannot be empty")
	ErrEmptyAddressCity     = errors.New("address city cannot be empty")
	ErrEmptyAddressStreet   = errors.New("address street cannot be empty")
	ErrEmptyAddressZipCode  = errors.New("address zip code cannot be empty")
	ErrEmptyAddressCustomer = errors.New("address must belong to a customer")
)

// Address is a typed billing or delivery address owned by a customer.
type Address struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer_id"`
	CountryID  int       `json:"country_id"`
	City       string    `json:"city"`
	Street     string    `json:"street"`
	Apartment  string    `json:"apartment"`
	ZipCode    string    `json:"zip_code"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Company    string    `json:"company"`
	Gender     string    `json:"gender"`
	Phone      string    `json:"phone"`
	Type       string    `json:"type"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewAddress creates an address owned by the given customer.
// Returns an error if validation fails.
func NewAddress(customerID uuid.UUID, addressType string) (*Address, error) {
	now := time.Now().UTC()
	addr := &Address{
		ID:         uuid.New(),
		CustomerID: customerID,
		Type:       addressType,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if addr.Type != "" && addr.Type != AddressTypeBilling && addr.Type != AddressTypeDelivery {
		return nil, ErrInvalidAddressType
	}

	return addr, nil
}

// Validate checks if the Address has valid data.
func (a *Address) Validate() error {
	if a.ID == uuid.Nil {
		return ErrEmptyAddressID
	}
	if a.CustomerID == uuid.Nil {
		return ErrEmptyAddressCustomer
	}
	if a.City == "" {
		return ErrEmptyAddressCity
	}
	if a.Street == "" {
		return ErrEmptyAddressStreet
	}
	if a.ZipCode == "" {
		return ErrEmptyAddressZipCode
	}
	if a.Type != "" && a.Type != AddressTypeBilling && a.Type != AddressTypeDelivery {
		return ErrInvalidAddressType
	}
	return nil
}

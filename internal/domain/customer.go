package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyCustomerID = errors.New("customer ID cannot be empty")
)

// Customer holds the commerce-facing profile attached to a user or to an
// anonymous shopping session. Each user has at most one customer; an
// anonymous customer has a nil UserID until it is merged on login.
//
// Notes is a localized field resolved through the translation overlay.
type Customer struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Phone     string     `json:"phone"`
	Fax       string     `json:"fax"`
	Company   string     `json:"company"`
	Gender    string     `json:"gender"`
	BirthDate *time.Time `json:"birth_date"`
	Notes     string     `json:"notes,omitempty"`

	// Direct debit billing details.
	DirectDebit   bool   `json:"direct_debit"`
	Swift         string `json:"swift"`
	AccountNumber string `json:"account_number"`
	BLZ           string `json:"blz"`

	// Default address slots, filled by the address resource.
	BillingAddressID  *uuid.UUID `json:"billing_address_id"`
	DeliveryAddressID *uuid.UUID `json:"delivery_address_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCustomer creates a customer owned by the given user.
func NewCustomer(userID uuid.UUID) *Customer {
	now := time.Now().UTC()
	return &Customer{
		ID:        uuid.New(),
		UserID:    &userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewAnonymousCustomer creates a customer for an anonymous shopping session.
func NewAnonymousCustomer() *Customer {
	now := time.Now().UTC()
	return &Customer{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks if the Customer has valid data.
func (c *Customer) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCustomerID
	}
	if c.Email != "" && !validateEmailFormat(c.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// IsAnonymous reports whether the customer is not linked to a user.
func (c *Customer) IsAnonymous() bool {
	return c.UserID == nil
}

// SetAddress stores the address in the default slot for the given type.
// An empty addressType fills whichever slots are still empty, matching the
// behavior of address creation without an explicit type.
func (c *Customer) SetAddress(addressID uuid.UUID, addressType string) error {
	switch addressType {
	case AddressTypeBilling:
		c.BillingAddressID = &addressID
	case AddressTypeDelivery:
		c.DeliveryAddressID = &addressID
	case "":
		if c.BillingAddressID == nil {
			c.BillingAddressID = &addressID
		}
		if c.DeliveryAddressID == nil {
			c.DeliveryAddressID = &addressID
		}
	default:
		return ErrInvalidAddressType
	}
	return nil
}

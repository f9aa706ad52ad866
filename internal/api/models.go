package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/lindenshop/storefront-api/internal/service"
)

// LangParams is embedded in request bodies that may carry a "_lang"
// member overriding the negotiated locale.
type LangParams struct {
	Lang string `json:"_lang,omitempty"`
}

// RegisterRequest is the body of POST /accounts/sessions.
// Password is optional; a random one is generated when absent so the
// account can only be entered after a password reset.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=6,max=72"`
	LangParams
}

// SessionUpdateRequest is the body of PUT /accounts/sessions/{id}. The
// shape decides the action, checked in order: password reset completion
// (password+confirm_password+token), reset initiation (reset+email),
// then login (email+password).
type SessionUpdateRequest struct {
	Email           string `json:"email" validate:"omitempty,email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Token           string `json:"token"`
	Reset           bool   `json:"reset"`
	LangParams
}

// RefreshRequest is the body of POST /accounts/sessions/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// SessionResponse describes the current session.
type SessionResponse struct {
	ID          string     `json:"id"`
	IsAnonymous bool       `json:"is_anonymous"`
	UID         *uuid.UUID `json:"uid"`
	Locale      string     `json:"locale"`
}

// AuthResponse carries a fresh token pair after registration or login.
type AuthResponse struct {
	UserID uuid.UUID `json:"uid"`
	service.TokenPair
}

// ProfileUpdateRequest is the body of PUT /accounts/profiles/{id}.
// Names and contact details must always be present; phone, fax and
// company may be blank. The optional members leave the field untouched
// when omitted.
type ProfileUpdateRequest struct {
	FirstName       *string    `json:"first_name" validate:"required"`
	LastName        *string    `json:"last_name" validate:"required"`
	Phone           *string    `json:"phone" validate:"required"`
	Fax             *string    `json:"fax" validate:"required"`
	Company         *string    `json:"company" validate:"required"`
	Gender          *string    `json:"gender" validate:"omitempty,oneof=male female other"`
	BirthDate       *time.Time `json:"birth_date"`
	Password        *string    `json:"password"`
	ConfirmPassword *string    `json:"confirmation"`
	RoleID          *uuid.UUID `json:"role_id"`
	LangParams
}

// CustomerRequest is the body of POST /accounts/customers and
// PUT /accounts/customers/{id}. Name, email and gender must always be
// present; the remaining members leave the field untouched when omitted.
type CustomerRequest struct {
	Email         *string    `json:"email" validate:"required,email"`
	FirstName     *string    `json:"first_name" validate:"required"`
	LastName      *string    `json:"last_name" validate:"required"`
	Phone         *string    `json:"phone"`
	Fax           *string    `json:"fax"`
	Company       *string    `json:"company"`
	Gender        *string    `json:"gender" validate:"required,oneof=male female other"`
	BirthDate     *time.Time `json:"birth_date"`
	Notes         *string    `json:"notes"`
	DirectDebit   *bool      `json:"direct_debit"`
	Swift         *string    `json:"swift"`
	AccountNumber *string    `json:"account_number"`
	BLZ           *string    `json:"blz"`
	LangParams
}

// CustomerResponse adds the guest token handed to anonymous callers on
// customer creation.
type CustomerResponse struct {
	Customer   interface{} `json:"customer"`
	GuestToken string      `json:"guest_token,omitempty"`
}

// AddressRequest is the body of POST /accounts/addresses and
// PUT /accounts/addresses/{id}.
type AddressRequest struct {
	CountryID int    `json:"country_id" validate:"required"`
	City      string `json:"city" validate:"required"`
	Street    string `json:"street" validate:"required"`
	Apartment string `json:"apartment"`
	ZipCode   string `json:"zip_code" validate:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Gender    string `json:"gender" validate:"omitempty,oneof=male female other"`
	Phone     string `json:"phone"`
	Type      string `json:"type" validate:"omitempty,oneof=billing delivery"`
	LangParams
}

// RoleRequest is the body of POST /accounts/roles and
// PUT /accounts/roles/{id}.
type RoleRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	LangParams
}

// RoleUpdateRequest allows partial role updates.
type RoleUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	LangParams
}

// BankAccountRequest is the body of POST /accounts/bank_accounts and
// PUT /accounts/bank_accounts/{id}.
type BankAccountRequest struct {
	BankName string `json:"bank_name" validate:"required"`
	IBAN     string `json:"iban" validate:"required"`
	SWIFT    string `json:"swift" validate:"required"`
	LangParams
}

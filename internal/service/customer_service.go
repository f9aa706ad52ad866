package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lindenshop/storefront-api/internal/domain"
	"github.com/lindenshop/storefront-api/internal/i18n"
	"github.com/lindenshop/storefront-api/internal/store"
)

// CustomerParams carries a partial customer update. Nil fields are left
// untouched, so PUT bodies only change what they mention.
type CustomerParams struct {
	Email         *string
	FirstName     *string
	LastName      *string
	Phone         *string
	Fax           *string
	Company       *string
	Gender        *string
	BirthDate     *time.Time
	Notes         *string
	DirectDebit   *bool
	Swift         *string
	AccountNumber *string
	BLZ           *string
}

// CustomerService manages customers and their addresses.
type CustomerService interface {
	// EnsureCustomer creates or updates the caller's customer. A caller
	// with a user updates (or creates) the customer linked to that user;
	// a guest token updates its anonymous customer; with neither a fresh
	// anonymous customer is created. The second return value reports
	// whether a new customer row was created.
	EnsureCustomer(ctx context.Context, userID, guestCustomerID uuid.UUID, params CustomerParams) (*domain.Customer, bool, error)

	// GetCustomer retrieves a customer with its localized notes resolved.
	GetCustomer(ctx context.Context, id uuid.UUID) (*domain.Customer, error)

	// GetOwnCustomer retrieves the customer linked to the user.
	GetOwnCustomer(ctx context.Context, userID uuid.UUID) (*domain.Customer, error)

	// ListCustomers retrieves customers, most recent first.
	ListCustomers(ctx context.Context, limit, offset int) ([]*domain.Customer, error)

	// UpdateCustomer applies a partial update to an existing customer.
	UpdateCustomer(ctx context.Context, id uuid.UUID, params CustomerParams) (*domain.Customer, error)

	// DeleteCustomer removes a customer and, via cascade, its addresses
	// and translations.
	DeleteCustomer(ctx context.Context, id uuid.UUID) error

	// CreateAddress saves a new address for the customer and fills the
	// matching default address slot.
	CreateAddress(ctx context.Context, customerID uuid.UUID, address *domain.Address) error
}

// CustomerServiceImpl implements the CustomerService interface
type CustomerServiceImpl struct {
	customerStore store.CustomerStore
	addressStore  store.AddressStore
	translator    *i18n.Translator
	db            *sql.DB
	logger        *slog.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(
	customerStore store.CustomerStore,
	addressStore store.AddressStore,
	translator *i18n.Translator,
	db *sql.DB,
	logger *slog.Logger,
) CustomerService {
	return &CustomerServiceImpl{
		customerStore: customerStore,
		addressStore:  addressStore,
		translator:    translator,
		db:            db,
		logger:        logger.With("component", "customer_service"),
	}
}

// EnsureCustomer creates or updates the caller's customer.
func (s *CustomerServiceImpl) EnsureCustomer(
	ctx context.Context,
	userID, guestCustomerID uuid.UUID,
	params CustomerParams,
) (*domain.Customer, bool, error) {
	var customer *domain.Customer
	var created bool

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txCustomers := s.customerStore.WithTx(tx)

		var err error
		customer, created, err = s.resolveCustomer(ctx, txCustomers, userID, guestCustomerID)
		if err != nil {
			return err
		}

		applyCustomerParams(customer, params)
		customer.UpdatedAt = time.Now().UTC()
		if err := customer.Validate(); err != nil {
			return err
		}

		if created {
			if err := txCustomers.Create(ctx, customer); err != nil {
				return fmt.Errorf("failed to create customer: %w", err)
			}
		} else {
			if err := txCustomers.Update(ctx, customer); err != nil {
				return fmt.Errorf("failed to update customer: %w", err)
			}
		}

		if params.Notes != nil {
			if err := s.translator.WithTx(tx).SaveCustomerNotes(ctx, customer); err != nil {
				return fmt.Errorf("failed to save customer notes: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to ensure customer",
			"error", err,
			"user_id", userID)
		return nil, false, err
	}

	s.logger.Debug("customer ensured",
		"customer_id", customer.ID,
		"created", created)

	return customer, created, nil
}

// resolveCustomer finds the customer row the caller may write to, or
// prepares a fresh one.
func (s *CustomerServiceImpl) resolveCustomer(
	ctx context.Context,
	customers store.CustomerStore,
	userID, guestCustomerID uuid.UUID,
) (*domain.Customer, bool, error) {
	if userID != uuid.Nil {
		customer, err := customers.GetByUserID(ctx, userID)
		if err == nil {
			return customer, false, nil
		}
		if !errors.Is(err, store.ErrCustomerNotFound) {
			return nil, false, fmt.Errorf("failed to load customer: %w", err)
		}
		return domain.NewCustomer(userID), true, nil
	}

	if guestCustomerID != uuid.Nil {
		customer, err := customers.GetByID(ctx, guestCustomerID)
		if err == nil {
			if !customer.IsAnonymous() {
				// A guest token must not write to a user-owned customer.
				return nil, false, domain.ErrForbidden
			}
			return customer, false, nil
		}
		if !errors.Is(err, store.ErrCustomerNotFound) {
			return nil, false, fmt.Errorf("failed to load customer: %w", err)
		}
		// Stale guest token: fall through to a fresh anonymous customer.
	}

	return domain.NewAnonymousCustomer(), true, nil
}

// GetCustomer retrieves a customer with its localized notes resolved.
func (s *CustomerServiceImpl) GetCustomer(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	customer, err := s.customerStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.translator.LoadCustomerNotes(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetOwnCustomer retrieves the customer linked to the user.
func (s *CustomerServiceImpl) GetOwnCustomer(ctx context.Context, userID uuid.UUID) (*domain.Customer, error) {
	customer, err := s.customerStore.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.translator.LoadCustomerNotes(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// ListCustomers retrieves customers, most recent first.
func (s *CustomerServiceImpl) ListCustomers(ctx context.Context, limit, offset int) ([]*domain.Customer, error) {
	customers, err := s.customerStore.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	for _, customer := range customers {
		if err := s.translator.LoadCustomerNotes(ctx, customer); err != nil {
			return nil, err
		}
	}
	return customers, nil
}

// UpdateCustomer applies a partial update to an existing customer.
func (s *CustomerServiceImpl) UpdateCustomer(
	ctx context.Context,
	id uuid.UUID,
	params CustomerParams,
) (*domain.Customer, error) {
	var customer *domain.Customer

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txCustomers := s.customerStore.WithTx(tx)

		var err error
		customer, err = txCustomers.GetByID(ctx, id)
		if err != nil {
			return err
		}

		applyCustomerParams(customer, params)
		customer.UpdatedAt = time.Now().UTC()
		if err := customer.Validate(); err != nil {
			return err
		}

		if err := txCustomers.Update(ctx, customer); err != nil {
			return fmt.Errorf("failed to update customer: %w", err)
		}

		if params.Notes != nil {
			if err := s.translator.WithTx(tx).SaveCustomerNotes(ctx, customer); err != nil {
				return fmt.Errorf("failed to save customer notes: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return customer, nil
}

// DeleteCustomer removes a customer.
func (s *CustomerServiceImpl) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.customerStore.WithTx(tx).Delete(ctx, id)
	})
}

// CreateAddress saves a new address for the customer and fills the matching
// default address slot.
func (s *CustomerServiceImpl) CreateAddress(
	ctx context.Context,
	customerID uuid.UUID,
	address *domain.Address,
) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txCustomers := s.customerStore.WithTx(tx)
		txAddresses := s.addressStore.WithTx(tx)

		customer, err := txCustomers.GetByID(ctx, customerID)
		if err != nil {
			return err
		}

		address.CustomerID = customer.ID
		if err := txAddresses.Create(ctx, address); err != nil {
			return fmt.Errorf("failed to create address: %w", err)
		}

		if err := customer.SetAddress(address.ID, address.Type); err != nil {
			return err
		}
		customer.UpdatedAt = time.Now().UTC()
		if err := txCustomers.Update(ctx, customer); err != nil {
			return fmt.Errorf("failed to update customer address slots: %w", err)
		}
		return nil
	})
}

func applyCustomerParams(c *domain.Customer, p CustomerParams) {
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.FirstName != nil {
		c.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		c.LastName = *p.LastName
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Fax != nil {
		c.Fax = *p.Fax
	}
	if p.Company != nil {
		c.Company = *p.Company
	}
	if p.Gender != nil {
		c.Gender = *p.Gender
	}
	if p.BirthDate != nil {
		c.BirthDate = p.BirthDate
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	if p.DirectDebit != nil {
		c.DirectDebit = *p.DirectDebit
	}
	if p.Swift != nil {
		c.Swift = *p.Swift
	}
	if p.AccountNumber != nil {
		c.AccountNumber = *p.AccountNumber
	}
	if p.BLZ != nil {
		c.BLZ = *p.BLZ
	}
}

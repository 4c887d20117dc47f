package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/commercekit/payments-stripe/internal/domain"
	"github.com/commercekit/payments-stripe/pkg/database"
	"github.com/jackc/pgx/v5"
)

// PostgresCustomerRepository implements CustomerRepository against the order
// system's customer tables. The state/province and country references are
// denormalized in the same query so MapAddress never has to resolve them.
type PostgresCustomerRepository struct {
	db *database.PostgresDB
}

// NewPostgresCustomerRepository creates a PostgreSQL customer repository.
func NewPostgresCustomerRepository(db *database.PostgresDB) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{db: db}
}

// GetByID retrieves a customer and its shipping address by customer id.
func (r *PostgresCustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := `
		SELECT
			c.id, c.email,
			a.first_name, a.last_name, a.line1, a.city, a.zip_postal_code, a.phone_number,
			sp.name, sp.abbreviation,
			co.name, co.three_letter_iso_code
		FROM customers c
		LEFT JOIN addresses a ON a.id = c.shipping_address_id
		LEFT JOIN state_provinces sp ON sp.id = a.state_province_id
		LEFT JOIN countries co ON co.id = a.country_id
		WHERE c.id = $1`

	var (
		customer                                     domain.Customer
		firstName, lastName, line1, city, zip, phone *string
		spName, spAbbrev                             *string
		coName, coISO                                *string
	)

	err := r.db.QueryRow(ctx, query, id).Scan(
		&customer.ID, &customer.Email,
		&firstName, &lastName, &line1, &city, &zip, &phone,
		&spName, &spAbbrev,
		&coName, &coISO,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	if line1 != nil {
		addr := &domain.Address{
			FirstName:     deref(firstName),
			LastName:      deref(lastName),
			Line1:         deref(line1),
			City:          deref(city),
			ZipPostalCode: deref(zip),
			PhoneNumber:   deref(phone),
		}
		if spAbbrev != nil {
			addr.StateProvince = &domain.StateProvince{
				Name:         deref(spName),
				Abbreviation: deref(spAbbrev),
			}
		}
		if coISO != nil {
			addr.Country = &domain.Country{
				Name:               deref(coName),
				ThreeLetterISOCode: deref(coISO),
			}
		}
		customer.ShippingAddress = addr
	}

	return &customer, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

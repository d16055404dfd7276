package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/lakmicro/lending-engine/internal/domain"
)

type customerRepository struct {
	db *sqlx.DB
}

func NewCustomerRepository(db *sqlx.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (id, full_name, full_name_si, nic, phone, address, postal_code, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		customer.ID,
		customer.FullName,
		customer.FullNameSinhala,
		customer.NIC,
		customer.Phone,
		customer.Address,
		customer.PostalCode,
		customer.Status,
		customer.CreatedAt,
		customer.UpdatedAt,
	)

	return err
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	query := `
		SELECT id, full_name, full_name_si, nic, phone, address, postal_code, status, created_at, updated_at
		FROM customers
		WHERE id = $1
	`

	var customer domain.Customer
	err := r.db.GetContext(ctx, &customer, query, id)
	if err != nil {
		return nil, err
	}

	return &customer, nil
}

func (r *customerRepository) GetByNIC(ctx context.Context, nic string) (*domain.Customer, error) {
	query := `
		SELECT id, full_name, full_name_si, nic, phone, address, postal_code, status, created_at, updated_at
		FROM customers
		WHERE nic = $1
	`

	var customer domain.Customer
	err := r.db.GetContext(ctx, &customer, query, nic)
	if err != nil {
		return nil, err
	}

	return &customer, nil
}

func (r *customerRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `
		UPDATE customers
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, status)
	return err
}

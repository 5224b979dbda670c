package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"faresearch/internal/flight"
	"faresearch/pkg/db"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	Get(ctx context.Context, id int64) (*Booking, error)
}

const (
	insertBookingQuery = `INSERT INTO bookings
		(id, reference, supplier, price_id, supplier_ref, status, total_fare, contact_email, contact_phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	insertPassengerQuery = `INSERT INTO booking_passengers
		(booking_id, position, title, first_name, last_name, passenger_type, date_of_birth)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	selectBookingQuery = `SELECT id, reference, supplier, price_id, supplier_ref, status, total_fare, contact_email, contact_phone, created_at
		FROM bookings WHERE id = $1`

	selectPassengersQuery = `SELECT title, first_name, last_name, passenger_type, date_of_birth
		FROM booking_passengers WHERE booking_id = $1 ORDER BY position`
)

type PostgresRepository struct {
	db db.SQLExecutor
}

func NewPostgresRepository(executor db.SQLExecutor) *PostgresRepository {
	return &PostgresRepository{db: executor}
}

// Create stores the booking and its passengers in one transaction.
func (r *PostgresRepository) Create(ctx context.Context, b *Booking) error {
	return r.db.WithTransaction(ctx, sql.LevelReadCommitted, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, insertBookingQuery,
			b.ID, b.Reference, string(b.Supplier), b.PriceID, b.SupplierRef,
			b.Status, b.TotalFare, b.ContactEmail, b.ContactPhone, b.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}

		for i, p := range b.Passengers {
			_, err := tx.ExecContext(ctx, insertPassengerQuery,
				b.ID, i, p.Title, p.FirstName, p.LastName, string(p.Type), p.DateOfBirth,
			)
			if err != nil {
				return fmt.Errorf("insert passenger %d: %w", i, err)
			}
		}
		return nil
	})
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*Booking, error) {
	var (
		b        Booking
		supplier string
	)
	err := r.db.QueryRowContext(ctx, selectBookingQuery, id).Scan(
		&b.ID, &b.Reference, &supplier, &b.PriceID, &b.SupplierRef,
		&b.Status, &b.TotalFare, &b.ContactEmail, &b.ContactPhone, &b.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select booking: %w", err)
	}
	b.Supplier = flight.Supplier(supplier)

	rows, err := r.db.QueryContext(ctx, selectPassengersQuery, id)
	if err != nil {
		return nil, fmt.Errorf("select passengers: %w", err)
	}
	defer rows.Close()

	b.Passengers = []Passenger{}
	for rows.Next() {
		var (
			p     Passenger
			pType string
		)
		if err := rows.Scan(&p.Title, &p.FirstName, &p.LastName, &pType, &p.DateOfBirth); err != nil {
			return nil, fmt.Errorf("scan passenger: %w", err)
		}
		p.Type = PassengerType(pType)
		b.Passengers = append(b.Passengers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate passengers: %w", err)
	}

	return &b, nil
}

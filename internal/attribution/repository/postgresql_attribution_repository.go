// Package repository provides data persistence implementations for order
// attributions.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/analytics-relay/internal/attribution/domain"
	"github.com/allisson/analytics-relay/internal/database"

	apperrors "github.com/allisson/analytics-relay/internal/errors"
)

// PostgreSQLAttributionRepository handles attribution persistence for PostgreSQL
type PostgreSQLAttributionRepository struct {
	db *sql.DB
}

// NewPostgreSQLAttributionRepository creates a new PostgreSQLAttributionRepository
func NewPostgreSQLAttributionRepository(db *sql.DB) *PostgreSQLAttributionRepository {
	return &PostgreSQLAttributionRepository{
		db: db,
	}
}

// Create inserts the attribution for an order. The first identity recorded for
// an order wins; later inserts for the same order are silently ignored.
func (r *PostgreSQLAttributionRepository) Create(ctx context.Context, attribution *domain.OrderAttribution) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO order_attributions (id, order_id, client_id, created_at)
			  VALUES ($1, $2, $3, NOW())
			  ON CONFLICT (order_id) DO NOTHING`

	_, err := querier.ExecContext(ctx, query, attribution.ID, attribution.OrderID, attribution.ClientID)
	if err != nil {
		return apperrors.Wrap(err, "failed to create order attribution")
	}
	return nil
}

// GetByOrderID retrieves the attribution recorded for an order
func (r *PostgreSQLAttributionRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.OrderAttribution, error) {
	var attribution domain.OrderAttribution
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, order_id, client_id, created_at
			  FROM order_attributions WHERE order_id = $1`

	err := querier.QueryRowContext(ctx, query, orderID).Scan(
		&attribution.ID, &attribution.OrderID, &attribution.ClientID, &attribution.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAttributionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get order attribution")
	}

	return &attribution, nil
}

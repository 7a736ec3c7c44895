package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/analytics-relay/internal/attribution/domain"
	"github.com/allisson/analytics-relay/internal/database"

	apperrors "github.com/allisson/analytics-relay/internal/errors"
)

// MySQLAttributionRepository handles attribution persistence for MySQL
type MySQLAttributionRepository struct {
	db *sql.DB
}

// NewMySQLAttributionRepository creates a new MySQLAttributionRepository
func NewMySQLAttributionRepository(db *sql.DB) *MySQLAttributionRepository {
	return &MySQLAttributionRepository{
		db: db,
	}
}

// Create inserts the attribution for an order. The first identity recorded for
// an order wins; later inserts for the same order are silently ignored.
func (r *MySQLAttributionRepository) Create(ctx context.Context, attribution *domain.OrderAttribution) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT IGNORE INTO order_attributions (id, order_id, client_id, created_at)
			  VALUES (?, ?, ?, NOW())`

	_, err := querier.ExecContext(ctx, query, attribution.ID, attribution.OrderID, attribution.ClientID)
	if err != nil {
		return apperrors.Wrap(err, "failed to create order attribution")
	}
	return nil
}

// GetByOrderID retrieves the attribution recorded for an order
func (r *MySQLAttributionRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.OrderAttribution, error) {
	var attribution domain.OrderAttribution
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, order_id, client_id, created_at
			  FROM order_attributions WHERE order_id = ?`

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

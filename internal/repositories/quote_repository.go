package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stilessandgravel/backend/internal/models"
	"go.uber.org/zap"
)

type quoteRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewQuoteRepository creates a new instance of the QuoteRepository interface
func NewQuoteRepository(db *sql.DB, logger *zap.Logger) *quoteRepository {
	return &quoteRepository{
		db:     db,
		logger: logger,
	}
}

// Method Create is a QuoteRepository implementation for inserting a quote request row.
//
// Placeholders use "?" which both sqlite3 and MySQL drivers accept.
func (r *quoteRepository) Create(ctx context.Context, quote *models.QuoteRequest) (int64, error) {
	query := `
		INSERT INTO quote_requests (
			name, phone, email, address, city, material_needed,
			quantity_yards, preferred_delivery_date, notes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		quote.Name,
		quote.Phone,
		quote.Email,
		quote.Address,
		quote.City,
		quote.MaterialNeeded,
		quote.QuantityYards,
		quote.PreferredDeliveryDate,
		quote.Notes,
		quote.CreatedAt,
	)
	if err != nil {
		r.logger.Error("failed to insert quote request", zap.Error(err))
		return 0, fmt.Errorf("failed to insert quote request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get quote request id", zap.Error(err))
		return 0, fmt.Errorf("failed to get quote request id: %w", err)
	}

	return id, nil
}

// Method Count returns the number of stored quote requests
func (r *quoteRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM quote_requests`).Scan(&count)
	if err != nil {
		r.logger.Error("failed to count quote requests", zap.Error(err))
		return 0, fmt.Errorf("failed to count quote requests: %w", err)
	}
	return count, nil
}

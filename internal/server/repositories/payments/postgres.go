package payments

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sprov007/payserver/internal/common"
	"github.com/sprov007/payserver/internal/dbx"
	"github.com/sprov007/payserver/internal/server/models"
)

// pgUniqueViolation is the PostgreSQL error code for unique_violation.
const pgUniqueViolation = "23505"

// PostgresRepository implements payment storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists a payment request and fills in the creation time. A
// trx_id already on file hits the unique index and is reported as
// common.ErrDuplicateTransaction, the authoritative duplicate rejection.
func (r *PostgresRepository) Create(ctx context.Context, payment *models.Payment) (*models.Payment, error) {

	consignments, err := marshalConsignments(payment.Consignments)
	if err != nil {
		return nil, fmt.Errorf("consignments encode error: %w", err)
	}

	query :=
		`INSERT INTO payments (id, user_id, company, phone, service_password_hash, service_type,
		                       name, phone1, amount1, amount2, method, amount3, trx_id, consignments, status)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 RETURNING created_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		payment.ID, payment.UserID, payment.Company, payment.Phone, payment.ServicePasswordHash,
		payment.ServiceType, payment.Name, payment.Phone1, payment.Amount1, payment.Amount2,
		payment.Method, payment.Amount3, payment.TrxID, consignments, payment.Status,
	).Scan(&payment.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrDuplicateTransaction
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return payment, nil
}

// ExistsByTrxID reports whether a payment with the given transaction id is
// already on file.
func (r *PostgresRepository) ExistsByTrxID(ctx context.Context, trxID string) (bool, error) {
	query :=
		`SELECT EXISTS (SELECT 1 FROM payments WHERE trx_id = $1)
		 `

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, trxID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return exists, nil
}

// FindLatestByUser returns the user's most recent payment by creation time.
// The projection never includes the service password hash.
func (r *PostgresRepository) FindLatestByUser(ctx context.Context, userID string) (*models.Payment, error) {
	query :=
		`SELECT id, user_id, company, phone, service_type, name, phone1,
		        amount1, amount2, method, amount3, trx_id, consignments, status, created_at
		 FROM payments
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT 1
		 `

	payment := &models.Payment{}
	var consignments []byte
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&payment.ID, &payment.UserID, &payment.Company, &payment.Phone, &payment.ServiceType,
		&payment.Name, &payment.Phone1, &payment.Amount1, &payment.Amount2, &payment.Method,
		&payment.Amount3, &payment.TrxID, &consignments, &payment.Status, &payment.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if len(consignments) > 0 {
		if err := json.Unmarshal(consignments, &payment.Consignments); err != nil {
			return nil, fmt.Errorf("consignments decode error: %w", err)
		}
	}

	return payment, nil
}

// marshalConsignments encodes the consignment list for the jsonb column;
// an empty list is stored as NULL.
func marshalConsignments(items []models.Consignment) ([]byte, error) {
	if len(items) == 0 {
		return nil, nil
	}
	return json.Marshal(items)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// Package payments provides persistence for payment request records.
package payments

import (
	"context"

	"github.com/sprov007/payserver/internal/server/models"
)

// Repository is the payment record store contract.
//
// The unique index on trx_id is the authoritative duplicate rejection:
// ExistsByTrxID is only a best-effort pre-check and two concurrent
// submissions can both pass it, in which case Create reports the loser as
// common.ErrDuplicateTransaction.
type Repository interface {
	Create(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	ExistsByTrxID(ctx context.Context, trxID string) (bool, error)
	FindLatestByUser(ctx context.Context, userID string) (*models.Payment, error)
}

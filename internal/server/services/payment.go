package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sprov007/payserver/internal/common"
	"github.com/sprov007/payserver/internal/dbx"
	"github.com/sprov007/payserver/internal/server/models"
	"github.com/sprov007/payserver/internal/server/repositories/repomanager"
)

// PaymentService implements the payment submission flow: validate, hash the
// service password, run the duplicate pre-check, and persist with status
// Pending. The unique index on trx_id remains the authority on duplicates;
// the pre-check only narrows the race window.
type PaymentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewPaymentService constructs a PaymentService bound to the given pool.
func NewPaymentService(db *sql.DB, m repomanager.RepositoryManager) *PaymentService {
	return &PaymentService{db: db, repomanager: m}
}

// Submit validates sub and persists it as a Pending payment request owned
// by userID. Validation failures come back as *common.ValidationError; a
// transaction id already on file, whether caught by the pre-check or by the
// storage unique index, comes back as common.ErrDuplicateTransaction.
func (s *PaymentService) Submit(ctx context.Context, userID string, sub *PaymentSubmission) (*models.Payment, error) {
	v, err := ValidateSubmission(sub)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(v.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	payment := &models.Payment{
		ID:                  uuid.NewString(),
		UserID:              userID,
		Company:             v.Company,
		Phone:               v.Phone,
		ServicePasswordHash: hash,
		ServiceType:         v.ServiceType,
		Name:                v.Name,
		Phone1:              v.Phone1,
		Amount1:             v.Amount1,
		Amount2:             v.Amount2,
		Method:              v.Method,
		Amount3:             v.Amount3,
		TrxID:               v.TrxID,
		Consignments:        v.Consignments,
		Status:              models.StatusPending,
	}

	// Pre-check and insert share one connection; validation has already
	// completed before either runs.
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Payments(tx)

		exists, err := repo.ExistsByTrxID(ctx, v.TrxID)
		if err != nil {
			return err
		}
		if exists {
			return common.ErrDuplicateTransaction
		}

		_, err = repo.Create(ctx, payment)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateTransaction) {
			return nil, common.ErrDuplicateTransaction
		}
		return nil, common.ErrorInternal
	}

	return payment, nil
}

// LastPayment returns the most recent payment request submitted by userID,
// or common.ErrorNotFound when there is none.
func (s *PaymentService) LastPayment(ctx context.Context, userID string) (*models.Payment, error) {
	repo := s.repomanager.Payments(s.db)
	payment, err := repo.FindLatestByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}
	return payment, nil
}

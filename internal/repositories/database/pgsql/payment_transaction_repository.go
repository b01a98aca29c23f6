package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/settlement_engine/internal/apperrors"
	"github.com/SscSPs/settlement_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_engine/internal/core/ports/repositories"
	"github.com/SscSPs/settlement_engine/internal/models"
	"github.com/SscSPs/settlement_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const paymentTransactionColumns = `transaction_id, amount, currency_code, invoice_id, settlement_amount,
	settlement_currency_code, exchange_rate, exchange_rate_date, applied_at, metadata,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxPaymentTransactionRepository reads payment transactions and writes engine metadata.
type PgxPaymentTransactionRepository struct {
	BaseRepository
}

func newPgxPaymentTransactionRepository(pool *pgxpool.Pool) *PgxPaymentTransactionRepository {
	return &PgxPaymentTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PaymentTransactionRepositoryFacade = (*PgxPaymentTransactionRepository)(nil)

func scanPaymentTransaction(row pgx.Row) (models.PaymentTransaction, error) {
	var m models.PaymentTransaction
	err := row.Scan(
		&m.TransactionID, &m.Amount, &m.CurrencyCode, &m.InvoiceID, &m.SettlementAmount,
		&m.SettlementCurrencyCode, &m.ExchangeRate, &m.ExchangeRateDate, &m.AppliedAt, &m.Metadata,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// FindPaymentTransactionByID retrieves a payment transaction by ID.
func (r *PgxPaymentTransactionRepository) FindPaymentTransactionByID(ctx context.Context, transactionID string) (*domain.PaymentTransaction, error) {
	query := `SELECT ` + paymentTransactionColumns + ` FROM payment_transactions WHERE transaction_id = $1;`
	m, err := scanPaymentTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment transaction %s: %w", transactionID, err)
	}

	txn := mapping.ToDomainPaymentTransaction(m)
	return &txn, nil
}

// AppendMetadataEntry appends entry under key with the row locked.
func (r *PgxPaymentTransactionRepository) AppendMetadataEntry(ctx context.Context, transactionID, key string, entry map[string]any) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		var metadata map[string]any
		err := tx.QueryRow(ctx,
			`SELECT metadata FROM payment_transactions WHERE transaction_id = $1 FOR UPDATE;`,
			transactionID,
		).Scan(&metadata)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("failed to lock payment transaction %s: %w", transactionID, err)
		}

		metadata = domain.AppendMetadataEntry(metadata, key, entry)
		_, err = tx.Exec(ctx,
			`UPDATE payment_transactions SET metadata = $2 WHERE transaction_id = $1;`,
			transactionID, metadata,
		)
		if err != nil {
			return fmt.Errorf("failed to update metadata of payment transaction %s: %w", transactionID, err)
		}
		return nil
	})
}

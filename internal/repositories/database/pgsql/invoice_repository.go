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

const invoiceColumns = `invoice_id, currency_code, total_amount, amount_paid, amount_due, status, paid_date,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxInvoiceRepository reads invoices and performs the settlement write.
type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) *PgxInvoiceRepository {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var (
	_ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)
	_ portsrepo.SettlementRepository    = (*PgxInvoiceRepository)(nil)
)

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID, &m.CurrencyCode, &m.TotalAmount, &m.AmountPaid, &m.AmountDue, &m.Status, &m.PaidDate,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// FindInvoiceByID retrieves an invoice by ID.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`
	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}

	inv := mapping.ToDomainInvoice(m)
	return &inv, nil
}

// ApplyPayment locks the invoice, then the transaction, so concurrent
// applications against one invoice run one after another.
func (r *PgxInvoiceRepository) ApplyPayment(ctx context.Context, app domain.PaymentApplication, mutate func(*domain.Invoice) error) (*domain.Invoice, error) {
	var result domain.Invoice

	err := r.inTx(ctx, func(tx pgx.Tx) error {
		m, err := scanInvoice(tx.QueryRow(ctx,
			`SELECT `+invoiceColumns+` FROM invoices WHERE invoice_id = $1 FOR UPDATE;`, app.InvoiceID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return &apperrors.NotFoundError{Entity: "invoice", ID: app.InvoiceID}
			}
			return fmt.Errorf("failed to lock invoice %s: %w", app.InvoiceID, err)
		}

		var applied bool
		err = tx.QueryRow(ctx,
			`SELECT applied_at IS NOT NULL FROM payment_transactions WHERE transaction_id = $1 FOR UPDATE;`,
			app.TransactionID,
		).Scan(&applied)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return &apperrors.NotFoundError{Entity: "payment transaction", ID: app.TransactionID}
			}
			return fmt.Errorf("failed to lock payment transaction %s: %w", app.TransactionID, err)
		}
		if applied {
			return fmt.Errorf("transaction %s: %w", app.TransactionID, apperrors.ErrAlreadyApplied)
		}

		inv := mapping.ToDomainInvoice(m)
		if err := mutate(&inv); err != nil {
			return err
		}
		m = mapping.ToModelInvoice(inv)

		_, err = tx.Exec(ctx, `
			UPDATE invoices SET
				amount_paid = $2, amount_due = $3, status = $4, paid_date = $5,
				last_updated_at = $6, last_updated_by = $7
			WHERE invoice_id = $1;`,
			m.InvoiceID, m.AmountPaid, m.AmountDue, m.Status, m.PaidDate, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to update invoice %s: %w", m.InvoiceID, err)
		}

		if err := updateSettledTransaction(ctx, tx, app); err != nil {
			return err
		}

		result = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func updateSettledTransaction(ctx context.Context, tx pgx.Tx, app domain.PaymentApplication) error {
	patch := app.MetadataPatch
	if patch == nil {
		patch = map[string]any{}
	}

	var settlement domain.Settlement
	hasSettlement := app.Settlement != nil
	if hasSettlement {
		settlement = *app.Settlement
	}

	_, err := tx.Exec(ctx, `
		UPDATE payment_transactions SET
			settlement_amount        = CASE WHEN $2 THEN $3::numeric ELSE settlement_amount END,
			settlement_currency_code = CASE WHEN $2 THEN $4::varchar ELSE settlement_currency_code END,
			exchange_rate            = CASE WHEN $2 THEN $5::numeric ELSE exchange_rate END,
			exchange_rate_date       = CASE WHEN $2 THEN $6::timestamptz ELSE exchange_rate_date END,
			metadata                 = COALESCE(metadata, '{}'::jsonb) || $7::jsonb,
			invoice_id               = $8,
			applied_at               = $9,
			last_updated_at          = $9,
			last_updated_by          = $10
		WHERE transaction_id = $1;`,
		app.TransactionID, hasSettlement,
		settlement.Amount, settlement.CurrencyCode, settlement.ExchangeRate, settlement.RateDate,
		patch, app.InvoiceID, app.AppliedAt, domain.SystemUserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment transaction %s: %w", app.TransactionID, err)
	}
	return nil
}

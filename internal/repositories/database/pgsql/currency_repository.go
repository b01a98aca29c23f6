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

const currencyColumns = `currency_code, symbol, name, is_base_currency, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency data.
func newPgxCurrencyRepository(pool *pgxpool.Pool) *PgxCurrencyRepository {
	return &PgxCurrencyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

// SaveCurrency upserts a currency. Setting the base flag clears it on every
// other row in the same transaction; the partial unique index on
// is_base_currency rejects a concurrent second base.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	modelCurr := mapping.ToModelCurrency(currency)

	return r.inTx(ctx, func(tx pgx.Tx) error {
		if modelCurr.IsBaseCurrency {
			_, err := tx.Exec(ctx, `
				UPDATE currencies
				SET is_base_currency = FALSE, last_updated_at = $2, last_updated_by = $3
				WHERE is_base_currency AND currency_code <> $1;`,
				modelCurr.CurrencyCode, modelCurr.LastUpdatedAt, modelCurr.LastUpdatedBy,
			)
			if err != nil {
				return fmt.Errorf("failed to clear base currency flag: %w", err)
			}
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO currencies (`+currencyColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (currency_code) DO UPDATE SET
				symbol = EXCLUDED.symbol,
				name = EXCLUDED.name,
				is_base_currency = EXCLUDED.is_base_currency,
				is_active = EXCLUDED.is_active,
				last_updated_at = EXCLUDED.last_updated_at,
				last_updated_by = EXCLUDED.last_updated_by;`,
			modelCurr.CurrencyCode,
			modelCurr.Symbol,
			modelCurr.Name,
			modelCurr.IsBaseCurrency,
			modelCurr.IsActive,
			modelCurr.CreatedAt,
			modelCurr.CreatedBy,
			modelCurr.LastUpdatedAt,
			modelCurr.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to save currency %s: %w", modelCurr.CurrencyCode, err)
		}
		return nil
	})
}

func scanCurrency(row pgx.Row) (models.Currency, error) {
	var c models.Currency
	err := row.Scan(
		&c.CurrencyCode,
		&c.Symbol,
		&c.Name,
		&c.IsBaseCurrency,
		&c.IsActive,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	return c, err
}

// FindCurrencyByCode retrieves a currency by its 3-letter code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE currency_code = $1;`
	modelCurr, err := scanCurrency(r.Pool.QueryRow(ctx, query, currencyCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find currency by code %s: %w", currencyCode, err)
	}

	domainCurr := mapping.ToDomainCurrency(modelCurr)
	return &domainCurr, nil
}

// FindBaseCurrency retrieves the currency flagged as base.
func (r *PgxCurrencyRepository) FindBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE is_base_currency LIMIT 1;`
	modelCurr, err := scanCurrency(r.Pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find base currency: %w", err)
	}

	domainCurr := mapping.ToDomainCurrency(modelCurr)
	return &domainCurr, nil
}

// ListCurrencies retrieves all currencies.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies ORDER BY currency_code;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	modelCurrencies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Currency, error) {
		return scanCurrency(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan currencies: %w", err)
	}

	return mapping.ToDomainCurrencySlice(modelCurrencies), nil
}

package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/settlement_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_engine/internal/core/ports/repositories"
	"github.com/SscSPs/settlement_engine/internal/models"
	"github.com/SscSPs/settlement_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const exchangeRateColumns = `exchange_rate_id, base_currency_code, target_currency_code, rate, rate_type, provider,
	is_active, valid_from, valid_to, created_at, created_by, last_updated_at, last_updated_by`

// PgxExchangeRateRepository implements the exchange rate repository ports using pgxpool.
type PgxExchangeRateRepository struct {
	BaseRepository
}

func newPgxExchangeRateRepository(pool *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

func scanExchangeRate(row pgx.Row) (models.ExchangeRate, error) {
	var m models.ExchangeRate
	err := row.Scan(
		&m.ExchangeRateID, &m.BaseCurrencyCode, &m.TargetCurrencyCode, &m.Rate, &m.RateType, &m.Provider,
		&m.IsActive, &m.ValidFrom, &m.ValidTo, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// whereClause renders filter as a WHERE clause with positional arguments.
func whereClause(filter domain.ExchangeRateFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.BaseCurrencyCode != "" {
		add("base_currency_code = $%d", filter.BaseCurrencyCode)
	}
	if filter.TargetCurrencyCode != "" {
		add("target_currency_code = $%d", filter.TargetCurrencyCode)
	}
	if filter.ActiveOnly {
		conds = append(conds, "is_active")
	}
	if filter.EffectiveAt != nil {
		args = append(args, *filter.EffectiveAt)
		n := len(args)
		conds = append(conds, fmt.Sprintf("valid_from < $%d AND (valid_to IS NULL OR valid_to > $%d)", n, n))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *PgxExchangeRateRepository) queryRates(ctx context.Context, query string, args ...any) ([]domain.ExchangeRate, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	defer rows.Close()

	modelRates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExchangeRate, error) {
		return scanExchangeRate(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan exchange rates: %w", err)
	}
	return mapping.ToDomainExchangeRateSlice(modelRates), nil
}

// FindExchangeRates returns rows matching filter, most recently updated first.
func (r *PgxExchangeRateRepository) FindExchangeRates(ctx context.Context, filter domain.ExchangeRateFilter) ([]domain.ExchangeRate, error) {
	where, args := whereClause(filter)
	query := `SELECT ` + exchangeRateColumns + ` FROM exchange_rates` + where + ` ORDER BY last_updated_at DESC, created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	return r.queryRates(ctx, query, args...)
}

// ListExchangeRates pages through rows matching filter.
func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context, filter domain.ExchangeRateFilter, page, pageSize int) ([]domain.ExchangeRate, int, error) {
	where, args := whereClause(filter)

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM exchange_rates`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count exchange rates: %w", err)
	}

	offset := (page - 1) * pageSize
	if offset < 0 {
		return []domain.ExchangeRate{}, total, nil
	}
	args = append(args, pageSize, offset)
	query := fmt.Sprintf(`SELECT %s FROM exchange_rates%s ORDER BY last_updated_at DESC, created_at DESC LIMIT $%d OFFSET $%d`,
		exchangeRateColumns, where, len(args)-1, len(args))
	rates, err := r.queryRates(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return rates, total, nil
}

func insertExchangeRate(ctx context.Context, tx pgx.Tx, m models.ExchangeRate) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO exchange_rates (`+exchangeRateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`,
		m.ExchangeRateID, m.BaseCurrencyCode, m.TargetCurrencyCode, m.Rate, m.RateType, m.Provider,
		m.IsActive, m.ValidFrom, m.ValidTo, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert exchange rate %s->%s: %w", m.BaseCurrencyCode, m.TargetCurrencyCode, err)
	}
	return nil
}

// SaveExchangeRate inserts rate, optionally deactivating the other active rows of its pair.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate, deactivateOthers bool) error {
	modelRate := mapping.ToModelExchangeRate(rate)

	return r.inTx(ctx, func(tx pgx.Tx) error {
		if deactivateOthers {
			_, err := tx.Exec(ctx, `
				UPDATE exchange_rates
				SET is_active = FALSE, last_updated_at = $3, last_updated_by = $4
				WHERE base_currency_code = $1 AND target_currency_code = $2 AND is_active;`,
				modelRate.BaseCurrencyCode, modelRate.TargetCurrencyCode, modelRate.LastUpdatedAt, modelRate.LastUpdatedBy,
			)
			if err != nil {
				return fmt.Errorf("failed to deactivate previous exchange rates: %w", err)
			}
		}
		return insertExchangeRate(ctx, tx, modelRate)
	})
}

// UpsertActiveExchangeRate refreshes the newest active row of the pair in
// place, or inserts rate when the pair has no active row.
func (r *PgxExchangeRateRepository) UpsertActiveExchangeRate(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error) {
	modelRate := mapping.ToModelExchangeRate(rate)
	var saved domain.ExchangeRate

	err := r.inTx(ctx, func(tx pgx.Tx) error {
		updated, err := scanExchangeRate(tx.QueryRow(ctx, `
			UPDATE exchange_rates SET
				rate = $3, rate_type = $4, provider = $5, valid_from = $6, valid_to = $7,
				last_updated_at = $8, last_updated_by = $9
			WHERE exchange_rate_id = (
				SELECT exchange_rate_id FROM exchange_rates
				WHERE base_currency_code = $1 AND target_currency_code = $2 AND is_active
				ORDER BY last_updated_at DESC, created_at DESC
				LIMIT 1
				FOR UPDATE
			)
			RETURNING `+exchangeRateColumns+`;`,
			modelRate.BaseCurrencyCode, modelRate.TargetCurrencyCode,
			modelRate.Rate, modelRate.RateType, modelRate.Provider, modelRate.ValidFrom, modelRate.ValidTo,
			modelRate.LastUpdatedAt, modelRate.LastUpdatedBy,
		))
		if err == nil {
			saved = mapping.ToDomainExchangeRate(updated)
			return nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("failed to update active exchange rate: %w", err)
		}

		if err := insertExchangeRate(ctx, tx, modelRate); err != nil {
			return err
		}
		saved = rate
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

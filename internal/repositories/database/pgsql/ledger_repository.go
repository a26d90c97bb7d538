package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/abecha/sms_forfait_app/internal/apperrors"
	"github.com/abecha/sms_forfait_app/internal/core/domain"
	portsrepo "github.com/abecha/sms_forfait_app/internal/core/ports/repositories"
	"github.com/abecha/sms_forfait_app/internal/models"
	"github.com/abecha/sms_forfait_app/internal/utils/mapping"
	"github.com/abecha/sms_forfait_app/internal/utils/pagination"
)

type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(db *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryWithTx
var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

const ledgerColumns = `entry_id, company_id, subscription_id, campaign_id, initial, entree, sortie, comment, created_at, created_by, last_updated_at, last_updated_by`

func scanLedgerEntry(row pgx.Row) (*models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.CompanyID,
		&m.SubscriptionID,
		&m.CampaignID,
		&m.Initial,
		&m.Credit,
		&m.Debit,
		&m.Comment,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// lockCompanyLedger takes a transaction-scoped advisory lock on the company.
// Every append goes through this lock, so two concurrent appends can never
// both chain off the same predecessor entry.
func lockCompanyLedger(ctx context.Context, tx pgx.Tx, companyID string) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1));`, companyID); err != nil {
		return fmt.Errorf("failed to lock ledger for company %s: %w", companyID, err)
	}
	return nil
}

// newestEntryTx reads the newest ledger entry of the company inside the
// transaction, or nil when the chain is empty.
func newestEntryTx(ctx context.Context, tx pgx.Tx, companyID string) (*domain.LedgerEntry, error) {
	query := `
        SELECT ` + ledgerColumns + `
        FROM ledger_entries
        WHERE company_id = $1
        ORDER BY created_at DESC, entry_id DESC
        LIMIT 1;
    `
	m, err := scanLedgerEntry(tx.QueryRow(ctx, query, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read newest ledger entry for company %s: %w", companyID, err)
	}
	entry := mapping.ToDomainLedgerEntry(*m)
	return &entry, nil
}

func insertEntryTx(ctx context.Context, tx pgx.Tx, m models.LedgerEntry) error {
	query := `
        INSERT INTO ledger_entries (entry_id, company_id, subscription_id, campaign_id, initial, entree, sortie, comment, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
    `
	_, err := tx.Exec(ctx, query,
		m.EntryID,
		m.CompanyID,
		m.SubscriptionID,
		m.CampaignID,
		m.Initial,
		m.Credit,
		m.Debit,
		m.Comment,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	return nil
}

// AppendCredit marks the pending subscription activated and appends the
// credit entry granting its offer's credits, all in one locked transaction.
func (r *PgxLedgerRepository) AppendCredit(ctx context.Context, subscription domain.Subscription, credits decimal.Decimal, activatedBy string) (*domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := lockCompanyLedger(ctx, tx, subscription.CompanyID); err != nil {
		return nil, err
	}

	// Flip the subscription only if it is still pending. A concurrent or
	// repeated activation sees zero rows here and stops. The validity window
	// set at purchase is left untouched.
	now := time.Now().UTC()
	tag, err := tx.Exec(ctx, `
        UPDATE subscriptions
        SET status = $2, activated_by = $3, last_updated_at = $4, last_updated_by = $3
        WHERE subscription_id = $1 AND status = $5;
    `, subscription.SubscriptionID, models.SubscriptionActivated, activatedBy, now, models.SubscriptionPending)
	if err != nil {
		return nil, fmt.Errorf("failed to activate subscription %s: %w", subscription.SubscriptionID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("subscription %s is not pending: %w", subscription.SubscriptionID, apperrors.ErrConflict)
	}

	prev, err := newestEntryTx(ctx, tx, subscription.CompanyID)
	if err != nil {
		return nil, err
	}

	entry := domain.NewCreditEntry(prev, subscription.CompanyID, subscription.SubscriptionID, credits)
	entry.EntryID = uuid.NewString()
	entry.Comment = subscription.Comment
	entry.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     activatedBy,
		LastUpdatedAt: now,
		LastUpdatedBy: activatedBy,
	}

	if err := insertEntryTx(ctx, tx, mapping.ToModelLedgerEntry(entry)); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &entry, nil
}

// AppendDebit persists the dispatch event and the debit entry charging its
// total cost, all in one locked transaction. The balance is re-verified under
// the lock.
func (r *PgxLedgerRepository) AppendDebit(ctx context.Context, event domain.DispatchEvent, createdBy string) (*domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := lockCompanyLedger(ctx, tx, event.CompanyID); err != nil {
		return nil, err
	}

	prev, err := newestEntryTx(ctx, tx, event.CompanyID)
	if err != nil {
		return nil, err
	}

	// An empty chain has nothing to debit, whatever the cost.
	if prev == nil {
		return nil, apperrors.NewInsufficientBalanceError(decimal.Zero, event.TotalCost)
	}
	balance := prev.Balance()
	if balance.LessThan(event.TotalCost) {
		return nil, apperrors.NewInsufficientBalanceError(balance, event.TotalCost)
	}

	now := time.Now().UTC()
	event.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     createdBy,
		LastUpdatedAt: now,
		LastUpdatedBy: createdBy,
	}
	if err := insertDispatchEventTx(ctx, tx, mapping.ToModelDispatchEvent(event)); err != nil {
		return nil, err
	}

	entry := domain.NewDebitEntry(*prev, event.CampaignID, event.TotalCost)
	entry.EntryID = uuid.NewString()
	entry.Comment = event.Comment
	entry.AuditFields = event.AuditFields

	if err := insertEntryTx(ctx, tx, mapping.ToModelLedgerEntry(entry)); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *PgxLedgerRepository) FindNewestEntry(ctx context.Context, companyID string) (*domain.LedgerEntry, error) {
	query := `
        SELECT ` + ledgerColumns + `
        FROM ledger_entries
        WHERE company_id = $1
        ORDER BY created_at DESC, entry_id DESC
        LIMIT 1;
    `
	m, err := scanLedgerEntry(r.Pool.QueryRow(ctx, query, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find newest ledger entry for company %s: %w", companyID, err)
	}

	entry := mapping.ToDomainLedgerEntry(*m)
	return &entry, nil
}

func (r *PgxLedgerRepository) FindNewestDebit(ctx context.Context, companyID string) (*domain.LedgerEntry, error) {
	query := `
        SELECT ` + ledgerColumns + `
        FROM ledger_entries
        WHERE company_id = $1 AND sortie > 0
        ORDER BY created_at DESC, entry_id DESC
        LIMIT 1;
    `
	m, err := scanLedgerEntry(r.Pool.QueryRow(ctx, query, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find newest debit for company %s: %w", companyID, err)
	}

	entry := mapping.ToDomainLedgerEntry(*m)
	return &entry, nil
}

// SumCredits returns the total credits ever granted to the company.
func (r *PgxLedgerRepository) SumCredits(ctx context.Context, companyID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, `SELECT COALESCE(SUM(entree), 0) FROM ledger_entries WHERE company_id = $1;`, companyID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum credits for company %s: %w", companyID, err)
	}
	return total, nil
}

// ListEntriesByCompany retrieves a paginated list of a company's ledger
// entries, newest first, using token-based pagination.
func (r *PgxLedgerRepository) ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	limit = pagination.ClampLimit(limit)
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE company_id = $1`
	orderByClause := `ORDER BY created_at DESC, entry_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{companyID}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (created_at, entry_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastID)
		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $2;"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query ledger entries for company "+companyID, err)
	}
	defer rows.Close()

	entries := make([]models.LedgerEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanLedgerEntry(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan ledger entry row", scanErr)
		}
		entries = append(entries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}

	var nextTokenVal *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.EntryID)
		nextTokenVal = &token
		entries = entries[:limit]
	}

	return mapping.ToDomainLedgerEntrySlice(entries), nextTokenVal, nil
}

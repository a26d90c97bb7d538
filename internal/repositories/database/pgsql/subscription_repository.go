package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abecha/sms_forfait_app/internal/apperrors"
	"github.com/abecha/sms_forfait_app/internal/core/domain"
	portsrepo "github.com/abecha/sms_forfait_app/internal/core/ports/repositories"
	"github.com/abecha/sms_forfait_app/internal/models"
	"github.com/abecha/sms_forfait_app/internal/utils/mapping"
	"github.com/abecha/sms_forfait_app/internal/utils/pagination"
)

type PgxSubscriptionRepository struct {
	BaseRepository
}

func newPgxSubscriptionRepository(db *pgxpool.Pool) *PgxSubscriptionRepository {
	return &PgxSubscriptionRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxSubscriptionRepository implements portsrepo.SubscriptionRepositoryWithTx
var _ portsrepo.SubscriptionRepositoryWithTx = (*PgxSubscriptionRepository)(nil)

const subscriptionColumns = `subscription_id, company_id, offer_id, start_date, end_date, status, activated_by, comment, created_at, created_by, last_updated_at, last_updated_by`

func scanSubscription(row pgx.Row) (*models.Subscription, error) {
	var m models.Subscription
	err := row.Scan(
		&m.SubscriptionID,
		&m.CompanyID,
		&m.OfferID,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.ActivatedBy,
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

func (r *PgxSubscriptionRepository) SaveSubscription(ctx context.Context, subscription domain.Subscription) error {
	m := mapping.ToModelSubscription(subscription)
	query := `
        INSERT INTO subscriptions (subscription_id, company_id, offer_id, start_date, end_date, status, activated_by, comment, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.SubscriptionID,
		m.CompanyID,
		m.OfferID,
		m.StartDate,
		m.EndDate,
		m.Status,
		m.ActivatedBy,
		m.Comment,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save subscription: %w", err)
	}
	return nil
}

func (r *PgxSubscriptionRepository) FindSubscriptionByID(ctx context.Context, subscriptionID string) (*domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE subscription_id = $1;`
	m, err := scanSubscription(r.Pool.QueryRow(ctx, query, subscriptionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find subscription by ID %s: %w", subscriptionID, err)
	}

	sub := mapping.ToDomainSubscription(*m)
	return &sub, nil
}

// FindNewestSubscription retrieves the most recently purchased subscription
// of the company, whatever its status.
func (r *PgxSubscriptionRepository) FindNewestSubscription(ctx context.Context, companyID string) (*domain.Subscription, error) {
	query := `
        SELECT ` + subscriptionColumns + `
        FROM subscriptions
        WHERE company_id = $1
        ORDER BY created_at DESC, subscription_id DESC
        LIMIT 1;
    `
	m, err := scanSubscription(r.Pool.QueryRow(ctx, query, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find newest subscription for company %s: %w", companyID, err)
	}

	sub := mapping.ToDomainSubscription(*m)
	return &sub, nil
}

// ListSubscriptionsByCompany retrieves a paginated list of a company's subscriptions.
func (r *PgxSubscriptionRepository) ListSubscriptionsByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Subscription, *string, error) {
	baseQuery := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE company_id = $1`
	return r.listSubscriptions(ctx, baseQuery, []interface{}{companyID}, limit, nextToken)
}

// ListPendingSubscriptions retrieves a paginated list of subscriptions awaiting activation.
func (r *PgxSubscriptionRepository) ListPendingSubscriptions(ctx context.Context, limit int, nextToken *string) ([]domain.Subscription, *string, error) {
	baseQuery := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE status = $1`
	return r.listSubscriptions(ctx, baseQuery, []interface{}{models.SubscriptionPending}, limit, nextToken)
}

func (r *PgxSubscriptionRepository) listSubscriptions(ctx context.Context, baseQuery string, args []interface{}, limit int, nextToken *string) ([]domain.Subscription, *string, error) {
	limit = pagination.ClampLimit(limit)
	fetchLimit := limit + 1

	orderByClause := `ORDER BY created_at DESC, subscription_id DESC`

	var rows pgx.Rows
	var err error

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (created_at, subscription_id) < ($` + strconv.Itoa(len(args)+1) + `, $` + strconv.Itoa(len(args)+2) + `)`
		args = append(args, lastCreatedAt, lastID)
		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query subscriptions", err)
	}
	defer rows.Close()

	subs := make([]models.Subscription, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanSubscription(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan subscription row", scanErr)
		}
		subs = append(subs, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating subscription rows", err)
	}

	var nextTokenVal *string
	if len(subs) > limit {
		last := subs[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.SubscriptionID)
		nextTokenVal = &token
		subs = subs[:limit]
	}

	return mapping.ToDomainSubscriptionSlice(subs), nextTokenVal, nil
}

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

type PgxDispatchRepository struct {
	BaseRepository
}

func newPgxDispatchRepository(db *pgxpool.Pool) *PgxDispatchRepository {
	return &PgxDispatchRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxDispatchRepository implements portsrepo.DispatchRepositoryWithTx
var _ portsrepo.DispatchRepositoryWithTx = (*PgxDispatchRepository)(nil)

const dispatchColumns = `dispatch_id, campaign_id, company_id, recipient_count, success_count, message_parts, unit_price, total_cost, comment, created_at, created_by, last_updated_at, last_updated_by`

func scanDispatchEvent(row pgx.Row) (*models.DispatchEvent, error) {
	var m models.DispatchEvent
	err := row.Scan(
		&m.DispatchID,
		&m.CampaignID,
		&m.CompanyID,
		&m.RecipientCount,
		&m.SuccessCount,
		&m.MessageParts,
		&m.UnitPrice,
		&m.TotalCost,
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

func insertDispatchEventTx(ctx context.Context, tx pgx.Tx, m models.DispatchEvent) error {
	query := `
        INSERT INTO dispatch_events (dispatch_id, campaign_id, company_id, recipient_count, success_count, message_parts, unit_price, total_cost, comment, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
    `
	_, err := tx.Exec(ctx, query,
		m.DispatchID,
		m.CampaignID,
		m.CompanyID,
		m.RecipientCount,
		m.SuccessCount,
		m.MessageParts,
		m.UnitPrice,
		m.TotalCost,
		m.Comment,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert dispatch event: %w", err)
	}
	return nil
}

// SaveDispatchEvent persists a dispatch event outside any ledger transaction.
// Used for failed sends, which are recorded but never charged.
func (r *PgxDispatchRepository) SaveDispatchEvent(ctx context.Context, event domain.DispatchEvent) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := insertDispatchEventTx(ctx, tx, mapping.ToModelDispatchEvent(event)); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxDispatchRepository) FindDispatchByID(ctx context.Context, dispatchID string) (*domain.DispatchEvent, error) {
	query := `SELECT ` + dispatchColumns + ` FROM dispatch_events WHERE dispatch_id = $1;`
	m, err := scanDispatchEvent(r.Pool.QueryRow(ctx, query, dispatchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find dispatch event by ID %s: %w", dispatchID, err)
	}

	event := mapping.ToDomainDispatchEvent(*m)
	return &event, nil
}

// ListDispatchesByCampaign retrieves a paginated list of a campaign's dispatch events.
func (r *PgxDispatchRepository) ListDispatchesByCampaign(ctx context.Context, campaignID string, limit int, nextToken *string) ([]domain.DispatchEvent, *string, error) {
	limit = pagination.ClampLimit(limit)
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + dispatchColumns + ` FROM dispatch_events WHERE campaign_id = $1`
	orderByClause := `ORDER BY created_at DESC, dispatch_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{campaignID}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (created_at, dispatch_id) < ($2, $3)`
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
		return nil, nil, apperrors.NewAppError(500, "failed to query dispatch events for campaign "+campaignID, err)
	}
	defer rows.Close()

	events := make([]models.DispatchEvent, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanDispatchEvent(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan dispatch event row", scanErr)
		}
		events = append(events, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating dispatch event rows", err)
	}

	var nextTokenVal *string
	if len(events) > limit {
		last := events[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.DispatchID)
		nextTokenVal = &token
		events = events[:limit]
	}

	return mapping.ToDomainDispatchEventSlice(events), nextTokenVal, nil
}

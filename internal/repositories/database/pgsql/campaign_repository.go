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

type PgxCampaignRepository struct {
	BaseRepository
}

func newPgxCampaignRepository(db *pgxpool.Pool) *PgxCampaignRepository {
	return &PgxCampaignRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxCampaignRepository implements portsrepo.CampaignRepositoryWithTx
var _ portsrepo.CampaignRepositoryWithTx = (*PgxCampaignRepository)(nil)

const campaignColumns = `campaign_id, company_id, title, message, recipients, comment, created_at, created_by, last_updated_at, last_updated_by`

func scanCampaign(row pgx.Row) (*models.Campaign, error) {
	var m models.Campaign
	err := row.Scan(
		&m.CampaignID,
		&m.CompanyID,
		&m.Title,
		&m.Message,
		&m.Recipients,
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

func (r *PgxCampaignRepository) SaveCampaign(ctx context.Context, campaign domain.Campaign) error {
	m := mapping.ToModelCampaign(campaign)
	query := `
        INSERT INTO campaigns (campaign_id, company_id, title, message, recipients, comment, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.CampaignID,
		m.CompanyID,
		m.Title,
		m.Message,
		m.Recipients,
		m.Comment,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("campaign title %q already used: %w", campaign.Title, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save campaign: %w", err)
	}
	return nil
}

func (r *PgxCampaignRepository) UpdateCampaign(ctx context.Context, campaign domain.Campaign) error {
	m := mapping.ToModelCampaign(campaign)
	query := `
        UPDATE campaigns
        SET message = $2, recipients = $3, comment = $4, last_updated_at = $5, last_updated_by = $6
        WHERE campaign_id = $1;
    `
	tag, err := r.Pool.Exec(ctx, query,
		m.CampaignID,
		m.Message,
		m.Recipients,
		m.Comment,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update campaign %s: %w", campaign.CampaignID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCampaignRepository) FindCampaignByID(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE campaign_id = $1;`
	m, err := scanCampaign(r.Pool.QueryRow(ctx, query, campaignID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find campaign by ID %s: %w", campaignID, err)
	}

	campaign := mapping.ToDomainCampaign(*m)
	return &campaign, nil
}

// FindCampaignByTitle retrieves a company's campaign by title, case-insensitively.
func (r *PgxCampaignRepository) FindCampaignByTitle(ctx context.Context, companyID string, title string) (*domain.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE company_id = $1 AND LOWER(title) = LOWER($2);`
	m, err := scanCampaign(r.Pool.QueryRow(ctx, query, companyID, title))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find campaign by title: %w", err)
	}

	campaign := mapping.ToDomainCampaign(*m)
	return &campaign, nil
}

// ListCampaignsByCompany retrieves a paginated list of a company's campaigns.
func (r *PgxCampaignRepository) ListCampaignsByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Campaign, *string, error) {
	limit = pagination.ClampLimit(limit)
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + campaignColumns + ` FROM campaigns WHERE company_id = $1`
	orderByClause := `ORDER BY created_at DESC, campaign_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{companyID}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (created_at, campaign_id) < ($2, $3)`
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
		return nil, nil, apperrors.NewAppError(500, "failed to query campaigns for company "+companyID, err)
	}
	defer rows.Close()

	campaigns := make([]models.Campaign, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanCampaign(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan campaign row", scanErr)
		}
		campaigns = append(campaigns, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating campaign rows", err)
	}

	var nextTokenVal *string
	if len(campaigns) > limit {
		last := campaigns[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.CampaignID)
		nextTokenVal = &token
		campaigns = campaigns[:limit]
	}

	return mapping.ToDomainCampaignSlice(campaigns), nextTokenVal, nil
}

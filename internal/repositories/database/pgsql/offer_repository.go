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

type PgxOfferRepository struct {
	BaseRepository
}

func newPgxOfferRepository(db *pgxpool.Pool) *PgxOfferRepository {
	return &PgxOfferRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxOfferRepository implements portsrepo.OfferRepositoryWithTx
var _ portsrepo.OfferRepositoryWithTx = (*PgxOfferRepository)(nil)

const offerColumns = `offer_id, designation, credits, price, is_current, comment, created_at, created_by, last_updated_at, last_updated_by`

func scanOffer(row pgx.Row) (*models.Offer, error) {
	var m models.Offer
	err := row.Scan(
		&m.OfferID,
		&m.Designation,
		&m.Credits,
		&m.Price,
		&m.IsCurrent,
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

// SaveCurrentOffer inserts the new offer and clears the current flag on all
// other offers in the same transaction, so exactly one offer stays current.
func (r *PgxOfferRepository) SaveCurrentOffer(ctx context.Context, offer domain.Offer) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `UPDATE offers SET is_current = FALSE WHERE is_current = TRUE;`); err != nil {
		return fmt.Errorf("failed to clear current offer flag: %w", err)
	}

	m := mapping.ToModelOffer(offer)
	query := `
        INSERT INTO offers (offer_id, designation, credits, price, is_current, comment, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err = tx.Exec(ctx, query,
		m.OfferID,
		m.Designation,
		m.Credits,
		m.Price,
		m.IsCurrent,
		m.Comment,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save offer: %w", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxOfferRepository) UpdateOffer(ctx context.Context, offer domain.Offer) error {
	m := mapping.ToModelOffer(offer)
	query := `
        UPDATE offers
        SET designation = $2, price = $3, comment = $4, last_updated_at = $5, last_updated_by = $6
        WHERE offer_id = $1;
    `
	tag, err := r.Pool.Exec(ctx, query,
		m.OfferID,
		m.Designation,
		m.Price,
		m.Comment,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update offer %s: %w", offer.OfferID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOfferRepository) FindOfferByID(ctx context.Context, offerID string) (*domain.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE offer_id = $1;`
	m, err := scanOffer(r.Pool.QueryRow(ctx, query, offerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find offer by ID %s: %w", offerID, err)
	}

	offer := mapping.ToDomainOffer(*m)
	return &offer, nil
}

func (r *PgxOfferRepository) FindCurrentOffer(ctx context.Context) (*domain.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE is_current = TRUE;`
	m, err := scanOffer(r.Pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find current offer: %w", err)
	}

	offer := mapping.ToDomainOffer(*m)
	return &offer, nil
}

// ListOffers retrieves a paginated list of offers using token-based pagination.
func (r *PgxOfferRepository) ListOffers(ctx context.Context, limit int, nextToken *string) ([]domain.Offer, *string, error) {
	limit = pagination.ClampLimit(limit)
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + offerColumns + ` FROM offers`
	orderByClause := `ORDER BY created_at DESC, offer_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `WHERE (created_at, offer_id) < ($1, $2)`
		args = append(args, lastCreatedAt, lastID)
		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $1;"
		rows, err = r.Pool.Query(ctx, query, fetchLimit)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query offers", err)
	}
	defer rows.Close()

	offers := make([]models.Offer, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanOffer(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan offer row", scanErr)
		}
		offers = append(offers, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating offer rows", err)
	}

	var nextTokenVal *string
	if len(offers) > limit {
		last := offers[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.OfferID)
		nextTokenVal = &token
		offers = offers[:limit]
	}

	return mapping.ToDomainOfferSlice(offers), nextTokenVal, nil
}

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

type PgxCompanyRepository struct {
	BaseRepository
}

func newPgxCompanyRepository(db *pgxpool.Pool) *PgxCompanyRepository {
	return &PgxCompanyRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxCompanyRepository implements portsrepo.CompanyRepositoryWithTx
var _ portsrepo.CompanyRepositoryWithTx = (*PgxCompanyRepository)(nil)

const companyColumns = `company_id, name, type, rccm, impot, idnat, address, city, province, sender_name, representative, representative_role, phone, comment, created_at, created_by, last_updated_at, last_updated_by`

func scanCompany(row pgx.Row) (*models.Company, error) {
	var m models.Company
	err := row.Scan(
		&m.CompanyID,
		&m.Name,
		&m.Type,
		&m.RCCM,
		&m.Impot,
		&m.Idnat,
		&m.Address,
		&m.City,
		&m.Province,
		&m.SenderName,
		&m.Representative,
		&m.RepresentativeRole,
		&m.Phone,
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

func insertCompanyTx(ctx context.Context, tx pgx.Tx, m models.Company) error {
	query := `
        INSERT INTO companies (company_id, name, type, rccm, impot, idnat, address, city, province, sender_name, representative, representative_role, phone, comment, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
    `
	_, err := tx.Exec(ctx, query,
		m.CompanyID,
		m.Name,
		m.Type,
		m.RCCM,
		m.Impot,
		m.Idnat,
		m.Address,
		m.City,
		m.Province,
		m.SenderName,
		m.Representative,
		m.RepresentativeRole,
		m.Phone,
		m.Comment,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("company %s already registered: %w", m.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save company: %w", err)
	}
	return nil
}

// SaveCompanyWithOperator persists the company, its operator account and the
// grant binding them in one transaction, so a registration is never visible
// without its operator login.
func (r *PgxCompanyRepository) SaveCompanyWithOperator(ctx context.Context, company domain.Company, operator domain.User, grant domain.AccessGrant) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := insertCompanyTx(ctx, tx, mapping.ToModelCompany(company)); err != nil {
		return err
	}
	if err := insertUserTx(ctx, tx, mapping.ToModelUser(operator)); err != nil {
		return err
	}
	if err := insertGrantTx(ctx, tx, mapping.ToModelAccessGrant(grant)); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	m := mapping.ToModelCompany(company)
	query := `
        UPDATE companies
        SET address = $2, city = $3, province = $4, sender_name = $5, phone = $6, comment = $7, last_updated_at = $8, last_updated_by = $9
        WHERE company_id = $1;
    `
	tag, err := r.Pool.Exec(ctx, query,
		m.CompanyID,
		m.Address,
		m.City,
		m.Province,
		m.SenderName,
		m.Phone,
		m.Comment,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update company %s: %w", company.CompanyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE company_id = $1;`
	m, err := scanCompany(r.Pool.QueryRow(ctx, query, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company by ID %s: %w", companyID, err)
	}

	company := mapping.ToDomainCompany(*m)
	return &company, nil
}

// ListCompanies retrieves a paginated list of companies using token-based pagination.
func (r *PgxCompanyRepository) ListCompanies(ctx context.Context, limit int, nextToken *string) ([]domain.Company, *string, error) {
	limit = pagination.ClampLimit(limit)
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + companyColumns + ` FROM companies`
	orderByClause := `ORDER BY created_at DESC, company_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `WHERE (created_at, company_id) < ($1, $2)`
		args = append(args, lastCreatedAt, lastID)
		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $1;"
		rows, err = r.Pool.Query(ctx, query, fetchLimit)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query companies", err)
	}
	defer rows.Close()

	companies := make([]models.Company, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanCompany(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan company row", scanErr)
		}
		companies = append(companies, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating company rows", err)
	}

	var nextTokenVal *string
	if len(companies) > limit {
		last := companies[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.CompanyID)
		nextTokenVal = &token
		companies = companies[:limit]
	}

	return mapping.ToDomainCompanySlice(companies), nextTokenVal, nil
}

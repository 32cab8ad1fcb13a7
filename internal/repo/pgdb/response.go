package pgdb

import (
	"context"
	"database/sql"
	"marketplace-api/internal/entity"
	"marketplace-api/internal/repo/repo_errors"
	"marketplace-api/pkg/postgres"
	"time"

	"github.com/google/uuid"
)

type BriefResponseRepo struct {
	*postgres.Postgres
}

func NewBriefResponseRepo(pgdb *postgres.Postgres) *BriefResponseRepo {
	return &BriefResponseRepo{pgdb}
}

// CreateBriefResponse runs the quota count and the insert inside one
// serializable transaction so concurrent submissions cannot jointly exceed
// the cap. Callers losing the race get repo_errors.ErrQuotaExceeded.
func (r *BriefResponseRepo) CreateBriefResponse(ctx context.Context, input *entity.CreateBriefResponseInput) (*entity.BriefResponse, error) {
	tx, err := r.Database.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}

	countReq, args, _ := r.SqlBuilder.
		Select("count(*)").
		From("brief_response").
		Where("supplier_code = ?", input.SupplierCode).
		Where("brief_id = ?", input.BriefId).
		Where("withdrawn_at IS NULL").
		RunWith(tx).
		ToSql()

	var count int
	err = tx.QueryRow(countReq, args...).Scan(&count)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return nil, e
		}

		return nil, err
	}

	if count >= input.Limit {
		if e := tx.Rollback(); e != nil {
			return nil, e
		}

		return nil, repo_errors.ErrQuotaExceeded
	}

	createReq, args, _ := r.SqlBuilder.
		Insert("brief_response").
		Columns("brief_id", "supplier_code", "data").
		Values(input.BriefId, input.SupplierCode, input.Data).
		Suffix("RETURNING id, created_at").
		RunWith(tx).
		ToSql()

	var response entity.BriefResponse
	var createdAt time.Time
	err = tx.QueryRow(createReq, args...).Scan(&response.Id, &createdAt)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return nil, e
		}

		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	response.BriefId = input.BriefId
	response.SupplierCode = input.SupplierCode
	response.Data = input.Data
	response.CreatedAt = createdAt.Format(time.RFC3339)

	return &response, nil
}

func (r *BriefResponseRepo) CountActiveResponses(ctx context.Context, supplierCode int64, briefId uuid.UUID) (int, error) {
	countReq, args, _ := r.SqlBuilder.
		Select("count(*)").
		From("brief_response").
		Where("supplier_code = ?", supplierCode).
		Where("brief_id = ?", briefId).
		Where("withdrawn_at IS NULL").
		ToSql()

	var count int
	err := r.Database.QueryRowContext(ctx, countReq, args...).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// CountBriefResponses counts non-withdrawn responses across all suppliers,
// independent of any listing page size.
func (r *BriefResponseRepo) CountBriefResponses(ctx context.Context, briefId uuid.UUID) (int, error) {
	countReq, args, _ := r.SqlBuilder.
		Select("count(*)").
		From("brief_response").
		Where("brief_id = ?", briefId).
		Where("withdrawn_at IS NULL").
		ToSql()

	var count int
	err := r.Database.QueryRowContext(ctx, countReq, args...).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *BriefResponseRepo) GetBriefResponses(ctx context.Context, briefId uuid.UUID, supplierCode *int64, pg *entity.PaginationInput) ([]entity.BriefResponse, error) {
	builder := r.SqlBuilder.
		Select("id, brief_id, supplier_code, data, created_at").
		From("brief_response").
		Where("brief_id = ?", briefId).
		Where("withdrawn_at IS NULL")

	if supplierCode != nil {
		builder = builder.Where("supplier_code = ?", *supplierCode)
	}

	getResponsesReq, args, _ := builder.
		OrderBy("created_at ASC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getResponsesReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]entity.BriefResponse, 0)
	for rows.Next() {
		var response entity.BriefResponse
		var createdAt time.Time
		if err := rows.Scan(&response.Id, &response.BriefId, &response.SupplierCode,
			&response.Data, &createdAt); err != nil {
			return responses, err
		}
		response.CreatedAt = createdAt.Format(time.RFC3339)
		responses = append(responses, response)
	}
	if err = rows.Err(); err != nil {
		return responses, err
	}

	return responses, nil
}

package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"marketplace-api/internal/common"
	"marketplace-api/internal/entity"
	"marketplace-api/internal/repo/repo_errors"
	"marketplace-api/pkg/postgres"
	"time"

	"github.com/google/uuid"
)

type BriefRepo struct {
	*postgres.Postgres
}

func NewBriefRepo(pgdb *postgres.Postgres) *BriefRepo {
	return &BriefRepo{pgdb}
}

func (r *BriefRepo) CreateBrief(ctx context.Context, input *entity.CreateBriefInput) (uuid.UUID, error) {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}

	createBriefReq, args, _ := r.SqlBuilder.
		Insert("brief").
		Columns("status", "lot_id", "framework_id", "data").
		Values(common.BriefStatusDraft, input.LotId, input.FrameworkId, input.Data).
		Suffix("RETURNING id").
		RunWith(tx).
		ToSql()

	var briefId uuid.UUID
	err = tx.QueryRow(createBriefReq, args...).Scan(&briefId)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, err
	}

	createOwnerReq, args, _ := r.SqlBuilder.
		Insert("brief_user").
		Columns("brief_id", "email").
		Values(briefId, input.OwnerEmail).
		RunWith(tx).
		ToSql()

	_, err = tx.Exec(createOwnerReq, args...)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, err
	}

	if err = tx.Commit(); err != nil {
		return uuid.Nil, err
	}

	return briefId, nil
}

func (r *BriefRepo) GetBriefById(ctx context.Context, id string) (*entity.Brief, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		// malformed identifiers behave like unknown ones
		return nil, repo_errors.ErrNotFound
	}

	getBriefReq, args, _ := r.SqlBuilder.
		Select("brief.id, brief.status, brief.lot_id, lot.slug, brief.framework_id, framework.slug, framework.status, brief.data, brief.created_at, brief.published_at, brief.closed_at").
		From("brief").
		InnerJoin("lot on lot.id = brief.lot_id").
		InnerJoin("framework on framework.id = brief.framework_id").
		Where("brief.id = ?", uuidForm).
		ToSql()

	var brief entity.Brief
	var createdAt time.Time
	var publishedAt, closedAt sql.NullTime
	row := r.Database.QueryRowContext(ctx, getBriefReq, args...)
	err = row.Scan(&brief.Id, &brief.Status, &brief.LotId, &brief.LotSlug,
		&brief.FrameworkId, &brief.FrameworkSlug, &brief.FrameworkStatus,
		&brief.Data, &createdAt, &publishedAt, &closedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	brief.CreatedAt = createdAt.Format(time.RFC3339)
	if publishedAt.Valid {
		brief.PublishedAt = publishedAt.Time.Format(time.RFC3339)
	}
	if closedAt.Valid {
		brief.ClosedAt = closedAt.Time.Format(time.RFC3339)
	}

	owners, err := r.getOwnerEmails(ctx, uuidForm)
	if err != nil {
		return nil, err
	}
	brief.OwnerEmails = owners

	return &brief, nil
}

func (r *BriefRepo) getOwnerEmails(ctx context.Context, briefId uuid.UUID) ([]string, error) {
	getOwnersReq, args, _ := r.SqlBuilder.
		Select("email").
		From("brief_user").
		Where("brief_id = ?", briefId).
		OrderBy("id ASC").
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getOwnersReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	emails := make([]string, 0)
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return emails, err
		}
		emails = append(emails, email)
	}
	if err = rows.Err(); err != nil {
		return emails, err
	}

	return emails, nil
}

func (r *BriefRepo) UpdateBriefData(ctx context.Context, id uuid.UUID, data entity.BriefData) error {
	updateReq, args, _ := r.SqlBuilder.
		Update("brief").
		Set("data", data).
		Set("updated_at", time.Now()).
		Where("id = ?", id).
		ToSql()

	result, err := r.Database.ExecContext(ctx, updateReq, args...)
	if err != nil {
		return err
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return repo_errors.ErrNotFound
	}

	return nil
}

func (r *BriefRepo) PublishBrief(ctx context.Context, id uuid.UUID, data entity.BriefData, closedAt string) error {
	publishReq, args, _ := r.SqlBuilder.
		Update("brief").
		Set("status", common.BriefStatusLive).
		Set("data", data).
		Set("published_at", time.Now()).
		Set("closed_at", closedAt).
		Set("updated_at", time.Now()).
		Where("id = ?", id).
		ToSql()

	result, err := r.Database.ExecContext(ctx, publishReq, args...)
	if err != nil {
		return err
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return repo_errors.ErrNotFound
	}

	return nil
}

func (r *BriefRepo) DeleteBrief(ctx context.Context, id uuid.UUID) error {
	// brief_user and brief_response rows go with the brief via FK cascade
	deleteReq, args, _ := r.SqlBuilder.
		Delete("brief").
		Where("id = ?", id).
		ToSql()

	result, err := r.Database.ExecContext(ctx, deleteReq, args...)
	if err != nil {
		return err
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return repo_errors.ErrNotFound
	}

	return nil
}

package pgdb

import (
	"context"
	"marketplace-api/internal/entity"
	"marketplace-api/pkg/postgres"
)

type ReferenceRepo struct {
	*postgres.Postgres
}

func NewReferenceRepo(pgdb *postgres.Postgres) *ReferenceRepo {
	return &ReferenceRepo{pgdb}
}

// GetReferenceData loads the full lot and framework tables. Both are tiny
// and effectively static; callers resolve slugs against the returned maps
// instead of issuing per-slug queries.
func (r *ReferenceRepo) GetReferenceData(ctx context.Context) (*entity.ReferenceData, error) {
	lots, err := r.getLots(ctx)
	if err != nil {
		return nil, err
	}

	frameworks, err := r.getFrameworks(ctx)
	if err != nil {
		return nil, err
	}

	return &entity.ReferenceData{Lots: lots, Frameworks: frameworks}, nil
}

func (r *ReferenceRepo) getLots(ctx context.Context) (map[string]entity.Lot, error) {
	getLotsReq, args, _ := r.SqlBuilder.
		Select("id, slug, name").
		From("lot").
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getLotsReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lots := make(map[string]entity.Lot)
	for rows.Next() {
		var lot entity.Lot
		if err := rows.Scan(&lot.Id, &lot.Slug, &lot.Name); err != nil {
			return lots, err
		}
		lots[lot.Slug] = lot
	}
	if err = rows.Err(); err != nil {
		return lots, err
	}

	return lots, nil
}

func (r *ReferenceRepo) getFrameworks(ctx context.Context) (map[string]entity.Framework, error) {
	getFrameworksReq, args, _ := r.SqlBuilder.
		Select("id, slug, name, status").
		From("framework").
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getFrameworksReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	frameworks := make(map[string]entity.Framework)
	for rows.Next() {
		var framework entity.Framework
		if err := rows.Scan(&framework.Id, &framework.Slug, &framework.Name, &framework.Status); err != nil {
			return frameworks, err
		}
		frameworks[framework.Slug] = framework
	}
	if err = rows.Err(); err != nil {
		return frameworks, err
	}

	return frameworks, nil
}

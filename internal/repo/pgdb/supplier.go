package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"marketplace-api/internal/entity"
	"marketplace-api/internal/repo/repo_errors"
	"marketplace-api/pkg/postgres"
)

type SupplierRepo struct {
	*postgres.Postgres
}

func NewSupplierRepo(pgdb *postgres.Postgres) *SupplierRepo {
	return &SupplierRepo{pgdb}
}

func (r *SupplierRepo) GetSupplierByCode(ctx context.Context, code int64) (*entity.Supplier, error) {
	getSupplierReq, args, _ := r.SqlBuilder.
		Select("id, code, name, abn, contact_email").
		From("supplier").
		Where("code = ?", code).
		ToSql()

	var supplier entity.Supplier
	row := r.Database.QueryRowContext(ctx, getSupplierReq, args...)
	err := row.Scan(&supplier.Id, &supplier.Code, &supplier.Name, &supplier.ABN, &supplier.ContactEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	domains, err := r.getAssessedDomains(ctx, code)
	if err != nil {
		return nil, err
	}
	supplier.AssessedDomains = domains

	frameworks, err := r.getFrameworks(ctx, code)
	if err != nil {
		return nil, err
	}
	supplier.Frameworks = frameworks

	return &supplier, nil
}

func (r *SupplierRepo) getAssessedDomains(ctx context.Context, code int64) ([]string, error) {
	getDomainsReq, args, _ := r.SqlBuilder.
		Select("domain_name").
		From("supplier_domain").
		Where("supplier_code = ?", code).
		OrderBy("id ASC").
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getDomainsReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	domains := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return domains, err
		}
		domains = append(domains, name)
	}
	if err = rows.Err(); err != nil {
		return domains, err
	}

	return domains, nil
}

// getFrameworks preserves membership insertion order: eligibility consults
// the first membership only.
func (r *SupplierRepo) getFrameworks(ctx context.Context, code int64) ([]entity.SupplierFramework, error) {
	getFrameworksReq, args, _ := r.SqlBuilder.
		Select("supplier_framework.supplier_code, supplier_framework.framework_id, framework.slug").
		From("supplier_framework").
		InnerJoin("framework on framework.id = supplier_framework.framework_id").
		Where("supplier_framework.supplier_code = ?", code).
		OrderBy("supplier_framework.id ASC").
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getFrameworksReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	frameworks := make([]entity.SupplierFramework, 0)
	for rows.Next() {
		var f entity.SupplierFramework
		if err := rows.Scan(&f.SupplierCode, &f.FrameworkId, &f.FrameworkSlug); err != nil {
			return frameworks, err
		}
		frameworks = append(frameworks, f)
	}
	if err = rows.Err(); err != nil {
		return frameworks, err
	}

	return frameworks, nil
}

package pgdb

import (
	"context"
	"database/sql"
	"marketplace-api/internal/entity"
	"marketplace-api/pkg/postgres"
	"time"
)

type CatalogueRepo struct {
	*postgres.Postgres
}

func NewCatalogueRepo(pgdb *postgres.Postgres) *CatalogueRepo {
	return &CatalogueRepo{pgdb}
}

func (r *CatalogueRepo) GetRegions(ctx context.Context) ([]entity.Region, error) {
	getRegionsReq, args, _ := r.SqlBuilder.
		Select("id, state, name").
		From("region").
		OrderBy("state ASC", "name ASC").
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getRegionsReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regions := make([]entity.Region, 0)
	for rows.Next() {
		var region entity.Region
		if err := rows.Scan(&region.Id, &region.State, &region.Name); err != nil {
			return regions, err
		}
		regions = append(regions, region)
	}
	if err = rows.Err(); err != nil {
		return regions, err
	}

	return regions, nil
}

func (r *CatalogueRepo) GetServiceTypes(ctx context.Context) ([]entity.ServiceType, error) {
	getServicesReq, args, _ := r.SqlBuilder.
		Select("id, name, category, fee_type").
		From("service_type").
		OrderBy("category ASC", "name ASC").
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getServicesReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := make([]entity.ServiceType, 0)
	for rows.Next() {
		var service entity.ServiceType
		if err := rows.Scan(&service.Id, &service.Name, &service.Category, &service.FeeType); err != nil {
			return services, err
		}
		services = append(services, service)
	}
	if err = rows.Err(); err != nil {
		return services, err
	}

	return services, nil
}

// GetCurrentPrices returns prices whose validity window covers today,
// cheapest first within each supplier.
func (r *CatalogueRepo) GetCurrentPrices(ctx context.Context, serviceTypeId int, regionId int) ([]entity.ServiceTypePrice, error) {
	now := time.Now()
	getPricesReq, args, _ := r.SqlBuilder.
		Select("service_type_price.id, service_type_price.supplier_code, supplier.name, service_type_price.service_type_id, service_type_price.region_id, service_type_price.price, service_type_price.date_from, service_type_price.date_to").
		From("service_type_price").
		InnerJoin("supplier on supplier.code = service_type_price.supplier_code").
		Where("service_type_price.service_type_id = ?", serviceTypeId).
		Where("service_type_price.region_id = ?", regionId).
		Where("service_type_price.date_from <= ?", now).
		Where("(service_type_price.date_to IS NULL OR service_type_price.date_to >= ?)", now).
		OrderBy("supplier.name ASC", "service_type_price.price ASC").
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getPricesReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prices := make([]entity.ServiceTypePrice, 0)
	for rows.Next() {
		var price entity.ServiceTypePrice
		var dateFrom time.Time
		var dateTo sql.NullTime
		if err := rows.Scan(&price.Id, &price.SupplierCode, &price.SupplierName,
			&price.ServiceTypeId, &price.RegionId, &price.Price, &dateFrom, &dateTo); err != nil {
			return prices, err
		}
		price.DateFrom = dateFrom.Format("2006-01-02")
		if dateTo.Valid {
			price.DateTo = dateTo.Time.Format("2006-01-02")
		}
		prices = append(prices, price)
	}
	if err = rows.Err(); err != nil {
		return prices, err
	}

	return prices, nil
}

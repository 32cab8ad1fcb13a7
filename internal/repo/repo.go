package repo

import (
	"context"
	"marketplace-api/internal/entity"
	"marketplace-api/internal/repo/pgdb"
	"marketplace-api/pkg/postgres"

	"github.com/google/uuid"
)

type Diagnostics interface {
	Ping() error
}

type Brief interface {
	CreateBrief(ctx context.Context, input *entity.CreateBriefInput) (uuid.UUID, error)
	GetBriefById(ctx context.Context, id string) (*entity.Brief, error)
	UpdateBriefData(ctx context.Context, id uuid.UUID, data entity.BriefData) error
	PublishBrief(ctx context.Context, id uuid.UUID, data entity.BriefData, closedAt string) error
	DeleteBrief(ctx context.Context, id uuid.UUID) error
}

type Supplier interface {
	GetSupplierByCode(ctx context.Context, code int64) (*entity.Supplier, error)
}

type BriefResponse interface {
	// CreateBriefResponse counts existing non-withdrawn responses and inserts
	// in one serializable transaction; at or above input.Limit it returns
	// repo_errors.ErrQuotaExceeded.
	CreateBriefResponse(ctx context.Context, input *entity.CreateBriefResponseInput) (*entity.BriefResponse, error)
	CountActiveResponses(ctx context.Context, supplierCode int64, briefId uuid.UUID) (int, error)
	CountBriefResponses(ctx context.Context, briefId uuid.UUID) (int, error)
	GetBriefResponses(ctx context.Context, briefId uuid.UUID, supplierCode *int64, pg *entity.PaginationInput) ([]entity.BriefResponse, error)
}

type Reference interface {
	GetReferenceData(ctx context.Context) (*entity.ReferenceData, error)
}

type Catalogue interface {
	GetRegions(ctx context.Context) ([]entity.Region, error)
	GetServiceTypes(ctx context.Context) ([]entity.ServiceType, error)
	GetCurrentPrices(ctx context.Context, serviceTypeId int, regionId int) ([]entity.ServiceTypePrice, error)
}

type Audit interface {
	SaveAuditEvent(ctx context.Context, event *entity.AuditEvent) error
}

type Repositories struct {
	Diagnostics
	Brief
	Supplier
	BriefResponse
	Reference
	Catalogue
	Audit
}

func NewRepositories(p *postgres.Postgres) *Repositories {
	return &Repositories{
		Diagnostics:   pgdb.NewDiagnosticsRepo(p),
		Brief:         pgdb.NewBriefRepo(p),
		Supplier:      pgdb.NewSupplierRepo(p),
		BriefResponse: pgdb.NewBriefResponseRepo(p),
		Reference:     pgdb.NewReferenceRepo(p),
		Catalogue:     pgdb.NewCatalogueRepo(p),
		Audit:         pgdb.NewAuditRepo(p),
	}
}

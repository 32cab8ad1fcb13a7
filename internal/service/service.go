package service

import (
	"context"
	"marketplace-api/internal/entity"
	"marketplace-api/internal/notify"
	"marketplace-api/internal/repo"
	"marketplace-api/internal/reporter"

	"go.uber.org/zap"
)

type Diagnostics interface {
	Ping() error
}

type Brief interface {
	CreateRFXBrief(ctx context.Context, user entity.User) (*entity.BriefOutputModel, error)
	GetBrief(ctx context.Context, briefId string, user entity.User) (*entity.BriefView, error)
	UpdateBrief(ctx context.Context, briefId string, user entity.User, data entity.BriefData, publish bool) (*entity.BriefOutputModel, error)
	DeleteBrief(ctx context.Context, briefId string, user entity.User) error
	GetFramework(ctx context.Context, slug string) (*entity.Framework, error)
}

type BriefResponse interface {
	// CanRespond is the full eligibility gate: it resolves brief and supplier
	// and evaluates the ordered policy checks, returning the pair on success
	// or an EligibilityError carrying the first failing reason.
	CanRespond(ctx context.Context, briefId string, user entity.User) (*entity.Supplier, *entity.Brief, error)
	CreateBriefResponse(ctx context.Context, briefId string, user entity.User, data entity.BriefData) (*entity.BriefResponseOutputModel, error)
	GetBriefResponses(ctx context.Context, briefId string, user entity.User, pg *entity.PaginationInput) (*entity.BriefResponsesView, error)
}

type Catalogue interface {
	GetRegions(ctx context.Context) ([]entity.RegionGroup, error)
	GetServiceCategories(ctx context.Context) ([]entity.ServiceCategoryGroup, error)
	GetPrices(ctx context.Context, serviceTypeId int, regionId int) (*entity.PriceCatalogue, error)
}

type Services struct {
	Diagnostics   Diagnostics
	Brief         Brief
	BriefResponse BriefResponse
	Catalogue     Catalogue
}

// Deps are the collaborators shared across services.
type Deps struct {
	Repos    *repo.Repositories
	Notifier notify.Notifier
	Reporter reporter.Reporter
	Log      *zap.Logger
}

func NewServices(deps Deps) *Services {
	return &Services{
		Diagnostics:   NewDiagnosticsService(deps.Repos),
		Brief:         NewBriefService(deps),
		BriefResponse: NewBriefResponseService(deps),
		Catalogue:     NewCatalogueService(deps.Repos),
	}
}

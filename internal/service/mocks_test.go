package service

import (
	"context"

	"marketplace-api/internal/entity"
	"marketplace-api/internal/repo"
	"marketplace-api/internal/repo/repo_errors"

	"github.com/google/uuid"
)

type fakeBriefRepo struct {
	briefs map[string]*entity.Brief

	createdInput *entity.CreateBriefInput
	createdId    uuid.UUID

	updatedData   entity.BriefData
	publishedData entity.BriefData
	publishedAt   string
	deletedId     uuid.UUID
}

func (f *fakeBriefRepo) CreateBrief(_ context.Context, input *entity.CreateBriefInput) (uuid.UUID, error) {
	f.createdInput = input
	if f.createdId == uuid.Nil {
		f.createdId = uuid.New()
	}

	return f.createdId, nil
}

func (f *fakeBriefRepo) GetBriefById(_ context.Context, id string) (*entity.Brief, error) {
	brief, ok := f.briefs[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return brief, nil
}

func (f *fakeBriefRepo) UpdateBriefData(_ context.Context, _ uuid.UUID, data entity.BriefData) error {
	f.updatedData = data

	return nil
}

func (f *fakeBriefRepo) PublishBrief(_ context.Context, _ uuid.UUID, data entity.BriefData, closedAt string) error {
	f.publishedData = data
	f.publishedAt = closedAt

	return nil
}

func (f *fakeBriefRepo) DeleteBrief(_ context.Context, id uuid.UUID) error {
	f.deletedId = id

	return nil
}

type fakeSupplierRepo struct {
	suppliers map[int64]*entity.Supplier
}

func (f *fakeSupplierRepo) GetSupplierByCode(_ context.Context, code int64) (*entity.Supplier, error) {
	supplier, ok := f.suppliers[code]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return supplier, nil
}

type fakeResponseRepo struct {
	responses  []entity.BriefResponse
	count      int
	briefCount int
	createErr  error
	created    *entity.CreateBriefResponseInput
}

func (f *fakeResponseRepo) CreateBriefResponse(_ context.Context, input *entity.CreateBriefResponseInput) (*entity.BriefResponse, error) {
	f.created = input
	if f.createErr != nil {
		return nil, f.createErr
	}

	return &entity.BriefResponse{
		Id:           uuid.New(),
		BriefId:      input.BriefId,
		SupplierCode: input.SupplierCode,
		Data:         input.Data,
		CreatedAt:    "2026-08-01T00:00:00Z",
	}, nil
}

func (f *fakeResponseRepo) CountActiveResponses(_ context.Context, _ int64, _ uuid.UUID) (int, error) {
	return f.count, nil
}

func (f *fakeResponseRepo) CountBriefResponses(_ context.Context, _ uuid.UUID) (int, error) {
	return f.briefCount, nil
}

func (f *fakeResponseRepo) GetBriefResponses(_ context.Context, _ uuid.UUID, supplierCode *int64, _ *entity.PaginationInput) ([]entity.BriefResponse, error) {
	if supplierCode == nil {
		return f.responses, nil
	}

	filtered := make([]entity.BriefResponse, 0)
	for _, r := range f.responses {
		if r.SupplierCode == *supplierCode {
			filtered = append(filtered, r)
		}
	}

	return filtered, nil
}

type fakeReferenceRepo struct {
	refs *entity.ReferenceData
}

func (f *fakeReferenceRepo) GetReferenceData(_ context.Context) (*entity.ReferenceData, error) {
	return f.refs, nil
}

type fakeCatalogueRepo struct {
	regions      []entity.Region
	serviceTypes []entity.ServiceType
	prices       []entity.ServiceTypePrice
}

func (f *fakeCatalogueRepo) GetRegions(_ context.Context) ([]entity.Region, error) {
	return f.regions, nil
}

func (f *fakeCatalogueRepo) GetServiceTypes(_ context.Context) ([]entity.ServiceType, error) {
	return f.serviceTypes, nil
}

func (f *fakeCatalogueRepo) GetCurrentPrices(_ context.Context, _ int, _ int) ([]entity.ServiceTypePrice, error) {
	return f.prices, nil
}

type fakeAuditRepo struct {
	events []entity.AuditEvent
}

func (f *fakeAuditRepo) SaveAuditEvent(_ context.Context, event *entity.AuditEvent) error {
	f.events = append(f.events, *event)

	return nil
}

type fakeNotifier struct {
	sent int
	err  error
}

func (f *fakeNotifier) BriefResponseReceived(_ context.Context, _ *entity.Supplier, _ *entity.Brief, _ *entity.BriefResponse) error {
	f.sent++

	return f.err
}

type fakeReporter struct {
	reports []error
}

func (f *fakeReporter) Report(err error, _ map[string]interface{}) {
	f.reports = append(f.reports, err)
}

func newRepositories() (*repo.Repositories, *fakeBriefRepo, *fakeSupplierRepo, *fakeResponseRepo, *fakeAuditRepo) {
	briefRepo := &fakeBriefRepo{briefs: make(map[string]*entity.Brief)}
	supplierRepo := &fakeSupplierRepo{suppliers: make(map[int64]*entity.Supplier)}
	responseRepo := &fakeResponseRepo{}
	auditRepo := &fakeAuditRepo{}
	repos := &repo.Repositories{
		Brief:         briefRepo,
		Supplier:      supplierRepo,
		BriefResponse: responseRepo,
		Audit:         auditRepo,
	}

	return repos, briefRepo, supplierRepo, responseRepo, auditRepo
}

package service

import (
	"context"
	"marketplace-api/internal/entity"
	"marketplace-api/internal/repo"
)

const (
	fixedPriceMessage  = "This service is a fixed fee - inclusive of travel, assessment and report"
	hourlyPriceMessage = "The prices for this service are per hour. Travel can be charged."
	noPricesMessage    = "There are no services provided for that region."
)

type CatalogueService struct {
	catalogueRepo repo.Catalogue
}

func NewCatalogueService(repos *repo.Repositories) *CatalogueService {
	return &CatalogueService{catalogueRepo: repos.Catalogue}
}

// GetRegions groups the flat region table by state, preserving the repo's
// ordering within each group.
func (s *CatalogueService) GetRegions(ctx context.Context) ([]entity.RegionGroup, error) {
	regions, err := s.catalogueRepo.GetRegions(ctx)
	if err != nil {
		return nil, err
	}

	groups := make([]entity.RegionGroup, 0)
	for _, region := range regions {
		if len(groups) == 0 || groups[len(groups)-1].Name != region.State {
			groups = append(groups, entity.RegionGroup{Name: region.State, SubRegions: make([]entity.Region, 0)})
		}
		groups[len(groups)-1].SubRegions = append(groups[len(groups)-1].SubRegions, region)
	}

	return groups, nil
}

func (s *CatalogueService) GetServiceCategories(ctx context.Context) ([]entity.ServiceCategoryGroup, error) {
	serviceTypes, err := s.catalogueRepo.GetServiceTypes(ctx)
	if err != nil {
		return nil, err
	}

	groups := make([]entity.ServiceCategoryGroup, 0)
	for _, serviceType := range serviceTypes {
		if len(groups) == 0 || groups[len(groups)-1].Name != serviceType.Category {
			groups = append(groups, entity.ServiceCategoryGroup{Name: serviceType.Category, SubCategories: make([]entity.ServiceType, 0)})
		}
		groups[len(groups)-1].SubCategories = append(groups[len(groups)-1].SubCategories, serviceType)
	}

	return groups, nil
}

// GetPrices returns current prices for a service in a region together with
// the alert the buyer UI renders above them.
func (s *CatalogueService) GetPrices(ctx context.Context, serviceTypeId int, regionId int) (*entity.PriceCatalogue, error) {
	prices, err := s.catalogueRepo.GetCurrentPrices(ctx, serviceTypeId, regionId)
	if err != nil {
		return nil, err
	}

	if len(prices) == 0 {
		return &entity.PriceCatalogue{
			Alert:  entity.PriceAlert{Type: "warning", Message: noPricesMessage},
			Prices: prices,
		}, nil
	}

	serviceTypes, err := s.catalogueRepo.GetServiceTypes(ctx)
	if err != nil {
		return nil, err
	}

	alert := entity.PriceAlert{Type: "warning", Message: hourlyPriceMessage}
	for _, serviceType := range serviceTypes {
		if serviceType.Id == serviceTypeId && serviceType.FeeType == "fixed" {
			alert = entity.PriceAlert{Type: "info", Message: fixedPriceMessage}
			break
		}
	}

	return &entity.PriceCatalogue{Alert: alert, Prices: prices}, nil
}

package controller

import (
	"net/http"
	"strconv"

	"marketplace-api/internal/service"

	"github.com/labstack/echo"
)

type catalogueRoutesHandler struct {
	catalogueService service.Catalogue
}

func newCatalogueRoutesHandler(outer *echo.Group, services *service.Services) *catalogueRoutesHandler {
	h := &catalogueRoutesHandler{services.Catalogue}

	outer.GET("/regions", h.GetRegions)
	outer.GET("/services", h.GetServices)
	outer.GET("/services/:serviceTypeId/regions/:regionId/prices", h.GetPrices)

	return h
}

// /regions
func (h *catalogueRoutesHandler) GetRegions(c echo.Context) error {
	regions, err := h.catalogueService.GetRegions(c.Request().Context())
	if err != nil {
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}

		return err
	}
	if e := c.JSON(http.StatusOK, map[string]interface{}{"regions": regions}); e != nil {
		return e
	}

	return nil
}

// /services
func (h *catalogueRoutesHandler) GetServices(c echo.Context) error {
	categories, err := h.catalogueService.GetServiceCategories(c.Request().Context())
	if err != nil {
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}

		return err
	}
	if e := c.JSON(http.StatusOK, map[string]interface{}{"categories": categories}); e != nil {
		return e
	}

	return nil
}

// /services/:serviceTypeId/regions/:regionId/prices
func (h *catalogueRoutesHandler) GetPrices(c echo.Context) error {
	serviceTypeId, err := strconv.Atoi(c.Param("serviceTypeId"))
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Service type id must be a number"}); e != nil {
			return e
		}

		return err
	}
	regionId, err := strconv.Atoi(c.Param("regionId"))
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Region id must be a number"}); e != nil {
			return e
		}

		return err
	}

	catalogue, err := h.catalogueService.GetPrices(c.Request().Context(), serviceTypeId, regionId)
	if err != nil {
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}

		return err
	}
	if e := c.JSON(http.StatusOK, catalogue); e != nil {
		return e
	}

	return nil
}

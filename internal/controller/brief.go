package controller

import (
	"errors"
	"net/http"

	"marketplace-api/internal/common"
	"marketplace-api/internal/entity"
	"marketplace-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type briefRoutesHandler struct {
	briefService    service.Brief
	responseService service.BriefResponse
	validate        *validator.Validate
}

func newBriefRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *briefRoutesHandler {
	h := &briefRoutesHandler{briefService: services.Brief, responseService: services.BriefResponse, validate: v}

	outer.POST("/brief/rfq", h.PostRFQBrief)
	outer.GET("/brief/:briefId", h.GetBrief)
	outer.PATCH("/brief/:briefId", h.UpdateBrief)
	outer.DELETE("/brief/:briefId", h.DeleteBrief)
	outer.GET("/brief/:briefId/responses", h.GetBriefResponses)
	outer.POST("/brief/:briefId/respond", h.PostBriefResponse)
	outer.GET("/framework/:slug", h.GetFramework)

	return h
}

// /brief/rfq
func (h *briefRoutesHandler) PostRFQBrief(c echo.Context) error {
	user := actingUser(c)
	if user.Role != common.RoleBuyer {
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only buyers can create briefs"}); e != nil {
			return e
		}

		return nil
	}

	brief, err := h.briefService.CreateRFXBrief(c.Request().Context(), user)
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}

		return err
	}
	if e := c.JSON(http.StatusCreated, brief); e != nil {
		return e
	}

	return nil
}

// /brief/:briefId
func (h *briefRoutesHandler) GetBrief(c echo.Context) error {
	view, err := h.briefService.GetBrief(c.Request().Context(), c.Param("briefId"), actingUser(c))
	if err == nil {
		if e := c.JSON(http.StatusOK, view); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrBriefNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no brief with given id"}); e != nil {
			return e
		}
	case service.ErrUnauthorized:
		if e := c.JSON(http.StatusForbidden, errorResponse{"You don't have access to this brief"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type updateBriefInput struct {
	Brief   entity.BriefData `json:"brief" validate:"required"`
	Publish bool             `json:"publish"`
}

// /brief/:briefId
func (h *briefRoutesHandler) UpdateBrief(c echo.Context) error {
	var input updateBriefInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	brief, err := h.briefService.UpdateBrief(c.Request().Context(), c.Param("briefId"), actingUser(c), input.Brief, input.Publish)
	if err == nil {
		if e := c.JSON(http.StatusOK, brief); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrBriefNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no brief with given id"}); e != nil {
			return e
		}
	case service.ErrUnauthorized:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the brief owner can edit it"}); e != nil {
			return e
		}
	case service.ErrBriefNotDraft:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Only draft briefs can be edited"}); e != nil {
			return e
		}
	case service.ErrInvalidClosingDate, service.ErrClosingDateTooSoon:
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

// /brief/:briefId
func (h *briefRoutesHandler) DeleteBrief(c echo.Context) error {
	err := h.briefService.DeleteBrief(c.Request().Context(), c.Param("briefId"), actingUser(c))
	if err == nil {
		if e := c.NoContent(http.StatusOK); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrBriefNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no brief with given id"}); e != nil {
			return e
		}
	case service.ErrUnauthorized:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the brief owner can delete it"}); e != nil {
			return e
		}
	case service.ErrBriefNotDraft:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Only draft briefs can be deleted"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type getBriefResponsesInput struct {
	Limit  int32 `query:"limit" validate:"gte=0,lte=100"`
	Offset int32 `query:"offset" validate:"gte=0"`
}

// /brief/:briefId/responses
func (h *briefRoutesHandler) GetBriefResponses(c echo.Context) error {
	input := getBriefResponsesInput{Limit: defaultLimit, Offset: defaultOffset}
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	view, err := h.responseService.GetBriefResponses(c.Request().Context(), c.Param("briefId"), actingUser(c), pg)
	if err == nil {
		if e := c.JSON(http.StatusOK, view); e != nil {
			return e
		}

		return nil
	}

	var eligibilityErr *service.EligibilityError
	if errors.As(err, &eligibilityErr) {
		if e := c.JSON(denialStatus(eligibilityErr.Denial), newDenialResponse(eligibilityErr.Denial)); e != nil {
			return e
		}

		return err
	}

	switch err {
	case service.ErrBriefNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no brief with given id"}); e != nil {
			return e
		}
	case service.ErrUnauthorized:
		if e := c.JSON(http.StatusForbidden, errorResponse{"You don't have access to this brief's responses"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

// /brief/:briefId/respond
func (h *briefRoutesHandler) PostBriefResponse(c echo.Context) error {
	var data entity.BriefData
	if err := c.Bind(&data); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	response, err := h.responseService.CreateBriefResponse(c.Request().Context(), c.Param("briefId"), actingUser(c), data)
	if err == nil {
		if e := c.JSON(http.StatusCreated, response); e != nil {
			return e
		}

		return nil
	}

	var eligibilityErr *service.EligibilityError
	if errors.As(err, &eligibilityErr) {
		if e := c.JSON(denialStatus(eligibilityErr.Denial), newDenialResponse(eligibilityErr.Denial)); e != nil {
			return e
		}

		return err
	}

	var validationErr *service.ResponseValidationError
	if errors.As(err, &validationErr) {
		if e := c.JSON(http.StatusBadRequest, denialResponse{
			Message: validationErr.Message,
			Reason:  "validation_error",
			Errors:  validationErr.Errors,
		}); e != nil {
			return e
		}

		return err
	}

	if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
		return e
	}

	return err
}

// /framework/:slug
func (h *briefRoutesHandler) GetFramework(c echo.Context) error {
	framework, err := h.briefService.GetFramework(c.Request().Context(), c.Param("slug"))
	if err == nil {
		if e := c.JSON(http.StatusOK, framework); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrFrameworkNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no framework with given slug"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

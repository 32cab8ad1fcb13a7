package controller

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"marketplace-api/internal/eligibility"
	"marketplace-api/internal/entity"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

const (
	defaultLimit  = 20
	defaultOffset = 0

	headerUserEmail    = "X-User-Email"
	headerUserRole     = "X-User-Role"
	headerSupplierCode = "X-Supplier-Code"
)

type errorResponse struct {
	Message string `json:"message"`
}

// denialResponse is the payload for eligibility rejections; Errors carries
// the per-field batch when supplier validation failed.
type denialResponse struct {
	Message string                   `json:"message"`
	Reason  string                   `json:"reason"`
	Errors  []entity.ValidationError `json:"errors,omitempty"`
}

func newDenialResponse(d *eligibility.Denial) denialResponse {
	return denialResponse{Message: d.Message, Reason: string(d.Reason), Errors: d.Errors}
}

// denialStatus maps a tagged denial onto an HTTP status. Authorisation-style
// reasons are forbidden, everything else is a plain bad request.
func denialStatus(d *eligibility.Denial) int {
	switch d.Reason {
	case eligibility.ReasonNotASupplier,
		eligibility.ReasonSupplierNotSelected,
		eligibility.ReasonMissingFrameworkMembership:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

// actingUser resolves the requester out of the gateway headers. The supplier
// code header is ignored when malformed; the eligibility checks reject the
// zero code downstream.
func actingUser(c echo.Context) entity.User {
	user := entity.User{
		Email: c.Request().Header.Get(headerUserEmail),
		Role:  c.Request().Header.Get(headerUserRole),
	}
	if raw := c.Request().Header.Get(headerSupplierCode); raw != "" {
		if code, err := strconv.ParseInt(raw, 10, 64); err == nil {
			user.SupplierCode = code
		}
	}

	return user
}

func getAllErrorMessages(err error) string {
	var builder strings.Builder
	for _, fe := range err.(validator.ValidationErrors) {
		message := fmt.Sprintf("'%s': %s\n", fe.Field(), getMessage(fe))
		builder.WriteString(message)
	}

	return builder.String()
}

func getMessage(fe validator.FieldError) string {
	s, i := "", int32(0)
	if fe.Type() == reflect.TypeOf(s) {
		return getMessageForString(fe)
	}

	if fe.Type() == reflect.TypeOf(i) || fe.Type() == reflect.TypeOf(0) {
		return getMessageForInt(fe)
	}

	return "incorrect value passed"
}

func getMessageForInt(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "lte", "max":
		return "should be less or equal than " + fe.Param()
	case "gte", "min":
		return "should be greater or equal than " + fe.Param()
	}

	return "incorrect value passed"
}

func getMessageForString(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "lte", "max":
		return "length should be less or equal than " + fe.Param()
	case "gte", "min":
		return "length should be greater or equal than " + fe.Param()
	case "oneof":
		return "should have value in: " + fe.Param()
	}

	return "incorrect value passed"
}

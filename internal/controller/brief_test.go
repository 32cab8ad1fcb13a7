package controller

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"marketplace-api/internal/common"
	"marketplace-api/internal/eligibility"
	"marketplace-api/internal/entity"
	"marketplace-api/internal/service"

	"github.com/labstack/echo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResponseService struct {
	response  *entity.BriefResponseOutputModel
	createErr error
}

func (s *stubResponseService) CanRespond(_ context.Context, _ string, _ entity.User) (*entity.Supplier, *entity.Brief, error) {
	return nil, nil, s.createErr
}

func (s *stubResponseService) CreateBriefResponse(_ context.Context, _ string, _ entity.User, _ entity.BriefData) (*entity.BriefResponseOutputModel, error) {
	return s.response, s.createErr
}

func (s *stubResponseService) GetBriefResponses(_ context.Context, _ string, _ entity.User, _ *entity.PaginationInput) (*entity.BriefResponsesView, error) {
	return nil, s.createErr
}

func postRespond(t *testing.T, svc service.BriefResponse) *httptest.ResponseRecorder {
	t.Helper()
	h := &briefRoutesHandler{responseService: svc}

	req := httptest.NewRequest(http.MethodPost, "/api/brief/some-id/respond",
		strings.NewReader(`{"respondToEmailAddress":"bids@example.com.au"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(headerUserEmail, "seller@example.com.au")
	req.Header.Set(headerUserRole, common.RoleSupplier)
	req.Header.Set(headerSupplierCode, "100")
	rec := httptest.NewRecorder()

	c := echo.New().NewContext(req, rec)
	c.SetParamNames("briefId")
	c.SetParamValues("some-id")
	_ = h.PostBriefResponse(c)

	return rec
}

func TestPostBriefResponseCreated(t *testing.T) {
	rec := postRespond(t, &stubResponseService{response: &entity.BriefResponseOutputModel{
		Id: "a6f1a95c-0000-0000-0000-000000000000", SupplierCode: 100,
	}})

	assert.Equal(t, http.StatusCreated, rec.Code)
}

// Unexpected failures surface as a generic bad request, never a server error.
func TestPostBriefResponseUnexpectedFailureIsBadRequest(t *testing.T) {
	rec := postRespond(t, &stubResponseService{createErr: errors.New("connection reset")})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "message")
}

func TestPostBriefResponseDenialStatuses(t *testing.T) {
	forbidden := postRespond(t, &stubResponseService{createErr: &service.EligibilityError{
		Denial: &eligibility.Denial{Reason: eligibility.ReasonNotASupplier, Message: "Only supplier role users can respond to briefs"},
	}})
	assert.Equal(t, http.StatusForbidden, forbidden.Code)

	duplicate := postRespond(t, &stubResponseService{createErr: &service.EligibilityError{
		Denial: &eligibility.Denial{Reason: eligibility.ReasonDuplicateResponse, Message: "Brief response already exists for supplier '100'"},
	}})
	assert.Equal(t, http.StatusBadRequest, duplicate.Code)
}

func TestPostBriefResponseValidationFailure(t *testing.T) {
	rec := postRespond(t, &stubResponseService{createErr: &service.ResponseValidationError{
		Message: "Documents must be uploaded",
		Errors:  []entity.ValidationError{{Field: "attachedDocumentURL", Code: "answer_required"}},
	}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Documents must be uploaded")
}

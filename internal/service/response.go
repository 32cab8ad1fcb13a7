package service

import (
	"context"
	"encoding/json"
	"errors"
	"marketplace-api/internal/common"
	"marketplace-api/internal/eligibility"
	"marketplace-api/internal/entity"
	"marketplace-api/internal/notify"
	"marketplace-api/internal/repo"
	"marketplace-api/internal/repo/repo_errors"
	"marketplace-api/internal/reporter"
	"marketplace-api/internal/validators"
	"path"
	"strings"

	"go.uber.org/zap"
)

// Lots whose responses must carry uploaded documents.
var documentLots = map[string]bool{
	common.LotRFX:        true,
	common.LotSpecialist: true,
	common.LotTraining:   true,
}

var allowedDocumentExtensions = map[string]bool{
	".pdf":  true,
	".odt":  true,
	".doc":  true,
	".docx": true,
}

type BriefResponseService struct {
	briefRepo    repo.Brief
	supplierRepo repo.Supplier
	responseRepo repo.BriefResponse
	auditRepo    repo.Audit
	notifier     notify.Notifier
	reporter     reporter.Reporter
	log          *zap.Logger
}

func NewBriefResponseService(deps Deps) *BriefResponseService {
	return &BriefResponseService{
		briefRepo:    deps.Repos.Brief,
		supplierRepo: deps.Repos.Supplier,
		responseRepo: deps.Repos.BriefResponse,
		auditRepo:    deps.Repos.Audit,
		notifier:     deps.Notifier,
		reporter:     deps.Reporter,
		log:          deps.Log,
	}
}

// CanRespond pre-fetches everything the eligibility engine consumes and
// evaluates the ordered policy list. Lookups that fail to resolve become nil
// inputs; the engine turns those into the right denial.
func (s *BriefResponseService) CanRespond(ctx context.Context, briefId string, user entity.User) (*entity.Supplier, *entity.Brief, error) {
	brief, err := s.briefRepo.GetBriefById(ctx, briefId)
	if err != nil && !errors.Is(err, repo_errors.ErrNotFound) {
		return nil, nil, err
	}

	in := eligibility.Input{
		BriefId: briefId,
		Brief:   brief,
		User:    user,
	}

	if brief != nil && user.Role == common.RoleSupplier {
		supplier, err := s.supplierRepo.GetSupplierByCode(ctx, user.SupplierCode)
		if err != nil && !errors.Is(err, repo_errors.ErrNotFound) {
			return nil, nil, err
		}
		in.Supplier = supplier

		if supplier != nil {
			in.SupplierErrors = validators.NewSupplierValidator(supplier).ValidateAll()

			count, err := s.responseRepo.CountActiveResponses(ctx, supplier.Code, brief.Id)
			if err != nil {
				return nil, nil, err
			}
			in.ResponseCount = count
		}
	}

	decision := eligibility.Evaluate(in, eligibility.DefaultConfig())
	if !decision.Allowed() {
		return nil, nil, &EligibilityError{Denial: decision.Denial}
	}

	return in.Supplier, brief, nil
}

func (s *BriefResponseService) CreateBriefResponse(ctx context.Context, briefId string, user entity.User, data entity.BriefData) (*entity.BriefResponseOutputModel, error) {
	supplier, brief, err := s.CanRespond(ctx, briefId, user)
	if err != nil {
		return nil, err
	}

	if validationErrors := validateResponsePayload(brief, data); len(validationErrors) > 0 {
		s.reporter.Report(errors.New("brief response payload rejected"), map[string]interface{}{
			"briefId":      briefId,
			"supplierCode": supplier.Code,
			"errors":       validationErrors,
		})

		return nil, &ResponseValidationError{
			Message: responseValidationMessage(validationErrors),
			Errors:  validationErrors,
		}
	}

	response, err := s.responseRepo.CreateBriefResponse(ctx, &entity.CreateBriefResponseInput{
		BriefId:      brief.Id,
		SupplierCode: supplier.Code,
		Data:         data,
		Limit:        eligibility.ResponseLimit(brief.LotSlug),
	})
	if err != nil {
		if errors.Is(err, repo_errors.ErrQuotaExceeded) {
			// a concurrent submission won the race; same denial as the
			// read-path quota check
			return nil, &EligibilityError{Denial: eligibility.QuotaDenial(brief.LotSlug, supplier.Code)}
		}

		s.reporter.Report(err, map[string]interface{}{"briefId": briefId, "supplierCode": supplier.Code})

		return nil, err
	}

	// the stored response is the durable artifact; notification is
	// best-effort and never unwinds it
	if err := s.notifier.BriefResponseReceived(ctx, supplier, brief, response); err != nil {
		s.log.Warn("brief response email failed", zap.Error(err), zap.String("briefId", briefId))
		s.reporter.Report(err, map[string]interface{}{"briefId": briefId, "briefResponseId": response.Id.String()})
	}

	audit := &entity.AuditEvent{
		Type:       entity.AuditTypeCreateBriefResponse,
		User:       user.Email,
		Data:       map[string]interface{}{"briefResponseId": response.Id.String(), "briefId": briefId},
		ObjectType: "brief_response",
		ObjectId:   response.Id.String(),
	}
	if err := s.auditRepo.SaveAuditEvent(ctx, audit); err != nil {
		s.reporter.Report(err, map[string]interface{}{"auditType": entity.AuditTypeCreateBriefResponse, "briefId": briefId})
	}

	return mapBriefResponse(response), nil
}

func (s *BriefResponseService) GetBriefResponses(ctx context.Context, briefId string, user entity.User, pg *entity.PaginationInput) (*entity.BriefResponsesView, error) {
	brief, err := s.briefRepo.GetBriefById(ctx, briefId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBriefNotFound
		}

		return nil, err
	}

	if user.Role == common.RoleBuyer && !brief.IsOwnedBy(user.Email) {
		return nil, ErrUnauthorized
	}

	var supplierCode *int64
	if user.Role == common.RoleSupplier {
		supplier, err := s.supplierRepo.GetSupplierByCode(ctx, user.SupplierCode)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return nil, &EligibilityError{Denial: &eligibility.Denial{
					Reason:  eligibility.ReasonInvalidSupplierCode,
					Message: "Invalid supplier code",
				}}
			}

			return nil, err
		}

		if supplierErrors := validators.NewSupplierValidator(supplier).ValidateAll(); len(supplierErrors) > 0 {
			return nil, &EligibilityError{Denial: &eligibility.Denial{
				Reason:  eligibility.ReasonSupplierValidationFailed,
				Message: "Supplier profile is incomplete",
				Errors:  supplierErrors,
			}}
		}

		supplierCode = &supplier.Code
	}

	responses := make([]entity.BriefResponse, 0)
	// buyers see nothing until the brief closes
	if user.Role != common.RoleBuyer || brief.Status == common.BriefStatusClosed {
		responses, err = s.responseRepo.GetBriefResponses(ctx, brief.Id, supplierCode, pg)
		if err != nil {
			return nil, err
		}
	}

	return &entity.BriefResponsesView{
		Brief:          mapBrief(brief),
		BriefResponses: mapBriefResponses(responses),
	}, nil
}

func validateResponsePayload(brief *entity.Brief, data entity.BriefData) []entity.ValidationError {
	validationErrors := make([]entity.ValidationError, 0)

	if data.String("respondToEmailAddress") == "" {
		validationErrors = append(validationErrors, entity.ValidationError{
			Field:   "respondToEmailAddress",
			Code:    "answer_required",
			Message: "A contact email address is required",
		})
	}

	if len(brief.Data.Strings("essentialRequirements")) > 0 && len(data.Strings("essentialRequirements")) == 0 {
		validationErrors = append(validationErrors, entity.ValidationError{
			Field:   "essentialRequirements",
			Code:    "answer_required",
			Message: "Essential requirements must be completed",
		})
	}

	if documentLots[brief.LotSlug] {
		documents := data.Strings("attachedDocumentURL")
		if len(documents) == 0 {
			validationErrors = append(validationErrors, entity.ValidationError{
				Field:   "attachedDocumentURL",
				Code:    "answer_required",
				Message: "Documents must be uploaded",
			})
		}
		for _, document := range documents {
			if !allowedDocumentExtensions[strings.ToLower(path.Ext(document))] {
				validationErrors = append(validationErrors, entity.ValidationError{
					Field:   "attachedDocumentURL",
					Code:    "file_incorrect_format",
					Message: "Uploaded documents are in the wrong format",
				})
				break
			}
		}
	}

	return validationErrors
}

// responseValidationMessage applies the fixed friendly remappings for the
// two well-known fields and serializes whatever is left verbatim.
func responseValidationMessage(validationErrors []entity.ValidationError) string {
	message := ""
	rest := make(map[string]string)

	for _, e := range validationErrors {
		switch {
		case e.Field == "essentialRequirements" && e.Code == "answer_required":
			message = "Essential requirements must be completed"
		case e.Field == "attachedDocumentURL" && e.Code == "answer_required":
			message = "Documents must be uploaded"
		case e.Field == "attachedDocumentURL" && e.Code == "file_incorrect_format":
			message = "Uploaded documents are in the wrong format"
		default:
			rest[e.Field] = e.Code
		}
	}

	if len(rest) > 0 {
		if encoded, err := json.Marshal(rest); err == nil {
			message += string(encoded)
		}
	}

	return message
}

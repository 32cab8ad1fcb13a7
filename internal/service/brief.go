package service

import (
	"context"
	"errors"
	"marketplace-api/internal/common"
	"marketplace-api/internal/entity"
	"marketplace-api/internal/repo"
	"marketplace-api/internal/repo/repo_errors"
	"marketplace-api/internal/reporter"
	"time"

	"go.uber.org/zap"
)

// Closing dates accepted either as full timestamps or bare dates.
var closingDateLayouts = []string{time.RFC3339, "2006-01-02"}

const minClosingLead = 7 * 24 * time.Hour

// Fallback closing window when a brief is published without an explicit
// closing date.
const defaultClosingLead = 14 * 24 * time.Hour

type BriefService struct {
	briefRepo     repo.Brief
	responseRepo  repo.BriefResponse
	referenceRepo repo.Reference
	auditRepo     repo.Audit
	reporter      reporter.Reporter
	log           *zap.Logger
}

func NewBriefService(deps Deps) *BriefService {
	return &BriefService{
		briefRepo:     deps.Repos.Brief,
		responseRepo:  deps.Repos.BriefResponse,
		referenceRepo: deps.Repos.Reference,
		auditRepo:     deps.Repos.Audit,
		reporter:      deps.Reporter,
		log:           deps.Log,
	}
}

func (s *BriefService) CreateRFXBrief(ctx context.Context, user entity.User) (*entity.BriefOutputModel, error) {
	refs, err := s.referenceRepo.GetReferenceData(ctx)
	if err != nil {
		return nil, err
	}

	lot, ok := refs.Lot(common.LotRFX)
	if !ok {
		return nil, ErrLotNotFound
	}
	framework, ok := refs.Framework(common.MarketplaceFramework)
	if !ok {
		return nil, ErrFrameworkNotFound
	}

	id, err := s.briefRepo.CreateBrief(ctx, &entity.CreateBriefInput{
		LotId:       lot.Id,
		FrameworkId: framework.Id,
		OwnerEmail:  user.Email,
		Data:        entity.BriefData{},
	})
	if err != nil {
		s.reporter.Report(err, map[string]interface{}{"lot": common.LotRFX, "user": user.Email})
		return nil, err
	}

	brief, err := s.briefRepo.GetBriefById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	return mapBrief(brief), nil
}

func (s *BriefService) GetBrief(ctx context.Context, briefId string, user entity.User) (*entity.BriefView, error) {
	brief, err := s.briefRepo.GetBriefById(ctx, briefId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBriefNotFound
		}

		return nil, err
	}

	privileged := user.Role == common.RoleBuyer && brief.IsOwnedBy(user.Email)
	if brief.Status == common.BriefStatusDraft && !privileged {
		return nil, ErrUnauthorized
	}

	responseCount, err := s.responseRepo.CountBriefResponses(ctx, brief.Id)
	if err != nil {
		return nil, err
	}

	sellers := brief.Data.Sellers()
	invitedSeller := user.Role == common.RoleSupplier && supplierInvited(sellers, user.SupplierCode)

	// invited-seller details stay private to the owning buyers
	if !privileged && sellers != nil {
		brief.Data["sellers"] = map[string]interface{}{}
	}

	return &entity.BriefView{
		Brief:              mapBrief(brief),
		BriefResponseCount: responseCount,
		InvitedSellerCount: len(sellers),
		IsInvitedSeller:    invitedSeller,
	}, nil
}

func (s *BriefService) UpdateBrief(ctx context.Context, briefId string, user entity.User, data entity.BriefData, publish bool) (*entity.BriefOutputModel, error) {
	brief, err := s.briefRepo.GetBriefById(ctx, briefId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBriefNotFound
		}

		return nil, err
	}

	if !brief.IsOwnedBy(user.Email) {
		return nil, ErrUnauthorized
	}

	pruneEvaluationFields(data)
	deriveSellerSelector(data)

	if publish {
		if brief.Status != common.BriefStatusDraft {
			return nil, ErrBriefNotDraft
		}

		closedAt, err := resolveClosingDate(data.String("closedAt"), time.Now())
		if err != nil {
			return nil, err
		}

		if err := s.briefRepo.PublishBrief(ctx, brief.Id, data, closedAt.Format(time.RFC3339)); err != nil {
			s.reporter.Report(err, map[string]interface{}{"briefId": briefId})
			return nil, err
		}
	} else {
		if err := s.briefRepo.UpdateBriefData(ctx, brief.Id, data); err != nil {
			s.reporter.Report(err, map[string]interface{}{"briefId": briefId})
			return nil, err
		}
	}

	audit := &entity.AuditEvent{
		Type:       entity.AuditTypeUpdateBrief,
		User:       user.Email,
		Data:       map[string]interface{}{"briefId": briefId, "published": publish},
		ObjectType: "brief",
		ObjectId:   briefId,
	}
	if err := s.auditRepo.SaveAuditEvent(ctx, audit); err != nil {
		s.reporter.Report(err, map[string]interface{}{"auditType": entity.AuditTypeUpdateBrief, "briefId": briefId})
	}

	brief, err = s.briefRepo.GetBriefById(ctx, briefId)
	if err != nil {
		return nil, err
	}

	return mapBrief(brief), nil
}

func (s *BriefService) DeleteBrief(ctx context.Context, briefId string, user entity.User) error {
	brief, err := s.briefRepo.GetBriefById(ctx, briefId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrBriefNotFound
		}

		return err
	}

	if !brief.IsOwnedBy(user.Email) {
		return ErrUnauthorized
	}

	if brief.Status != common.BriefStatusDraft {
		return ErrBriefNotDraft
	}

	audit := &entity.AuditEvent{
		Type: entity.AuditTypeDeleteBrief,
		User: user.Email,
		Data: map[string]interface{}{"briefId": briefId},
	}
	if err := s.auditRepo.SaveAuditEvent(ctx, audit); err != nil {
		s.reporter.Report(err, map[string]interface{}{"auditType": entity.AuditTypeDeleteBrief, "briefId": briefId})
	}

	if err := s.briefRepo.DeleteBrief(ctx, brief.Id); err != nil {
		s.reporter.Report(err, map[string]interface{}{"briefId": briefId})
		return err
	}

	return nil
}

func (s *BriefService) GetFramework(ctx context.Context, slug string) (*entity.Framework, error) {
	refs, err := s.referenceRepo.GetReferenceData(ctx)
	if err != nil {
		return nil, err
	}

	framework, ok := refs.Framework(slug)
	if !ok {
		return nil, ErrFrameworkNotFound
	}

	return &framework, nil
}

// pruneEvaluationFields drops proposal and template answers that no longer
// apply to the chosen evaluation methods.
func pruneEvaluationFields(data entity.BriefData) {
	if _, ok := data["evaluationType"]; !ok {
		return
	}

	types := data.Strings("evaluationType")
	if !containsString(types, "Written proposal") {
		data["proposalType"] = []string{}
	}
	if !containsString(types, "Response template") {
		data["responseTemplate"] = []string{}
	}
}

// deriveSellerSelector keeps the selector consistent with the invite
// mapping: a single invited seller means oneSeller, several mean someSellers.
func deriveSellerSelector(data entity.BriefData) {
	sellers := data.Sellers()
	if len(sellers) == 0 {
		return
	}

	if len(sellers) > 1 {
		data["sellerSelector"] = common.SellerSelectorSome
	} else {
		data["sellerSelector"] = common.SellerSelectorOne
	}
}

// resolveClosingDate enforces the publish precondition: an explicit closing
// date must parse and sit at least one week ahead. Without one, the default
// closing window applies.
func resolveClosingDate(raw string, now time.Time) (time.Time, error) {
	if raw == "" {
		return now.Add(defaultClosingLead), nil
	}

	var parsed time.Time
	var err error
	for _, layout := range closingDateLayouts {
		parsed, err = time.Parse(layout, raw)
		if err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, ErrInvalidClosingDate
	}

	if !parsed.After(now) {
		return time.Time{}, ErrInvalidClosingDate
	}
	if parsed.Before(now.Add(minClosingLead)) {
		return time.Time{}, ErrClosingDateTooSoon
	}

	return parsed, nil
}

func supplierInvited(sellers map[string]interface{}, code int64) bool {
	if sellers == nil {
		return false
	}

	_, ok := sellers[formatSupplierCode(code)]

	return ok
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}

	return false
}

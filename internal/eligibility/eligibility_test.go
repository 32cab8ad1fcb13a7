package eligibility

import (
	"testing"

	"marketplace-api/internal/common"
	"marketplace-api/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func liveBrief(lotSlug string) *entity.Brief {
	return &entity.Brief{
		Id:              uuid.New(),
		Status:          common.BriefStatusLive,
		LotSlug:         lotSlug,
		FrameworkSlug:   common.MarketplaceFramework,
		FrameworkStatus: common.FrameworkStatusLive,
		Data:            entity.BriefData{},
	}
}

func qualifiedSupplier(code int64) *entity.Supplier {
	return &entity.Supplier{
		Code:            code,
		Name:            "Example Consulting",
		ABN:             "51 824 753 556",
		ContactEmail:    "contact@example.com.au",
		AssessedDomains: []string{"Software engineering and Development"},
		Frameworks: []entity.SupplierFramework{
			{SupplierCode: code, FrameworkSlug: common.MarketplaceFramework},
		},
	}
}

func supplierUser(code int64) entity.User {
	return entity.User{Email: "seller@example.com.au", Role: common.RoleSupplier, SupplierCode: code}
}

func validInput(lotSlug string) Input {
	brief := liveBrief(lotSlug)

	return Input{
		BriefId:  brief.Id.String(),
		Brief:    brief,
		Supplier: qualifiedSupplier(100),
		User:     supplierUser(100),
	}
}

func TestEvaluateAllowsQualifiedSupplier(t *testing.T) {
	decision := Evaluate(validInput(common.LotOutcome), DefaultConfig())

	require.True(t, decision.Allowed())
	assert.Nil(t, decision.Denial)
}

func TestEvaluateRejectsUnknownBrief(t *testing.T) {
	in := Input{BriefId: "not-a-brief", User: supplierUser(100)}

	decision := Evaluate(in, DefaultConfig())

	require.False(t, decision.Allowed())
	assert.Equal(t, ReasonInvalidBrief, decision.Denial.Reason)
	assert.Equal(t, "Invalid brief ID 'not-a-brief'", decision.Denial.Message)
}

func TestEvaluateRejectsDraftBrief(t *testing.T) {
	in := validInput(common.LotOutcome)
	in.Brief.Status = common.BriefStatusDraft

	decision := Evaluate(in, DefaultConfig())

	require.False(t, decision.Allowed())
	assert.Equal(t, ReasonBriefNotLive, decision.Denial.Reason)
}

func TestEvaluateRejectsClosedBrief(t *testing.T) {
	in := validInput(common.LotOutcome)
	in.Brief.Status = common.BriefStatusClosed

	decision := Evaluate(in, DefaultConfig())

	require.False(t, decision.Allowed())
	assert.Equal(t, ReasonBriefNotLive, decision.Denial.Reason)
}

func TestEvaluateRejectsExpiredFramework(t *testing.T) {
	in := validInput(common.LotOutcome)
	in.Brief.FrameworkStatus = "expired"

	decision := Evaluate(in, DefaultConfig())

	require.False(t, decision.Allowed())
	assert.Equal(t, ReasonFrameworkNotLive, decision.Denial.Reason)
}

func TestEvaluateRejectsBuyerRole(t *testing.T) {
	in := validInput(common.LotOutcome)
	in.User.Role = common.RoleBuyer

	decision := Evaluate(in, DefaultConfig())

	require.False(t, decision.Allowed())
	assert.Equal(t, ReasonNotASupplier, decision.Denial.Reason)
}

// The brief state checks run before any supplier check, so a buyer probing a
// draft brief hears about the brief, not their role.
func TestEvaluateChecksBriefStateBeforeRole(t *testing.T) {
	in := validInput(common.LotOutcome)
	in.Brief.Status = common.BriefStatusDraft
	in.User.Role = common.RoleBuyer

	decision := Evaluate(in, DefaultConfig())

	require.False(t, decision.Allowed())
	assert.Equal(t, ReasonBriefNotLive, decision.Denial.Reason)
}

func TestEvaluateRejectsUnknownSupplier(t *testing.T) {
	in := validInput(common.LotOutcome)
	in.Supplier = nil
	in.User.SupplierCode = 404

	decision := Evaluate(in, DefaultConfig())

	require.False(t, decision.Allowed())
	assert.Equal(t, ReasonInvalidSupplierCode, decision.Denial.Reason)
	assert.Equal(t, "Invalid supplier code '404'", decision.Denial.Message)
}

func TestEvaluateReportsSupplierValidationBatch(t *testing.T) {
	in := validInput(common.LotOutcome)
	in.SupplierErrors = []entity.ValidationError{
		{Field: "abn", Code: "answer_required", Message: "Supplier must have an ABN"},
		{Field: "contactEmail", Code: "answer_required", Message: "Supplier must have a contact email address"},
	}

	decision := Evaluate(in, DefaultConfig())

	require.False(t, decision.Allowed())
	assert.Equal(t, ReasonSupplierValidationFailed, decision.Denial.Reason)
	assert.Len(t, decision.Denial.Errors, 2)
	assert.Equal(t, "Supplier must have an ABN; Supplier must have a contact email address", decision.Denial.Message)
}

func TestEvaluateOneSellerSelection(t *testing.T) {
	in := validInput(common.LotOutcome)
	in.Brief.Data = entity.BriefData{
		"sellerSelector": common.SellerSelectorOne,
		"sellerEmail":    "Seller@Example.com.au",
	}

	decision := Evaluate(in, DefaultConfig())

	assert.True(t, decision.Allowed(), "email comparison is case-insensitive")
}

func TestEvaluateOneSellerSelectionMismatch(t *testing.T) {
	in := validInput(common.LotOutcome)
	in.Brief.Data = entity.BriefData{
		"sellerSelector": common.SellerSelectorOne,
		"sellerEmail":    "other@elsewhere.com.au",
	}

	decision := Evaluate(in, DefaultConfig())

	require.False(t, decision.Allowed())
	assert.Equal(t, ReasonSupplierNotSelected, decision.Denial.Reason)
}

func TestEvaluateSomeSellersMatchesByDomain(t *testing.T) {
	in := validInput(common.LotOutcome)
	in.Brief.Data = entity.BriefData{
		"sellerSelector":  common.SellerSelectorSome,
		"sellerEmailList": []interface{}{"procurement@example.com.au", "bids@elsewhere.com.au"},
	}
	in.User.Email = "another.person@example.com.au"

	decision := Evaluate(in, DefaultConfig())

	assert.True(t, decision.Allowed())
}

func TestEvaluateGenericDomainNeverMatches(t *testing.T) {
	in := validInput(common.LotOutcome)
	in.Brief.Data = entity.BriefData{
		"sellerSelector":  common.SellerSelectorSome,
		"sellerEmailList": []interface{}{"invited@gmail.com"},
	}
	in.User.Email = "someone.else@gmail.com"

	decision := Evaluate(in, DefaultConfig())

	require.False(t, decision.Allowed())
	assert.Equal(t, ReasonSupplierNotSelected, decision.Denial.Reason)
}

// rfx briefs select by invite code regardless of the stored selector.
func TestEvaluateRFXInviteOverridesSelector(t *testing.T) {
	in := validInput(common.LotRFX)
	in.Brief.Data = entity.BriefData{
		"sellerSelector": common.SellerSelectorAll,
		"sellers":        map[string]interface{}{"200": map[string]interface{}{"name": "Another Seller"}},
	}

	decision := Evaluate(in, DefaultConfig())

	require.False(t, decision.Allowed())
	assert.Equal(t, ReasonSupplierNotSelected, decision.Denial.Reason)
}

func TestEvaluateRFXInvitedSupplierAllowed(t *testing.T) {
	in := validInput(common.LotRFX)
	in.Brief.Data = entity.BriefData{
		"sellers": map[string]interface{}{"100": map[string]interface{}{"name": "Example Consulting"}},
	}

	decision := Evaluate(in, DefaultConfig())

	assert.True(t, decision.Allowed())
}

// Only the first framework membership counts.
func TestEvaluateFrameworkMembershipUsesFirstOnly(t *testing.T) {
	in := validInput(common.LotOutcome)
	in.Supplier.Frameworks = []entity.SupplierFramework{
		{SupplierCode: 100, FrameworkSlug: "legacy-panel"},
		{SupplierCode: 100, FrameworkSlug: common.MarketplaceFramework},
	}

	decision := Evaluate(in, DefaultConfig())

	require.False(t, decision.Allowed())
	assert.Equal(t, ReasonMissingFrameworkMembership, decision.Denial.Reason)
}

func TestEvaluateRejectsSupplierWithoutMemberships(t *testing.T) {
	in := validInput(common.LotOutcome)
	in.Supplier.Frameworks = nil

	decision := Evaluate(in, DefaultConfig())

	require.False(t, decision.Allowed())
	assert.Equal(t, ReasonMissingFrameworkMembership, decision.Denial.Reason)
}

func TestEvaluateRejectsSupplierWithoutAssessedDomains(t *testing.T) {
	in := validInput(common.LotOutcome)
	in.Supplier.AssessedDomains = nil

	decision := Evaluate(in, DefaultConfig())

	require.False(t, decision.Allowed())
	assert.Equal(t, ReasonNoAssessedDomains, decision.Denial.Reason)
}

func TestEvaluateTrainingBriefRequiresTrainingDomain(t *testing.T) {
	in := validInput(common.LotTraining)

	decision := Evaluate(in, DefaultConfig())

	require.False(t, decision.Allowed())
	assert.Equal(t, ReasonMissingRequiredDomain, decision.Denial.Reason)

	in.Supplier.AssessedDomains = append(in.Supplier.AssessedDomains, common.TrainingDomain)
	assert.True(t, Evaluate(in, DefaultConfig()).Allowed())
}

func TestEvaluateSpecialistQuota(t *testing.T) {
	in := validInput(common.LotSpecialist)

	in.ResponseCount = 2
	assert.True(t, Evaluate(in, DefaultConfig()).Allowed())

	in.ResponseCount = 3
	decision := Evaluate(in, DefaultConfig())
	require.False(t, decision.Allowed())
	assert.Equal(t, ReasonQuotaExceeded, decision.Denial.Reason)
	assert.Equal(t, "There are already 3 brief responses for supplier '100'", decision.Denial.Message)
}

func TestEvaluateSingleResponseLots(t *testing.T) {
	in := validInput(common.LotOutcome)

	in.ResponseCount = 0
	assert.True(t, Evaluate(in, DefaultConfig()).Allowed())

	in.ResponseCount = 1
	decision := Evaluate(in, DefaultConfig())
	require.False(t, decision.Allowed())
	assert.Equal(t, ReasonDuplicateResponse, decision.Denial.Reason)
	assert.Equal(t, "Brief response already exists for supplier '100'", decision.Denial.Message)
}

func TestResponseLimit(t *testing.T) {
	assert.Equal(t, 3, ResponseLimit(common.LotSpecialist))
	assert.Equal(t, 1, ResponseLimit(common.LotOutcome))
	assert.Equal(t, 1, ResponseLimit(common.LotRFX))
	assert.Equal(t, 1, ResponseLimit(common.LotTraining))
}

func TestQuotaDenial(t *testing.T) {
	specialist := QuotaDenial(common.LotSpecialist, 7)
	assert.Equal(t, ReasonQuotaExceeded, specialist.Reason)

	single := QuotaDenial(common.LotOutcome, 7)
	assert.Equal(t, ReasonDuplicateResponse, single.Reason)
}

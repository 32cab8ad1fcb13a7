// Package eligibility decides whether a supplier may respond to a brief.
// Evaluate walks an ordered list of pure predicate checks over pre-fetched
// state and returns the first failing reason; it performs no lookups and has
// no side effects.
package eligibility

import (
	"fmt"
	"strings"

	"marketplace-api/internal/common"
	"marketplace-api/internal/entity"
)

type Reason string

const (
	ReasonInvalidBrief               Reason = "invalid_brief"
	ReasonBriefNotLive               Reason = "brief_not_live"
	ReasonFrameworkNotLive           Reason = "framework_not_live"
	ReasonNotASupplier               Reason = "not_a_supplier"
	ReasonInvalidSupplierCode        Reason = "invalid_supplier_code"
	ReasonSupplierValidationFailed   Reason = "supplier_validation_failed"
	ReasonSupplierNotSelected        Reason = "supplier_not_selected"
	ReasonMissingFrameworkMembership Reason = "missing_framework_membership"
	ReasonNoAssessedDomains          Reason = "no_assessed_domains"
	ReasonMissingRequiredDomain      Reason = "missing_required_domain"
	ReasonQuotaExceeded              Reason = "quota_exceeded"
	ReasonDuplicateResponse          Reason = "duplicate_response"
)

// Denial is a tagged rejection. Errors is populated only for
// ReasonSupplierValidationFailed, the one batch-style check.
type Denial struct {
	Reason  Reason
	Message string
	Errors  []entity.ValidationError
}

type Decision struct {
	Denial *Denial
}

func (d Decision) Allowed() bool {
	return d.Denial == nil
}

// Input carries everything a single evaluation consumes. Brief and Supplier
// are nil when their lookups did not resolve; SupplierErrors is the batch
// produced by the qualification validator; ResponseCount is the supplier's
// current non-withdrawn response count for this brief.
type Input struct {
	BriefId        string
	Brief          *entity.Brief
	Supplier       *entity.Supplier
	User           entity.User
	SupplierErrors []entity.ValidationError
	ResponseCount  int
}

// Config holds the reference values the rules compare against, passed in
// explicitly so tests can run on fixtures.
type Config struct {
	MarketplaceFramework string
	GenericEmailDomains  []string
}

func DefaultConfig() Config {
	return Config{
		MarketplaceFramework: common.MarketplaceFramework,
		GenericEmailDomains:  common.GenericEmailDomains,
	}
}

type check func(in *Input, cfg Config) *Denial

// Ordering is part of the contract: the first failing check wins.
var checks = []check{
	checkBriefExists,
	checkBriefLive,
	checkFrameworkLive,
	checkSupplierRole,
	checkSupplierExists,
	checkSupplierValidation,
	checkSellerSelection,
	checkFrameworkMembership,
	checkAssessedDomains,
	checkTrainingDomain,
	checkResponseQuota,
}

func Evaluate(in Input, cfg Config) Decision {
	for _, c := range checks {
		if denial := c(&in, cfg); denial != nil {
			return Decision{Denial: denial}
		}
	}

	return Decision{}
}

func checkBriefExists(in *Input, _ Config) *Denial {
	if in.Brief == nil {
		return &Denial{
			Reason:  ReasonInvalidBrief,
			Message: fmt.Sprintf("Invalid brief ID '%s'", in.BriefId),
		}
	}

	return nil
}

func checkBriefLive(in *Input, _ Config) *Denial {
	if in.Brief.Status != common.BriefStatusLive {
		return &Denial{Reason: ReasonBriefNotLive, Message: "Brief must be live"}
	}

	return nil
}

func checkFrameworkLive(in *Input, _ Config) *Denial {
	if in.Brief.FrameworkStatus != common.FrameworkStatusLive {
		return &Denial{Reason: ReasonFrameworkNotLive, Message: "Brief framework must be live"}
	}

	return nil
}

func checkSupplierRole(in *Input, _ Config) *Denial {
	if in.User.Role != common.RoleSupplier {
		return &Denial{
			Reason:  ReasonNotASupplier,
			Message: "Only supplier role users can respond to briefs",
		}
	}

	return nil
}

func checkSupplierExists(in *Input, _ Config) *Denial {
	if in.Supplier == nil {
		return &Denial{
			Reason:  ReasonInvalidSupplierCode,
			Message: fmt.Sprintf("Invalid supplier code '%d'", in.User.SupplierCode),
		}
	}

	return nil
}

func checkSupplierValidation(in *Input, _ Config) *Denial {
	if len(in.SupplierErrors) == 0 {
		return nil
	}

	messages := make([]string, 0, len(in.SupplierErrors))
	for _, e := range in.SupplierErrors {
		messages = append(messages, e.Message)
	}

	return &Denial{
		Reason:  ReasonSupplierValidationFailed,
		Message: strings.Join(messages, "; "),
		Errors:  in.SupplierErrors,
	}
}

func checkSellerSelection(in *Input, cfg Config) *Denial {
	selection := DeriveSelection(in.Brief)
	if !selection.Matches(in.User, cfg.GenericEmailDomains) {
		return &Denial{
			Reason:  ReasonSupplierNotSelected,
			Message: "Supplier not selected for this brief",
		}
	}

	return nil
}

// Only the first framework membership is consulted, mirroring long-standing
// marketplace behaviour for suppliers holding several memberships.
func checkFrameworkMembership(in *Input, cfg Config) *Denial {
	if len(in.Supplier.Frameworks) == 0 ||
		in.Supplier.Frameworks[0].FrameworkSlug != cfg.MarketplaceFramework {
		return &Denial{
			Reason:  ReasonMissingFrameworkMembership,
			Message: "Supplier does not have Digital Marketplace framework",
		}
	}

	return nil
}

func checkAssessedDomains(in *Input, _ Config) *Denial {
	if len(in.Supplier.AssessedDomains) == 0 {
		return &Denial{
			Reason:  ReasonNoAssessedDomains,
			Message: "Supplier does not have at least one assessed domain",
		}
	}

	return nil
}

func checkTrainingDomain(in *Input, _ Config) *Denial {
	if in.Brief.LotSlug != common.LotTraining {
		return nil
	}

	if !in.Supplier.HasAssessedDomain(common.TrainingDomain) {
		return &Denial{
			Reason:  ReasonMissingRequiredDomain,
			Message: fmt.Sprintf("Supplier needs to be assessed in '%s'", common.TrainingDomain),
		}
	}

	return nil
}

func checkResponseQuota(in *Input, _ Config) *Denial {
	if in.ResponseCount >= ResponseLimit(in.Brief.LotSlug) {
		return QuotaDenial(in.Brief.LotSlug, in.Supplier.Code)
	}

	return nil
}

// QuotaDenial builds the denial reported when a supplier is at the response
// cap for a lot. The write path reuses it when a concurrent submission trips
// the cap inside the insert transaction.
func QuotaDenial(lotSlug string, supplierCode int64) *Denial {
	if lotSlug == common.LotSpecialist {
		return &Denial{
			Reason: ReasonQuotaExceeded,
			Message: fmt.Sprintf("There are already %d brief responses for supplier '%d'",
				common.SpecialistResponseLimit, supplierCode),
		}
	}

	return &Denial{
		Reason:  ReasonDuplicateResponse,
		Message: fmt.Sprintf("Brief response already exists for supplier '%d'", supplierCode),
	}
}

// ResponseLimit is the lot-specific cap on non-withdrawn responses per
// (supplier, brief) pair.
func ResponseLimit(lotSlug string) int {
	if lotSlug == common.LotSpecialist {
		return common.SpecialistResponseLimit
	}

	return 1
}

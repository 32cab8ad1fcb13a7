package eligibility

import (
	"strconv"
	"strings"

	"marketplace-api/internal/common"
	"marketplace-api/internal/entity"
)

type SelectionMode int

const (
	// AllSellers lets any qualified supplier respond.
	AllSellers SelectionMode = iota
	// OneSeller restricts responses to a single invited email.
	OneSeller
	// SomeSellers restricts responses to a list of invited emails.
	SomeSellers
	// InviteByCode restricts responses to supplier codes keyed in the
	// brief's sellers mapping. Always in force for rfx briefs.
	InviteByCode
)

// SellerSelection is the seller-selection policy derived from a brief. It is
// computed at evaluation time and never persisted.
type SellerSelection struct {
	Mode   SelectionMode
	Emails []string
	Codes  map[string]struct{}
}

// DeriveSelection computes the seller-selection policy for a brief. The rfx
// lot always selects by invite code, overriding the sellerSelector field.
func DeriveSelection(brief *entity.Brief) SellerSelection {
	if brief.LotSlug == common.LotRFX {
		codes := make(map[string]struct{})
		for code := range brief.Data.Sellers() {
			codes[code] = struct{}{}
		}

		return SellerSelection{Mode: InviteByCode, Codes: codes}
	}

	switch brief.Data.String("sellerSelector") {
	case common.SellerSelectorOne:
		return SellerSelection{Mode: OneSeller, Emails: []string{brief.Data.String("sellerEmail")}}
	case common.SellerSelectorSome:
		return SellerSelection{Mode: SomeSellers, Emails: brief.Data.Strings("sellerEmailList")}
	}

	return SellerSelection{Mode: AllSellers}
}

// Matches reports whether the acting user's supplier account is selected.
// Email comparison is case-insensitive on the full address, or on the email
// domain when the user's own domain is not a generic provider domain.
func (s SellerSelection) Matches(user entity.User, genericDomains []string) bool {
	switch s.Mode {
	case AllSellers:
		return true
	case InviteByCode:
		_, ok := s.Codes[strconv.FormatInt(user.SupplierCode, 10)]
		return ok
	}

	userEmail := strings.ToLower(user.Email)
	userDomain := emailDomain(userEmail)
	if isGenericDomain(userDomain, genericDomains) {
		userDomain = ""
	}

	for _, allowed := range s.Emails {
		allowed = strings.ToLower(allowed)
		if userEmail == allowed {
			return true
		}
		if userDomain != "" && userDomain == emailDomain(allowed) {
			return true
		}
	}

	return false
}

func emailDomain(email string) string {
	parts := strings.Split(email, "@")

	return parts[len(parts)-1]
}

func isGenericDomain(domain string, genericDomains []string) bool {
	for _, g := range genericDomains {
		if strings.EqualFold(domain, g) {
			return true
		}
	}

	return false
}

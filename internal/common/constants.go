package common

// Brief lifecycle statuses.
const (
	BriefStatusDraft     = "draft"
	BriefStatusLive      = "live"
	BriefStatusClosed    = "closed"
	BriefStatusWithdrawn = "withdrawn"
)

// A framework must be live for any response activity.
const FrameworkStatusLive = "live"

// User roles.
const (
	RoleBuyer    = "buyer"
	RoleSupplier = "supplier"
)

// Seller-selection modes stored in brief data.
const (
	SellerSelectorAll  = "allSellers"
	SellerSelectorOne  = "oneSeller"
	SellerSelectorSome = "someSellers"
)

// Lot slugs with lot-specific rules.
const (
	LotRFX        = "rfx"
	LotTraining   = "training"
	LotSpecialist = "digital-professionals"
	LotOutcome    = "digital-outcome"
)

// The marketplace framework every responding supplier must belong to.
const MarketplaceFramework = "digital-marketplace"

// Qualification domain required to respond to training briefs.
const TrainingDomain = "Training, Learning and Development"

// Non-withdrawn responses one supplier may hold on one specialist brief.
// Every other lot allows a single response.
const SpecialistResponseLimit = 3

// Email domains never used as a match key for domain-based seller selection.
var GenericEmailDomains = []string{
	"gmail.com",
	"hotmail.com",
	"outlook.com",
	"yahoo.com",
	"yahoo.com.au",
	"bigpond.com",
	"live.com",
	"icloud.com",
	"msn.com",
	"aol.com",
}

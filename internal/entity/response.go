package entity

import (
	"github.com/google/uuid"
)

// db model. Responses are never deleted, only withdrawn; a non-empty
// withdrawn_at excludes the row from quota counts.
type BriefResponse struct {
	Id           uuid.UUID `json:"id" db:"id"`
	BriefId      uuid.UUID `json:"briefId" db:"brief_id"`
	SupplierCode int64     `json:"supplierCode" db:"supplier_code"`
	Data         BriefData `json:"data" db:"data"`
	CreatedAt    string    `json:"createdAt" db:"created_at"`
	WithdrawnAt  string    `json:"withdrawnAt,omitempty" db:"withdrawn_at"`
}

// service + repo input model
type CreateBriefResponseInput struct {
	BriefId      uuid.UUID
	SupplierCode int64
	Data         BriefData
	// Limit is the lot-specific cap on non-withdrawn responses for this
	// (supplier, brief) pair; the insert is rejected at or above it.
	Limit int
}

// controller model
type BriefResponseOutputModel struct {
	Id           string    `json:"id"`
	BriefId      string    `json:"briefId"`
	SupplierCode int64     `json:"supplierCode"`
	Data         BriefData `json:"data"`
	CreatedAt    string    `json:"createdAt"`
}

// controller model for response listings
type BriefResponsesView struct {
	Brief          *BriefOutputModel          `json:"brief"`
	BriefResponses []BriefResponseOutputModel `json:"briefResponses"`
}

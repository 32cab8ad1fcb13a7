package service

import (
	"marketplace-api/internal/entity"
	"strconv"
)

func mapBrief(b *entity.Brief) *entity.BriefOutputModel {
	return &entity.BriefOutputModel{
		Id:          b.Id.String(),
		Status:      b.Status,
		Lot:         b.LotSlug,
		Framework:   b.FrameworkSlug,
		Data:        b.Data,
		CreatedAt:   b.CreatedAt,
		PublishedAt: b.PublishedAt,
		ClosedAt:    b.ClosedAt,
	}
}

func mapBriefResponse(r *entity.BriefResponse) *entity.BriefResponseOutputModel {
	return &entity.BriefResponseOutputModel{
		Id:           r.Id.String(),
		BriefId:      r.BriefId.String(),
		SupplierCode: r.SupplierCode,
		Data:         r.Data,
		CreatedAt:    r.CreatedAt,
	}
}

func mapBriefResponses(responses []entity.BriefResponse) []entity.BriefResponseOutputModel {
	s := make([]entity.BriefResponseOutputModel, 0)
	for _, r := range responses {
		s = append(s, *mapBriefResponse(&r))
	}

	return s
}

// Invite maps key sellers by the decimal supplier code.
func formatSupplierCode(code int64) string {
	return strconv.FormatInt(code, 10)
}

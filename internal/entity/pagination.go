package entity

const maxPageSize = 100

type PaginationInput struct {
	Limit  int
	Offset int
}

func NewPaginationInput(limit int, offset int) *PaginationInput {
	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	return &PaginationInput{
		Limit:  limit,
		Offset: offset,
	}
}

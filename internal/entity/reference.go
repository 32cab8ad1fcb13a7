package entity

// Lot is a procurement category with its own eligibility and quota rules.
type Lot struct {
	Id   int    `json:"id" db:"id"`
	Slug string `json:"slug" db:"slug"`
	Name string `json:"name" db:"name"`
}

type Framework struct {
	Id     int    `json:"id" db:"id"`
	Slug   string `json:"slug" db:"slug"`
	Name   string `json:"name" db:"name"`
	Status string `json:"status" db:"status"`
}

// ReferenceData is the lot/framework lookup table resolved once per request
// and passed explicitly into policy code instead of re-queried ad hoc.
type ReferenceData struct {
	Lots       map[string]Lot       `json:"lots"`
	Frameworks map[string]Framework `json:"frameworks"`
}

func (r *ReferenceData) Lot(slug string) (Lot, bool) {
	l, ok := r.Lots[slug]
	return l, ok
}

func (r *ReferenceData) Framework(slug string) (Framework, bool) {
	f, ok := r.Frameworks[slug]
	return f, ok
}

package entity

// ValidationError is one coded failure from a qualification or payload
// validator. Batches of these are surfaced together rather than
// short-circuited at the first.
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Message
}

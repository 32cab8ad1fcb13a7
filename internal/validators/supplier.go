// Package validators holds the domain-level qualification rules for supplier
// accounts. Unlike the eligibility checks these do not short-circuit: every
// rule runs and the failures are returned together.
package validators

import (
	"marketplace-api/internal/entity"
)

type SupplierValidator struct {
	supplier *entity.Supplier
}

func NewSupplierValidator(supplier *entity.Supplier) *SupplierValidator {
	return &SupplierValidator{supplier: supplier}
}

func (v *SupplierValidator) ValidateAll() []entity.ValidationError {
	errors := make([]entity.ValidationError, 0)
	errors = append(errors, v.validateABN()...)
	errors = append(errors, v.validateContacts()...)
	errors = append(errors, v.validateDomains()...)

	return errors
}

func (v *SupplierValidator) validateABN() []entity.ValidationError {
	if v.supplier.ABN == "" {
		return []entity.ValidationError{{
			Field:   "abn",
			Code:    "answer_required",
			Message: "Supplier must have an ABN",
		}}
	}

	return nil
}

func (v *SupplierValidator) validateContacts() []entity.ValidationError {
	if v.supplier.ContactEmail == "" {
		return []entity.ValidationError{{
			Field:   "contactEmail",
			Code:    "answer_required",
			Message: "Supplier must have a contact email address",
		}}
	}

	return nil
}

func (v *SupplierValidator) validateDomains() []entity.ValidationError {
	if len(v.supplier.AssessedDomains) == 0 {
		return []entity.ValidationError{{
			Field:   "assessedDomains",
			Code:    "answer_required",
			Message: "Supplier must have at least one assessed domain",
		}}
	}

	return nil
}
